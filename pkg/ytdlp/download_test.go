package ytdlp

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDownload_ReturnsReportedPath(t *testing.T) {
	dir := t.TempDir()
	produced := filepath.Join(dir, "My-Video.mp4")
	require.NoError(t, os.WriteFile(produced, []byte("media"), 0o644))

	c := New()
	c.execFn = func(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
		require.Contains(t, args, "--no-playlist")
		require.Contains(t, args, "--remux-video")
		return []byte(produced + "\n"), nil, nil
	}

	path, err := c.Download(context.Background(), "https://youtu.be/dQw4w9WgXcQ",
		filepath.Join(dir, "My-Video.%(ext)s"), "22+bestaudio[ext=m4a]/best")
	require.NoError(t, err)
	require.Equal(t, produced, path)
}

func TestDownload_RewritesStaleExtension(t *testing.T) {
	// yt-dlp sometimes prints the pre-remux filename; the remuxed file on
	// disk carries the target container's extension.
	dir := t.TempDir()
	produced := filepath.Join(dir, "My-Video.mp4")
	require.NoError(t, os.WriteFile(produced, []byte("media"), 0o644))

	c := New()
	c.execFn = func(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
		return []byte(filepath.Join(dir, "My-Video.webm") + "\n"), nil, nil
	}

	path, err := c.Download(context.Background(), "https://youtu.be/dQw4w9WgXcQ",
		filepath.Join(dir, "My-Video.%(ext)s"), "22")
	require.NoError(t, err)
	require.Equal(t, produced, path)
}

func TestDownload_MissingFileIsError(t *testing.T) {
	dir := t.TempDir()

	c := New()
	c.execFn = func(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
		return []byte(filepath.Join(dir, "never-written.mp4") + "\n"), nil, nil
	}

	_, err := c.Download(context.Background(), "https://youtu.be/dQw4w9WgXcQ",
		filepath.Join(dir, "never-written.%(ext)s"), "22")
	require.Error(t, err)
	require.True(t, strings.Contains(err.Error(), "did not materialize"))
}

func TestDownload_NoPathReported(t *testing.T) {
	c := New()
	c.execFn = func(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
		return []byte("\n\n"), nil, nil
	}

	_, err := c.Download(context.Background(), "https://youtu.be/dQw4w9WgXcQ", "x.%(ext)s", "22")
	require.Error(t, err)
}

func TestForceExt(t *testing.T) {
	require.Equal(t, "a/b.mp4", forceExt("a/b.webm", "mp4"))
	require.Equal(t, "a/b.mp4", forceExt("a/b.mp4", "mp4"))
	require.Equal(t, "a/b.mp4", forceExt("a/b", "mp4"))
	require.Equal(t, "a/b.tar.mp4", forceExt("a/b.tar.gz", "mp4"))
}
