package ytdlp

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// targetContainer is the container every download is remuxed into before the
// file is handed back to the caller.
const targetContainer = "mp4"

// Download retrieves the media at url using formatSpec and remuxes it to mp4.
// outTmpl is a yt-dlp output template (e.g. "downloads/My-Title.%(ext)s").
//
// The returned path is where the file actually landed. yt-dlp occasionally
// reports a pre-remux extension, so a non-mp4 suffix is rewritten before the
// existence check; a path that then does not exist is an error, never an
// empty success.
func (c *Client) Download(ctx context.Context, url string, outTmpl string, formatSpec string, extraArgs ...string) (string, error) {
	if strings.TrimSpace(url) == "" {
		return "", fmt.Errorf("ytdlp: url is required")
	}
	if strings.TrimSpace(outTmpl) == "" {
		return "", fmt.Errorf("ytdlp: output template is required")
	}
	if strings.TrimSpace(formatSpec) == "" {
		return "", fmt.Errorf("ytdlp: format spec is required")
	}

	args := []string{
		"-o", outTmpl,
		"-f", formatSpec,
		"--no-playlist",
		"--remux-video", targetContainer,
		"--no-simulate",
		"--print", "after_move:filepath",
		"--no-warnings",
	}
	args = append(args, extraArgs...)
	args = append(args, url)

	stdout, stderr, err := c.exec(ctx, args...)
	if err != nil {
		return "", wrapExecError(c.PathOrDefault(), args, stdout, stderr, err)
	}

	path := lastLine(stdout)
	if path == "" {
		return "", fmt.Errorf("ytdlp: no output path reported")
	}

	path = forceExt(path, targetContainer)

	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("ytdlp: download did not materialize at %s: %w", path, err)
	}

	return path, nil
}

func lastLine(out []byte) string {
	lines := bytes.Split(bytes.TrimSpace(out), []byte("\n"))
	for i := len(lines) - 1; i >= 0; i-- {
		if l := strings.TrimSpace(string(lines[i])); l != "" {
			return l
		}
	}
	return ""
}

// forceExt rewrites the final extension of path to ext (without dot).
// A path with no extension gets one appended.
func forceExt(path string, ext string) string {
	old := filepath.Ext(path)
	if old == "."+ext {
		return path
	}
	return strings.TrimSuffix(path, old) + "." + ext
}
