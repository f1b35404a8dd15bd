package ytdlp

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStreamWriter_SplitsOnCRAndLF(t *testing.T) {
	var buf bytes.Buffer
	var lines []string
	w := &streamWriter{
		stream: "stdout",
		callback: func(stream string, line string) {
			lines = append(lines, stream+":"+line)
		},
		buffer: &buf,
	}

	_, err := w.Write([]byte("a\rb\nc\r\nd"))
	require.NoError(t, err)

	// No delimiter after trailing "d" yet.
	require.Equal(t, []string{"stdout:a", "stdout:b", "stdout:c"}, lines)

	_, err = w.Write([]byte("\n"))
	require.NoError(t, err)
	require.Equal(t, []string{"stdout:a", "stdout:b", "stdout:c", "stdout:d"}, lines)

	// The raw buffer keeps everything, delimiters included.
	require.Equal(t, "a\rb\nc\r\nd\n", buf.String())
}

func TestStreamWriter_SkipsBlankLines(t *testing.T) {
	var lines []string
	w := &streamWriter{
		stream: "stderr",
		callback: func(stream string, line string) {
			lines = append(lines, line)
		},
	}

	_, err := w.Write([]byte("  \n\nreal\n"))
	require.NoError(t, err)
	require.Equal(t, []string{"real"}, lines)
}

func TestLastLine(t *testing.T) {
	require.Equal(t, "b", lastLine([]byte("a\nb\n")))
	require.Equal(t, "a", lastLine([]byte("a")))
	require.Equal(t, "", lastLine([]byte("\n \n")))
}
