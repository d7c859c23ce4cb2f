package logfilter

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilter(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "crlf blank line removed", in: "a\r\n\r\nb\r\n", want: "a\r\nb\r\n"},
		{name: "unix blank lines removed", in: "a\n\nb\n\n", want: "a\nb\n"},
		{name: "whitespace only line removed", in: "a\n   \t\nb\n", want: "a\nb\n"},
		{name: "cr only line removed", in: "a\n\r\nb\n", want: "a\nb\n"},
		{name: "kept lines byte identical", in: "  indented\r\nplain\n", want: "  indented\r\nplain\n"},
		{name: "no trailing newline", in: "a\n\nb", want: "a\nb"},
		{name: "all blank", in: "\n\r\n  \n", want: ""},
		{name: "empty input", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			require.NoError(t, Filter(strings.NewReader(tt.in), &out))
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestFilteredPath(t *testing.T) {
	assert.Equal(t, "/tmp/filtered_run.log", FilteredPath("/tmp/run.log"))
	assert.Equal(t, "filtered_run.log", FilteredPath("run.log"))
}

func TestFilterFile(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "run.log")
	require.NoError(t, os.WriteFile(logPath, []byte("a\r\n\r\nb\r\n"), 0o644))

	outPath, err := FilterFile(logPath)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "filtered_run.log"), outPath)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "a\r\nb\r\n", string(data))
}

func TestFilterFileMissing(t *testing.T) {
	_, err := FilterFile(filepath.Join(t.TempDir(), "missing.log"))
	assert.Error(t, err)
}
