// Package logfilter strips blank lines out of training log files before
// they are uploaded. Kept lines are copied byte for byte, so Windows-style
// line endings survive in the filtered copy.
package logfilter

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Filter copies every non-blank line from r to w in original order. A line
// is blank when nothing but whitespace remains after stripping carriage
// returns.
func Filter(r io.Reader, w io.Writer) error {
	br := bufio.NewReader(r)
	bw := bufio.NewWriter(w)

	for {
		line, err := br.ReadBytes('\n')
		if len(line) > 0 && !isBlank(line) {
			if _, werr := bw.Write(line); werr != nil {
				return fmt.Errorf("failed to write filtered line: %w", werr)
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read log: %w", err)
		}
	}

	return bw.Flush()
}

func isBlank(line []byte) bool {
	stripped := bytes.ReplaceAll(line, []byte("\r"), nil)
	return len(bytes.TrimSpace(stripped)) == 0
}

// FilteredPath returns the sibling path the filtered copy of path is
// written to.
func FilteredPath(path string) string {
	dir, base := filepath.Split(path)
	return filepath.Join(dir, "filtered_"+base)
}

// FilterFile writes a filtered copy of the log at path next to the
// original, named filtered_<basename>, and returns the copy's path.
func FilterFile(path string) (string, error) {
	src, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open log: %w", err)
	}
	defer src.Close()

	outPath := FilteredPath(path)
	dst, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("failed to create filtered log: %w", err)
	}

	if err := Filter(src, dst); err != nil {
		dst.Close()
		return "", err
	}

	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("failed to close filtered log: %w", err)
	}

	return outPath, nil
}
