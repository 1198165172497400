// Package cli holds helpers shared by the bytepress subcommands.
package cli

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/jessevdk/go-flags"
	"github.com/schollz/progressbar/v3"
)

// NewFileLogger creates a logger with a consistent prefix for all file-based
// commands to use. i and n are the zero-based ordinal and expected count.
func NewFileLogger(i, n int, name flags.Filename) *log.Logger {
	prefix := fmt.Sprintf(`[%d/%d] "%s" - `, i+1, n, filepath.Base(string(name)))
	return log.New(os.Stderr, prefix, 0)
}

// ReadFile reads the named file fully into memory while displaying a progress
// bar on os.Stderr.
func ReadFile(name, description string) ([]byte, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open file error: %w", err)
	}
	defer f.Close()

	var size int64 = -1
	if fi, err := f.Stat(); err == nil {
		size = fi.Size()
	}

	bar := progressbar.DefaultBytes(size, description)
	defer bar.Close()

	var buf bytes.Buffer
	if size > 0 {
		buf.Grow(int(size))
	}

	if _, err = io.Copy(io.MultiWriter(&buf, bar), f); err != nil {
		return nil, fmt.Errorf("read file error: %w", err)
	}

	return buf.Bytes(), nil
}
