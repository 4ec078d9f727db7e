// Package sinks provides destinations for completed log lines.
package sinks

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/willibrandon/linelog/selflog"
)

// FileSink appends completed lines to a file, creating the parent
// directory if needed.
type FileSink struct {
	path   string
	file   *os.File
	mu     sync.Mutex
	isOpen bool
}

// NewFileSink creates a file sink writing to path.
func NewFileSink(path string) (*FileSink, error) {
	fs := &FileSink{path: path}
	if err := fs.open(); err != nil {
		return nil, err
	}
	return fs, nil
}

// Emit appends one line, newline-terminated, to the file. Write failures
// are reported via selflog; a log write must not fail the caller.
func (fs *FileSink) Emit(line string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if !fs.isOpen {
		return
	}
	if _, err := fs.file.WriteString(line + "\n"); err != nil {
		if selflog.IsEnabled() {
			selflog.Printf("[file] write failed: %v (path=%s)", err, fs.path)
		}
	}
}

// Close flushes and closes the file.
func (fs *FileSink) Close() error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if !fs.isOpen {
		return nil
	}
	fs.isOpen = false

	if err := fs.file.Sync(); err != nil {
		return fmt.Errorf("failed to sync log file: %w", err)
	}
	if err := fs.file.Close(); err != nil {
		return fmt.Errorf("failed to close log file: %w", err)
	}
	return nil
}

func (fs *FileSink) open() error {
	dir := filepath.Dir(fs.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(fs.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	fs.file = file
	fs.isOpen = true
	return nil
}
