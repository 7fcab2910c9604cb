// Package fileutil provides file system utilities.
package fileutil

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// WriteFileAtomic writes data to filename so that readers see either the old
// file or the complete new one, never a partial write.
func WriteFileAtomic(filename string, data []byte, perm os.FileMode) error {
	return WriteAtomic(filename, perm, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

// WriteAtomic streams the output of write into a temporary file next to
// filename and renames it into place once write succeeds. Missing parent
// directories are created.
func WriteAtomic(filename string, perm os.FileMode, write func(io.Writer) error) error {
	// Temp file must share the target's filesystem for rename to be atomic
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, filepath.Base(filename)+".tmp.*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	committed := false
	defer func() {
		if !committed {
			tmpFile.Close()
			os.Remove(tmpPath)
		}
	}()

	buf := bufio.NewWriter(tmpFile)
	if err := write(buf); err != nil {
		return err
	}
	if err := buf.Flush(); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpPath, filename); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	committed = true
	return nil
}

// OpenAppend opens filename for appending, creating it and its parent
// directories as needed.
func OpenAppend(filename string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	return os.OpenFile(filename, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
}
