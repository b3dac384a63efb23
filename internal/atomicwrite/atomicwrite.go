// Package atomicwrite implements crash-safe file replacement: write to
// a sibling temp file, fsync, close, then rename over the target.
package atomicwrite

import (
	"fmt"
	"os"
	"path/filepath"
)

// Write replaces the contents of path with data. The target is either
// fully the old content or fully the new content to any concurrent
// reader; a crash mid-write leaves the target untouched and the temp
// file is cleaned up on any failure short of a successful rename.
func Write(path string, data []byte, nowUnix int64) error {
	dir := filepath.Dir(path)
	tmpPath := fmt.Sprintf("%s.tmp.%d", path, nowUnix)

	f, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("atomicwrite: create temp: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("atomicwrite: write temp: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("atomicwrite: fsync temp: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("atomicwrite: close temp: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("atomicwrite: rename into %s: %w", dir, err)
	}
	return nil
}
