// Package mmapfile provides read-only, zero-copy memory-mapped access
// to a file, wrapping github.com/edsrzf/mmap-go's POSIX mmap / Windows
// CreateFileMapping+MapViewOfFile abstraction with the storage core's
// own error taxonomy and empty-file handling.
package mmapfile

import (
	"errors"
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"
)

var (
	ErrFileNotFound = errors.New("mmapfile: file not found")
	ErrAccessDenied = errors.New("mmapfile: access denied")
	ErrInvalidFile  = errors.New("mmapfile: invalid file")
	ErrMmapFailed   = errors.New("mmapfile: mmap failed")
)

// File is a read-only memory-mapped view of a file on disk.
type File struct {
	f       *os.File
	mapping mmap.MMap
	empty   bool
}

// Open maps path read-only. A zero-length file is not an error; Data
// returns an empty, non-nil slice for it since mmap itself rejects
// zero-length mappings.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		switch {
		case os.IsNotExist(err):
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		case os.IsPermission(err):
			return nil, fmt.Errorf("%w: %s", ErrAccessDenied, path)
		default:
			return nil, fmt.Errorf("mmapfile: open %s: %w", path, err)
		}
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: stat %s: %v", ErrInvalidFile, path, err)
	}

	if info.Size() == 0 {
		return &File{f: f, empty: true}, nil
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %s: %v", ErrMmapFailed, path, err)
	}

	return &File{f: f, mapping: m}, nil
}

// Data returns the mapped bytes. The slice is valid only until Close.
func (mf *File) Data() []byte {
	if mf.empty {
		return []byte{}
	}
	return mf.mapping
}

func (mf *File) Len() int {
	return len(mf.Data())
}

// Close unmaps the file and releases the underlying file handle.
func (mf *File) Close() error {
	var unmapErr error
	if mf.mapping != nil {
		unmapErr = mf.mapping.Unmap()
		mf.mapping = nil
	}
	closeErr := mf.f.Close()
	if unmapErr != nil {
		return fmt.Errorf("mmapfile: unmap: %w", unmapErr)
	}
	return closeErr
}
