// Package vfs provides an in-memory file usable both as the write side of a
// table builder and the read side of a table reader.
package vfs

import (
	"fmt"
	"io"
	"sync"

	"mocktable/pkg/dberrors"
)

type MemFile struct {
	mu   sync.RWMutex
	name string
	data []byte
}

func NewMemFile(name string) *MemFile {
	return &MemFile{name: name}
}

func (f *MemFile) Name() string {
	return f.name
}

// Write appends p to the file.
func (f *MemFile) Write(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.data = append(f.data, p...)
	return len(p), nil
}

func (f *MemFile) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, fmt.Errorf("read %s at %d: %w", f.name, off, dberrors.ErrInvalidArgument)
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	if off >= int64(len(f.data)) {
		return 0, io.EOF
	}
	n := copy(p, f.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (f *MemFile) Size() int64 {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return int64(len(f.data))
}

// Bytes returns a copy of the file contents.
func (f *MemFile) Bytes() []byte {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return append([]byte(nil), f.data...)
}
