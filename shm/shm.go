// Package shm provides named shared-memory segments: create-by-name,
// open-by-name, and typed offset mappings.
package shm

import (
	"fmt"
	"os"
	"unsafe"
)

// Segment is a named shared-memory region, backed by a shm_open-style
// file-descriptor object on this platform (see segment_unix.go /
// segment_windows.go for the OS-specific create/open calls).
type Segment struct {
	name     string
	size     int64
	readOnly bool
	file     *os.File
}

// Create allocates a new named segment of size bytes. It fails if a
// segment with the same name already exists.
func Create(name string, size int64) (*Segment, error) {
	return createSegment(name, size)
}

// Open opens an existing named segment. readOnly forbids Map from
// returning a writable view.
func Open(name string, readOnly bool) (*Segment, error) {
	return openSegment(name, readOnly)
}

// Close releases the segment's local handle. It does not destroy the
// underlying OS object; another process may still hold it open.
func (s *Segment) Close() error {
	return s.file.Close()
}

// Mapping is a scoped view into a Segment at a given offset, sized for a
// single value of type T.
type Mapping[T any] struct {
	ptr      *T
	readOnly bool
}

// Get returns the mapped value. Callers must not retain the pointer past
// the Segment's lifetime.
func (m *Mapping[T]) Get() *T {
	return m.ptr
}

// Set writes through the mapping. It panics if the mapping is read-only,
// matching the contract's "const-mapping forbids writes" invariant —
// this is a programmer error, not a recoverable runtime condition.
func (m *Mapping[T]) Set(v T) {
	if m.readOnly {
		panic("shm: write to read-only mapping")
	}
	*m.ptr = v
}

// allocGranularity returns the OS allocation granularity offsets must be
// aligned down to before mapping (4096 on Unix, 65536 on Windows — see
// the OS-specific files for the authoritative constant).
func allocGranularity() int64 {
	return platformAllocGranularity
}

// Map returns a Mapping[T] for the segment at the given byte offset.
// Offsets are aligned down to the platform's allocation granularity
// internally; the returned pointer re-adds the delta so callers see
// their requested offset transparently.
func Map[T any](s *Segment, offset int64) (*Mapping[T], error) {
	var zero T
	size := int64(unsafe.Sizeof(zero))
	if offset+size > s.size {
		return nil, fmt.Errorf("shm: mapping [%d,%d) exceeds segment size %d", offset, offset+size, s.size)
	}

	granularity := allocGranularity()
	aligned := (offset / granularity) * granularity
	delta := offset - aligned

	base, err := mapSegment(s, aligned, delta+size)
	if err != nil {
		return nil, err
	}

	ptr := (*T)(unsafe.Add(base, delta))
	return &Mapping[T]{ptr: ptr, readOnly: s.readOnly}, nil
}
