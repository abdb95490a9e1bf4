//go:build !windows

package shm

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

const platformAllocGranularity = 4096

func shmPath(name string) string {
	return "/dev/shm/" + name
}

func createSegment(name string, size int64) (*Segment, error) {
	path := shmPath(name)
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return nil, fmt.Errorf("shm: create %q: %w", name, err)
	}
	if err := f.Truncate(size); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("shm: truncate %q to %d: %w", name, size, err)
	}
	return &Segment{name: name, size: size, file: f}, nil
}

func openSegment(name string, readOnly bool) (*Segment, error) {
	path := shmPath(name)
	flag := os.O_RDWR
	if readOnly {
		flag = os.O_RDONLY
	}
	f, err := os.OpenFile(path, flag, 0)
	if err != nil {
		return nil, fmt.Errorf("shm: open %q: %w", name, err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("shm: stat %q: %w", name, err)
	}
	return &Segment{name: name, size: info.Size(), readOnly: readOnly, file: f}, nil
}

// mapSegment mmaps [aligned, aligned+length) of the segment's backing
// file, returning the base address. The returned mapping is
// intentionally never munmapped by this package: the Segment's lifetime
// is process-lifetime by contract (spec.md §6 "scoped mapping"), and
// unmapping while a Mapping[T] pointer is still held elsewhere would be
// a use-after-free.
func mapSegment(s *Segment, aligned, length int64) (unsafe.Pointer, error) {
	prot := unix.PROT_READ
	if !s.readOnly {
		prot |= unix.PROT_WRITE
	}
	data, err := unix.Mmap(int(s.file.Fd()), aligned, int(length), prot, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("shm: mmap %q: %w", s.name, err)
	}
	return unsafe.Pointer(&data[0]), nil
}
