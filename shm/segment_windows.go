//go:build windows

package shm

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/windows"
)

const platformAllocGranularity = 65536

func createSegment(name string, size int64) (*Segment, error) {
	h, err := windows.CreateFileMapping(windows.InvalidHandle, nil, windows.PAGE_READWRITE,
		uint32(size>>32), uint32(size), windows.StringToUTF16Ptr(`Local\`+name))
	if err != nil {
		return nil, fmt.Errorf("shm: create %q: %w", name, err)
	}
	return &Segment{name: name, size: size, file: os.NewFile(uintptr(h), name)}, nil
}

func openSegment(name string, readOnly bool) (*Segment, error) {
	access := uint32(windows.FILE_MAP_READ | windows.FILE_MAP_WRITE)
	if readOnly {
		access = windows.FILE_MAP_READ
	}
	h, err := windows.OpenFileMapping(access, false, windows.StringToUTF16Ptr(`Local\`+name))
	if err != nil {
		return nil, fmt.Errorf("shm: open %q: %w", name, err)
	}
	return &Segment{name: name, readOnly: readOnly, file: os.NewFile(uintptr(h), name)}, nil
}

// mapSegment maps [aligned, aligned+length) of the segment via
// MapViewOfFile. Like the Unix implementation, the view is intentionally
// never unmapped by this package; the Segment's lifetime is
// process-lifetime by contract.
func mapSegment(s *Segment, aligned, length int64) (unsafe.Pointer, error) {
	access := uint32(windows.FILE_MAP_READ | windows.FILE_MAP_WRITE)
	if s.readOnly {
		access = windows.FILE_MAP_READ
	}
	addr, err := windows.MapViewOfFile(windows.Handle(s.file.Fd()), access,
		uint32(aligned>>32), uint32(aligned), uintptr(length))
	if err != nil {
		return nil, fmt.Errorf("shm: map view %q: %w", s.name, err)
	}
	return unsafe.Pointer(addr), nil
}
