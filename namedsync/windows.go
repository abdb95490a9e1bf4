//go:build windows

package namedsync

import (
	"fmt"
	"time"

	"golang.org/x/sys/windows"
)

// winMutex wraps a Win32 named mutex (CreateMutex). recursive is
// honored transparently: Win32 mutexes are already recursive for the
// owning thread, so the flag only affects documentation intent here.
type winMutex struct {
	h windows.Handle
}

func openMutex(name string, recursive bool) (Mutex, error) {
	_ = recursive
	h, err := windows.CreateMutex(nil, false, windows.StringToUTF16Ptr(`Local\`+name))
	if err != nil {
		return nil, fmt.Errorf("namedsync: create mutex %q: %w", name, err)
	}
	return &winMutex{h: h}, nil
}

func (m *winMutex) Lock() error {
	_, err := windows.WaitForSingleObject(m.h, windows.INFINITE)
	return err
}

func (m *winMutex) TryLock(d time.Duration) (bool, error) {
	ms := uint32(d / time.Millisecond)
	ev, err := windows.WaitForSingleObject(m.h, ms)
	if err != nil {
		return false, err
	}
	return ev == windows.WAIT_OBJECT_0, nil
}

func (m *winMutex) Unlock() error {
	return windows.ReleaseMutex(m.h)
}

func (m *winMutex) Close() error {
	return windows.CloseHandle(m.h)
}

// winSemaphore wraps a Win32 named semaphore (CreateSemaphore).
type winSemaphore struct {
	h windows.Handle
}

func openSemaphore(name string, initial, max int) (Semaphore, error) {
	h, err := windows.CreateSemaphore(nil, int32(initial), int32(max), windows.StringToUTF16Ptr(`Local\`+name))
	if err != nil {
		return nil, fmt.Errorf("namedsync: create semaphore %q: %w", name, err)
	}
	return &winSemaphore{h: h}, nil
}

func (s *winSemaphore) Acquire() error {
	_, err := windows.WaitForSingleObject(s.h, windows.INFINITE)
	return err
}

func (s *winSemaphore) TryAcquire(d time.Duration) (bool, error) {
	ms := uint32(d / time.Millisecond)
	ev, err := windows.WaitForSingleObject(s.h, ms)
	if err != nil {
		return false, err
	}
	return ev == windows.WAIT_OBJECT_0, nil
}

func (s *winSemaphore) Release() error {
	return windows.ReleaseSemaphore(s.h, 1, nil)
}

func (s *winSemaphore) Close() error {
	return windows.CloseHandle(s.h)
}
