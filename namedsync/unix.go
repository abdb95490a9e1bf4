//go:build !windows

package namedsync

import (
	"fmt"
	"os"
	"sync"
	"time"

	"golang.org/x/sys/unix"
)

// flockMutex wraps an flock(2)'d file as a named mutex. recursive
// mutexes additionally guard against a single handle double-locking
// itself (flock alone would deadlock a process that locks twice).
type flockMutex struct {
	f         *os.File
	recursive bool

	mu     sync.Mutex
	depth  int
	locked bool
}

func openMutex(name string, recursive bool) (Mutex, error) {
	path := "/tmp/" + name + ".lock"
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("namedsync: open mutex %q: %w", name, err)
	}
	return &flockMutex{f: f, recursive: recursive}, nil
}

func (m *flockMutex) Lock() error {
	m.mu.Lock()
	if m.recursive && m.locked {
		m.depth++
		m.mu.Unlock()
		return nil
	}
	m.mu.Unlock()

	if err := unix.Flock(int(m.f.Fd()), unix.LOCK_EX); err != nil {
		return fmt.Errorf("namedsync: lock: %w", err)
	}
	m.mu.Lock()
	m.locked = true
	m.depth = 1
	m.mu.Unlock()
	return nil
}

func (m *flockMutex) TryLock(d time.Duration) (bool, error) {
	deadline := time.Now().Add(d)
	for {
		err := unix.Flock(int(m.f.Fd()), unix.LOCK_EX|unix.LOCK_NB)
		if err == nil {
			m.mu.Lock()
			m.locked = true
			m.depth = 1
			m.mu.Unlock()
			return true, nil
		}
		if err != unix.EWOULDBLOCK {
			return false, fmt.Errorf("namedsync: trylock: %w", err)
		}
		if time.Now().After(deadline) {
			return false, nil
		}
		time.Sleep(time.Millisecond)
	}
}

func (m *flockMutex) Unlock() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.recursive && m.depth > 1 {
		m.depth--
		return nil
	}
	m.locked = false
	m.depth = 0
	if err := unix.Flock(int(m.f.Fd()), unix.LOCK_UN); err != nil {
		return fmt.Errorf("namedsync: unlock: %w", err)
	}
	return nil
}

func (m *flockMutex) Close() error {
	return m.f.Close()
}

// fileSemaphore implements a named counting semaphore whose count is an
// in-memory integer guarded by mu. The named file is created and held open
// but never locked, so the count is not shared with other handles or
// processes.
type fileSemaphore struct {
	f   *os.File
	max int

	mu    sync.Mutex
	count int
}

func openSemaphore(name string, initial, max int) (Semaphore, error) {
	path := "/tmp/" + name + ".sem"
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("namedsync: open semaphore %q: %w", name, err)
	}
	return &fileSemaphore{f: f, max: max, count: initial}, nil
}

func (s *fileSemaphore) Acquire() error {
	for {
		ok, err := s.TryAcquire(time.Hour)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
	}
}

func (s *fileSemaphore) TryAcquire(d time.Duration) (bool, error) {
	deadline := time.Now().Add(d)
	for {
		s.mu.Lock()
		if s.count > 0 {
			s.count--
			s.mu.Unlock()
			return true, nil
		}
		s.mu.Unlock()
		if time.Now().After(deadline) {
			return false, nil
		}
		time.Sleep(time.Millisecond)
	}
}

func (s *fileSemaphore) Release() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.count >= s.max {
		return fmt.Errorf("namedsync: release would exceed max count %d", s.max)
	}
	s.count++
	return nil
}

func (s *fileSemaphore) Close() error {
	return s.f.Close()
}
