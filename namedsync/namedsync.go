// Package namedsync provides named mutex and semaphore primitives,
// addressable by a logical name mapped onto a platform-specific
// namespace.
package namedsync

import "time"

// Mutex is a named, cross-process mutual-exclusion lock.
type Mutex interface {
	// Lock blocks until the mutex is acquired.
	Lock() error
	// TryLock tries to acquire the mutex, waiting at most d, returning
	// whether it was acquired.
	TryLock(d time.Duration) (bool, error)
	// Unlock releases the mutex. Unlocking a mutex not held by this
	// handle is a programmer error.
	Unlock() error
	// Close releases local resources associated with the handle.
	Close() error
}

// Semaphore is a named counting semaphore. On Windows the count lives in
// a named kernel object shared across processes; on other platforms it is
// kept in memory by each handle, so handles opened separately under the
// same name do not share a count.
type Semaphore interface {
	// Acquire blocks until a count is available.
	Acquire() error
	// TryAcquire tries to acquire a count, waiting at most d, returning
	// whether one was acquired.
	TryAcquire(d time.Duration) (bool, error)
	// Release returns a count to the semaphore.
	Release() error
	// Close releases local resources associated with the handle.
	Close() error
}

// OpenMutex opens (creating if necessary) a named mutex. recursive
// permits the same handle to Lock more than once without deadlocking
// itself (a single caller's nested acquisitions), matching the
// contract's "plain/recursive" mutex flavors.
func OpenMutex(name string, recursive bool) (Mutex, error) {
	return openMutex(name, recursive)
}

// OpenSemaphore opens (creating if necessary) a named semaphore with the
// given initial and maximum count.
func OpenSemaphore(name string, initial, max int) (Semaphore, error) {
	return openSemaphore(name, initial, max)
}
