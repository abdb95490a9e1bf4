package namedsync

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMutex_lockUnlock(t *testing.T) {
	name := fmt.Sprintf("taskgraph-test-mutex-%d", time.Now().UnixNano())
	m, err := OpenMutex(name, false)
	require.NoError(t, err)
	defer func() { require.NoError(t, m.Close()) }()

	require.NoError(t, m.Lock())
	require.NoError(t, m.Unlock())
}

func TestMutex_tryLockTimesOutWhenHeld(t *testing.T) {
	name := fmt.Sprintf("taskgraph-test-mutex-%d", time.Now().UnixNano())
	a, err := OpenMutex(name, false)
	require.NoError(t, err)
	defer func() { require.NoError(t, a.Close()) }()

	require.NoError(t, a.Lock())
	defer func() { require.NoError(t, a.Unlock()) }()

	b, err := OpenMutex(name, false)
	require.NoError(t, err)
	defer func() { require.NoError(t, b.Close()) }()

	ok, err := b.TryLock(10 * time.Millisecond)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSemaphore_acquireRelease(t *testing.T) {
	name := fmt.Sprintf("taskgraph-test-sem-%d", time.Now().UnixNano())
	s, err := OpenSemaphore(name, 1, 1)
	require.NoError(t, err)
	defer func() { require.NoError(t, s.Close()) }()

	require.NoError(t, s.Acquire())

	ok, err := s.TryAcquire(10 * time.Millisecond)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.Release())
	ok, err = s.TryAcquire(10 * time.Millisecond)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestSemaphore_releaseBeyondMaxFails(t *testing.T) {
	name := fmt.Sprintf("taskgraph-test-sem-%d", time.Now().UnixNano())
	s, err := OpenSemaphore(name, 1, 1)
	require.NoError(t, err)
	defer func() { require.NoError(t, s.Close()) }()

	require.Error(t, s.Release())
}
