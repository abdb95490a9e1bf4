package taskgraph

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFence_signalWakesOnce(t *testing.T) {
	var wakes atomic.Int32
	e := newFenceEntry()
	e.reset(func() { wakes.Add(1) })
	f := Fence{entry: e}

	require.False(t, f.Signaled())

	f.Signal()
	f.Signal()
	f.Signal()

	require.True(t, f.Signaled())
	require.Equal(t, int32(1), wakes.Load())
}

func TestFence_preSignaledSurvivesReset(t *testing.T) {
	e := newFenceEntry()
	e.signal()
	require.True(t, e.signaled.Load())

	var woke bool
	e.reset(func() { woke = true })
	require.True(t, e.signaled.Load(), "pre-signaled fence must remain signaled across reset")
	require.False(t, woke, "reset itself must not invoke the wake path")
}
