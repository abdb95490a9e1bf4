package shm

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func uniqueName(t *testing.T) string {
	return fmt.Sprintf("taskgraph-test-%s-%d", t.Name(), uniqueCounter.next())
}

type counter struct{ n int }

func (c *counter) next() int { c.n++; return c.n }

var uniqueCounter = &counter{}

func TestSegment_createOpenMapRoundTrip(t *testing.T) {
	name := uniqueName(t)
	seg, err := Create(name, 4096)
	require.NoError(t, err)
	defer func() { require.NoError(t, seg.Close()) }()

	m, err := Map[int64](seg, 0)
	require.NoError(t, err)
	m.Set(12345)
	require.Equal(t, int64(12345), *m.Get())

	opened, err := Open(name, false)
	require.NoError(t, err)
	defer func() { require.NoError(t, opened.Close()) }()

	m2, err := Map[int64](opened, 0)
	require.NoError(t, err)
	require.Equal(t, int64(12345), *m2.Get())
}

func TestMapping_readOnlySetPanics(t *testing.T) {
	name := uniqueName(t)
	seg, err := Create(name, 4096)
	require.NoError(t, err)
	defer func() { require.NoError(t, seg.Close()) }()

	opened, err := Open(name, true)
	require.NoError(t, err)
	defer func() { require.NoError(t, opened.Close()) }()

	m, err := Map[int64](opened, 0)
	require.NoError(t, err)
	require.Panics(t, func() { m.Set(1) })
}

func TestMap_offsetExceedsSegmentFails(t *testing.T) {
	name := uniqueName(t)
	seg, err := Create(name, 8)
	require.NoError(t, err)
	defer func() { require.NoError(t, seg.Close()) }()

	_, err = Map[int64](seg, 100)
	require.Error(t, err)
}
