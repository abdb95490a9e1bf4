package fnvhash

import (
	"hash/fnv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHasher_matchesStdlib(t *testing.T) {
	h := New(nil)
	_, err := h.Write([]byte("hello world"))
	require.NoError(t, err)

	want := fnv.New64a()
	_, _ = want.Write([]byte("hello world"))

	require.Equal(t, want.Sum64(), h.Sum64())
}

func TestCombine_equivalentToConcatenation(t *testing.T) {
	got := Combine(nil, []byte("foo"), []byte("bar"))

	want := fnv.New64a()
	_, _ = want.Write([]byte("foo"))
	_, _ = want.Write([]byte("bar"))

	require.Equal(t, want.Sum64(), got)
}

func TestCombine_orderSensitive(t *testing.T) {
	ab := Combine(nil, []byte("foo"), []byte("bar"))
	ba := Combine(nil, []byte("bar"), []byte("foo"))
	require.NotEqual(t, ab, ba)
}
