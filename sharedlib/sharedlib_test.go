package sharedlib

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpen_missingFileFails(t *testing.T) {
	_, err := Open("/no/such/library.so")
	require.ErrorAs(t, err, new(*LoadFailedError))
}

func TestLibrary_closeIsIdempotent(t *testing.T) {
	l := &Library{path: "test"}
	require.NoError(t, l.Close())
	require.NoError(t, l.Close())
}

func TestLibrary_symbolAfterCloseFails(t *testing.T) {
	l := &Library{path: "test"}
	require.NoError(t, l.Close())
	_, err := l.Symbol("Anything")
	require.ErrorAs(t, err, new(*SymbolNotFoundError))
}
