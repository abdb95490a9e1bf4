// Package fnvhash provides a content hasher parameterized on a kernel,
// defaulting to 64-bit FNV-1a.
package fnvhash

import "hash/fnv"

// Kernel produces a fresh hash.Hash64 seeded the same way every call, so
// that two Hashers built from the same Kernel combine identically.
type Kernel func() hashState

// hashState is the minimal surface Hasher needs from hash/fnv's internal
// state: write bytes, read the accumulated sum.
type hashState interface {
	Write(p []byte) (int, error)
	Sum64() uint64
}

// DefaultKernel is 64-bit FNV-1a with the canonical offset-basis
// 14695981039346656037 and prime 1099511628211 — exactly stdlib
// hash/fnv's constants, so it wraps fnv.New64a rather than
// reimplementing the algorithm.
func DefaultKernel() Kernel {
	return func() hashState { return fnv.New64a() }
}

// Hasher accumulates bytes under a Kernel and reports the running sum.
type Hasher struct {
	h hashState
}

// New constructs a Hasher from a Kernel. A nil Kernel uses DefaultKernel.
func New(k Kernel) *Hasher {
	if k == nil {
		k = DefaultKernel()
	}
	return &Hasher{h: k()}
}

// Write feeds more bytes into the hash, matching io.Writer.
func (h *Hasher) Write(p []byte) (int, error) {
	return h.h.Write(p)
}

// Sum64 returns the current accumulated hash.
func (h *Hasher) Sum64() uint64 {
	return h.h.Sum64()
}

// Combine hashes the concatenation of two byte slices under k, equivalent
// to hashing a || b as one input.
func Combine(k Kernel, a, b []byte) uint64 {
	h := New(k)
	_, _ = h.Write(a)
	_, _ = h.Write(b)
	return h.Sum64()
}
