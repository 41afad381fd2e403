// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package rng provides the single deterministic random source shared by the
// sampling and scatter packages. Every call site draws through Source's
// NextU32, so a run is fully reproducible from its seed regardless of which
// strategies it exercises.
package rng

import (
	"crypto/sha256"
	"encoding/binary"
	"math"
	"math/rand"
)

// Source is the minimal interface the sampling strategies depend on: one
// raw 32-bit draw, from which every other distribution is derived.
type Source interface {
	NextU32() uint32
}

// Rand is the module's concrete Source, a thin wrapper over math/rand's
// generator seeded deterministically.
type Rand struct {
	source *rand.Rand
}

// NewRand returns a Rand seeded deterministically from seed.
func NewRand(seed uint64) *Rand {
	return &Rand{source: rand.New(rand.NewSource(int64(seed)))}
}

// NextU32 returns the next pseudo-random 32-bit value.
func (r *Rand) NextU32() uint32 {
	return r.source.Uint32()
}

// Derive computes a sub-seed from a master seed, a label identifying the
// call site (e.g. a Kind id or layer name), and an arbitrary config fingerprint,
// via SHA-256 over their concatenation. Identical inputs always yield the
// identical sub-seed; different labels or fingerprints diverge.
func Derive(masterSeed uint64, label string, fingerprint uint64) uint64 {
	h := sha256.New()

	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], masterSeed)
	h.Write(buf[:])

	h.Write([]byte(label))

	binary.BigEndian.PutUint64(buf[:], fingerprint)
	h.Write(buf[:])

	sum := h.Sum(nil)
	return binary.BigEndian.Uint64(sum[:8])
}

// denomU32Plus1 is (u32::MAX as f32) + 1.0, which rounds to exactly 2^32 at
// float32 precision.
const denomU32Plus1 = 4294967296.0

// Rand01 draws a uniform value in [0, 1) from src: next_u32() / (u32::MAX + 1).
// Inputs near u32::MAX round to exactly 1.0 at float32 precision, so the
// result is clamped to the largest float32 below 1 to keep the half-open
// contract.
func Rand01(src Source) float32 {
	f := float32(src.NextU32()) / denomU32Plus1
	if f >= 1 {
		return math.Nextafter32(1, 0)
	}
	return f
}
