// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package sampling implements the position-sampling strategies that propose
// candidate points for the scatter pipeline: UniformRandom, Halton,
// FibonacciLattice, StratifiedMultiJitter, BestCandidate, PoissonDisk,
// JitterGrid, HexJitterGrid, and Clustered (Thomas/Neyman-Scott). Every
// strategy draws its randomness exclusively through an rng.Source, so a run
// is reproducible from its seed alone.
package sampling

import (
	"math"

	"github.com/terragrove/mapscatter/internal/rng"
	"github.com/terragrove/mapscatter/vecf"
)

// Strategy generates candidate positions in an origin-centered rectangle of
// the given extent. Implementations return positions in [-extent/2,
// extent/2) on both axes.
type Strategy interface {
	Generate(domainExtent vecf.Vec2, src rng.Source) []vecf.Vec2
}

func rand01(src rng.Source) float32 {
	return rng.Rand01(src)
}

func frac(x float32) float32 {
	return x - float32(math.Floor(float64(x)))
}

// minPositiveFloat32 is the smallest positive normal float32 (2^-126).
const minPositiveFloat32 float32 = 1.1754944e-38

// nextDown returns the next representable float32 strictly below val, the
// bit-twiddling every strategy below uses to turn an inclusive upper bound
// into the exclusive bound this package's Strategy contract requires.
func nextDown(val float32) float32 {
	return vecf.NextBelow(val)
}

// clampRange clamps v to [lo, hi]. Callers never pass NaN bounds.
func clampRange(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
