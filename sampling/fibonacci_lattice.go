// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package sampling

import (
	"github.com/terragrove/mapscatter/internal/rng"
	"github.com/terragrove/mapscatter/vecf"
)

// phi is the golden ratio.
const phi = 1.618034

// FibonacciLattice places Count points on a golden-ratio Kronecker sequence,
// optionally rotated by a random Cranley-Patterson offset.
type FibonacciLattice struct {
	Count  int
	Rotate bool
}

func NewFibonacciLattice(count int) FibonacciLattice {
	return FibonacciLattice{Count: count}
}

func NewFibonacciLatticeWithRotation(count int, rotate bool) FibonacciLattice {
	return FibonacciLattice{Count: count, Rotate: rotate}
}

func (s FibonacciLattice) Generate(domainExtent vecf.Vec2, src rng.Source) []vecf.Vec2 {
	w, h := domainExtent.X, domainExtent.Y
	if s.Count == 0 || w <= 0 || h <= 0 {
		return nil
	}

	const alpha = 1.0 / phi

	var dx, dy float32
	if s.Rotate {
		dx, dy = rand01(src), rand01(src)
	}

	halfW, halfH := w*0.5, h*0.5
	maxX, maxY := nextDown(halfW), nextDown(halfH)

	out := make([]vecf.Vec2, 0, s.Count)
	for i := 0; i < s.Count; i++ {
		fi := float32(i)

		u := (fi + dx) / float32(s.Count)
		v := frac(fi*alpha + dy)

		x := clampRange(u*w-halfW, -halfW, maxX)
		y := clampRange(v*h-halfH, -halfH, maxY)
		out = append(out, vecf.Vec2{X: x, Y: y})
	}
	return out
}
