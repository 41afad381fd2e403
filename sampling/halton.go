// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package sampling

import (
	"github.com/terragrove/mapscatter/internal/rng"
	"github.com/terragrove/mapscatter/vecf"
)

// Halton generates a low-discrepancy sequence over the domain using a 2D
// Halton sequence, optionally rotated by a random Cranley-Patterson offset.
type Halton struct {
	Count      int
	BaseX      uint32 // >= 2
	BaseY      uint32 // >= 2
	StartIndex uint32
	Rotate     bool
}

// NewHalton returns a Halton sampler with the conventional bases (2, 3),
// start index 1, and no rotation.
func NewHalton(count int) Halton {
	return Halton{Count: count, BaseX: 2, BaseY: 3, StartIndex: 1}
}

func NewHaltonWithRotation(count int, rotate bool) Halton {
	h := NewHalton(count)
	h.Rotate = rotate
	return h
}

// NewHaltonWithBases panics if either base is below 2; the radical inverse
// is undefined for smaller bases.
func NewHaltonWithBases(count int, baseX, baseY uint32, rotate bool) Halton {
	if baseX < 2 || baseY < 2 {
		panic("sampling: halton bases must be >= 2")
	}
	return Halton{Count: count, BaseX: baseX, BaseY: baseY, StartIndex: 1, Rotate: rotate}
}

func (h Halton) WithStartIndex(startIndex uint32) Halton {
	h.StartIndex = startIndex
	return h
}

func (h Halton) Generate(domainExtent vecf.Vec2, src rng.Source) []vecf.Vec2 {
	w, h2 := domainExtent.X, domainExtent.Y
	if h.Count == 0 || w <= 0 || h2 <= 0 {
		return nil
	}

	var dx, dy float32
	if h.Rotate {
		dx, dy = rand01(src), rand01(src)
	}

	halfW, halfH := w*0.5, h2*0.5
	maxX, maxY := nextDown(halfW), nextDown(halfH)

	out := make([]vecf.Vec2, 0, h.Count)
	start := uint64(h.StartIndex)
	for i := 0; i < h.Count; i++ {
		idx := start + uint64(i)

		u := frac(radicalInverse(idx, h.BaseX) + dx)
		v := frac(radicalInverse(idx, h.BaseY) + dy)

		x := clampRange(u*w-halfW, -halfW, maxX)
		y := clampRange(v*h2-halfH, -halfH, maxY)
		out = append(out, vecf.Vec2{X: x, Y: y})
	}
	return out
}

// radicalInverse computes the base-b radical inverse of n, clamped below 1.0
// to guard against accumulated floating point noise.
func radicalInverse(n uint64, base uint32) float32 {
	if n == 0 {
		return 0
	}

	b := float32(base)
	invB := 1.0 / b
	f := invB
	var result float32

	for n > 0 {
		digit := float32(n % uint64(base))
		result += digit * f
		n /= uint64(base)
		f *= invB
	}

	if result >= 1.0 {
		return nextDown(1.0)
	}
	return result
}
