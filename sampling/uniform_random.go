// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package sampling

import (
	"github.com/terragrove/mapscatter/internal/rng"
	"github.com/terragrove/mapscatter/vecf"
)

// UniformRandom draws Count i.i.d. uniform points over the domain.
type UniformRandom struct {
	Count int
}

func NewUniformRandom(count int) UniformRandom {
	return UniformRandom{Count: count}
}

func (s UniformRandom) Generate(domainExtent vecf.Vec2, src rng.Source) []vecf.Vec2 {
	w, h := domainExtent.X, domainExtent.Y
	if s.Count == 0 || w <= 0 || h <= 0 {
		return nil
	}

	halfW, halfH := w*0.5, h*0.5
	maxX, maxY := nextDown(halfW), nextDown(halfH)

	out := make([]vecf.Vec2, 0, s.Count)
	for i := 0; i < s.Count; i++ {
		u, v := rand01(src), rand01(src)
		x := clampRange(u*w-halfW, -halfW, maxX)
		y := clampRange(v*h-halfH, -halfH, maxY)
		out = append(out, vecf.Vec2{X: x, Y: y})
	}
	return out
}
