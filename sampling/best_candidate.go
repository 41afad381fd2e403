// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package sampling

import (
	"math"

	"github.com/terragrove/mapscatter/internal/rng"
	"github.com/terragrove/mapscatter/vecf"
)

// BestCandidate is Mitchell's best-candidate blue-noise sampler: each new
// point is the farthest of K random trials from the points placed so far.
type BestCandidate struct {
	Count int
	K     int
}

// NewBestCandidate clamps K to at least 1.
func NewBestCandidate(count, k int) BestCandidate {
	if k < 1 {
		k = 1
	}
	return BestCandidate{Count: count, K: k}
}

func (s BestCandidate) Generate(domainExtent vecf.Vec2, src rng.Source) []vecf.Vec2 {
	w, h := domainExtent.X, domainExtent.Y
	if s.Count == 0 || w <= 0 || h <= 0 {
		return nil
	}

	halfW, halfH := w*0.5, h*0.5
	maxX, maxY := nextDown(halfW), nextDown(halfH)

	randomPoint := func() vecf.Vec2 {
		u, v := rand01(src), rand01(src)
		x := clampRange(u*w-halfW, -halfW, maxX)
		y := clampRange(v*h-halfH, -halfH, maxY)
		return vecf.Vec2{X: x, Y: y}
	}

	points := make([]vecf.Vec2, 0, s.Count)
	for n := 0; n < s.Count; n++ {
		if len(points) == 0 {
			points = append(points, randomPoint())
			continue
		}

		var best vecf.Vec2
		bestD2 := float32(-1.0)
		found := false

		for k := 0; k < s.K; k++ {
			p := randomPoint()

			nearest := float32(math.Inf(1))
			for _, q := range points {
				d2 := p.DistanceSquared(q)
				if d2 < nearest {
					nearest = d2
				}
			}

			if nearest > bestD2 {
				bestD2 = nearest
				best = p
				found = true
			}
		}

		if found {
			points = append(points, best)
		} else {
			points = append(points, randomPoint())
		}
	}
	return points
}
