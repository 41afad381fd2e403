// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package sampling

import (
	"math"

	"github.com/terragrove/mapscatter/internal/rng"
	"github.com/terragrove/mapscatter/vecf"
)

// HexJitterGrid places one point per cell of a hexagonally-staggered
// (triangular) lattice, jittered by up to Jitter in [0, 1].
type HexJitterGrid struct {
	Jitter   float32
	CellSize float32
}

// NewHexJitterGrid clamps jitter to [0, 1].
func NewHexJitterGrid(jitter, cellSize float32) HexJitterGrid {
	return HexJitterGrid{Jitter: vecf.Clamp(jitter, 0, 1), CellSize: cellSize}
}

func (s HexJitterGrid) Generate(domainExtent vecf.Vec2, src rng.Source) []vecf.Vec2 {
	w, h := domainExtent.X, domainExtent.Y
	if !isFinite32(w) || !isFinite32(h) || w <= 0 || h <= 0 {
		return nil
	}

	dx := s.CellSize
	if !(dx > 0 && isFinite32(dx)) {
		dx = vecf.Max(vecf.Min(w, h)/10.0, 1.0)
	}

	dy := dx * float32(math.Sqrt(3)) * 0.5

	cols := int(math.Floor(float64(w / dx)))
	rows := int(math.Floor(float64(h / dy)))
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	halfW, halfH := w*0.5, h*0.5
	maxX, maxY := nextDown(halfW), nextDown(halfH)

	jitterX := s.Jitter * (dx * 0.5)
	jitterY := s.Jitter * (dy * 0.5)

	y0 := -halfH + 0.5*dy
	x0Even := -halfW + 0.5*dx

	points := make([]vecf.Vec2, 0, cols*rows)
	for j := 0; j < rows; j++ {
		yc := y0 + float32(j)*dy

		var rowOffsetX float32
		if j%2 != 0 {
			rowOffsetX = 0.5 * dx
		}
		x0 := x0Even + rowOffsetX

		for i := 0; i < cols; i++ {
			cx := x0 + float32(i)*dx
			cy := yc

			var jx, jy float32
			if jitterX > 0 {
				r := rand01(src)*2.0 - 1.0
				jx = clampRange(r*jitterX, -(dx * 0.5), dx*0.5)
			}
			if jitterY > 0 {
				r := rand01(src)*2.0 - 1.0
				jy = clampRange(r*jitterY, -(dy * 0.5), dy*0.5)
			}

			px := clampRange(cx+jx, -halfW, maxX)
			py := clampRange(cy+jy, -halfH, maxY)
			points = append(points, vecf.Vec2{X: px, Y: py})
		}
	}
	return points
}

func isFinite32(f float32) bool {
	return !math.IsInf(float64(f), 0) && !math.IsNaN(float64(f))
}
