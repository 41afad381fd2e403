// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package sampling

import (
	"math"

	"github.com/terragrove/mapscatter/internal/rng"
	"github.com/terragrove/mapscatter/vecf"
)

// JitterGrid places one point per cell of a regular grid, jittered by up to
// Jitter (in [0, 1], where 0 is the cell center and 1 is the full half-cell).
type JitterGrid struct {
	Jitter   float32
	CellSize float32
}

// NewJitterGrid clamps jitter to [0, 1].
func NewJitterGrid(jitter, cellSize float32) JitterGrid {
	return JitterGrid{Jitter: vecf.Clamp(jitter, 0, 1), CellSize: cellSize}
}

func (s JitterGrid) Generate(domainExtent vecf.Vec2, src rng.Source) []vecf.Vec2 {
	w, h := domainExtent.X, domainExtent.Y
	if w <= 0 || h <= 0 {
		return nil
	}

	eff := s.CellSize
	if !(eff > 0 && !math.IsInf(float64(eff), 0) && !math.IsNaN(float64(eff))) {
		eff = vecf.Max(vecf.Min(w, h)/10.0, 1.0)
	}

	cols := int(math.Floor(float64(w / eff)))
	rows := int(math.Floor(float64(h / eff)))
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	cellW := w / float32(cols)
	cellH := h / float32(rows)

	halfW, halfH := w*0.5, h*0.5
	maxX, maxY := nextDown(halfW), nextDown(halfH)

	jitterX := s.Jitter * (cellW * 0.5)
	jitterY := s.Jitter * (cellH * 0.5)

	points := make([]vecf.Vec2, 0, cols*rows)
	for j := 0; j < rows; j++ {
		for i := 0; i < cols; i++ {
			x0 := -halfW + float32(i)*cellW
			y0 := -halfH + float32(j)*cellH
			cx := x0 + cellW*0.5
			cy := y0 + cellH*0.5

			var jx, jy float32
			if jitterX > 0 {
				r := rand01(src)*2.0 - 1.0
				jx = clampRange(r*jitterX, -(cellW * 0.5), cellW*0.5)
			}
			if jitterY > 0 {
				r := rand01(src)*2.0 - 1.0
				jy = clampRange(r*jitterY, -(cellH * 0.5), cellH*0.5)
			}

			px := clampRange(cx+jx, -halfW, maxX)
			py := clampRange(cy+jy, -halfH, maxY)
			points = append(points, vecf.Vec2{X: px, Y: py})
		}
	}
	return points
}
