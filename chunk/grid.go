// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package chunk

import (
	"math"

	"github.com/terragrove/mapscatter/vecf"
)

// Grid is a rectangular sampling lattice over world space.
type Grid struct {
	Origin   vecf.Vec2 // world-space lower-left of the non-halo region
	CellSize float32   // world units per cell, > 0
	Width    int       // cell count, >= 1 (non-halo)
	Height   int       // cell count, >= 1 (non-halo)
	Halo     int       // extra cell bands on every side, >= 0
}

// TotalWidth is the full lattice width including halo on both sides.
func (g Grid) TotalWidth() int {
	return g.Width + 2*g.Halo
}

// TotalHeight is the full lattice height including halo on both sides.
func (g Grid) TotalHeight() int {
	return g.Height + 2*g.Halo
}

// Index maps a world position to its (possibly out-of-range) cell index:
// ((p - origin) / cell_size) + halo, floored.
func (g Grid) Index(p vecf.Vec2) (ix, iy int) {
	rel := p.Sub(g.Origin).Div(g.CellSize)
	ix = int(math.Floor(float64(rel.X))) + g.Halo
	iy = int(math.Floor(float64(rel.Y))) + g.Halo
	return
}

// InRange reports whether (ix, iy) addresses a cell within the total
// lattice.
func (g Grid) InRange(ix, iy int) bool {
	return ix >= 0 && ix < g.TotalWidth() && iy >= 0 && iy < g.TotalHeight()
}

// CellCenter returns the world-space center of cell (ix, iy), accounting
// for the halo offset.
func (g Grid) CellCenter(ix, iy int) vecf.Vec2 {
	return vecf.Vec2{
		X: g.Origin.X + (float32(ix-g.Halo)+0.5)*g.CellSize,
		Y: g.Origin.Y + (float32(iy-g.Halo)+0.5)*g.CellSize,
	}
}
