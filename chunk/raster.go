// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package chunk

import "github.com/terragrove/mapscatter/vecf"

// Raster is a baked Grid of f32 samples, row-major.
type Raster struct {
	Grid   Grid
	Values []float32 // length Grid.TotalWidth() * Grid.TotalHeight()
}

// NewRaster allocates a zeroed raster for grid.
func NewRaster(grid Grid) *Raster {
	return &Raster{
		Grid:   grid,
		Values: make([]float32, grid.TotalWidth()*grid.TotalHeight()),
	}
}

// At returns the value at cell (ix, iy). Out-of-range reads return 0.
func (r *Raster) At(ix, iy int) float32 {
	if !r.Grid.InRange(ix, iy) {
		return 0
	}
	return r.Values[ix+iy*r.Grid.TotalWidth()]
}

// Set stores the value at cell (ix, iy). Out-of-range writes are no-ops.
func (r *Raster) Set(ix, iy int, v float32) {
	if !r.Grid.InRange(ix, iy) {
		return
	}
	r.Values[ix+iy*r.Grid.TotalWidth()] = v
}

// SampleDomain does a nearest-cell read of the raster at a world position.
// Out-of-range reads return 0.
func (r *Raster) SampleDomain(p vecf.Vec2) float32 {
	ix, iy := r.Grid.Index(p)
	return r.At(ix, iy)
}
