// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chunk implements the tiling geometry that divides a domain into
// fixed-size chunks, each with its own raster-sampling lattice. It holds
// no mutable state; everything here is coordinate math over an immutable
// domain description.
package chunk

import (
	"fmt"
	"math"

	"github.com/terragrove/mapscatter/internal/rng"
	"github.com/terragrove/mapscatter/vecf"
)

// ID identifies one chunk of the domain by signed integer coordinates.
type ID struct {
	I, J int32
}

// Geometry derives chunk ids and origins from a domain description. It owns
// no mutable state; every method is a pure function of its inputs.
type Geometry struct {
	DomainExtent vecf.Vec2 // (w, h), both > 0
	DomainCenter vecf.Vec2
	ChunkExtent  float32 // > 0, world units per chunk edge
}

// Bounds is the domain's coverage as an axis-aligned rectangle.
func (g Geometry) Bounds() vecf.Rect {
	return vecf.RectFromCenter(g.DomainCenter, g.DomainExtent.X, g.DomainExtent.Y)
}

// WorldMin is the lower-left corner of the domain in world space.
func (g Geometry) WorldMin() vecf.Vec2 {
	return g.Bounds().Min()
}

// Contains reports whether p lies within the domain's half-open bounds.
func (g Geometry) Contains(p vecf.Vec2) bool {
	return g.Bounds().ContainsHalfOpen(p)
}

// ChunkAt maps a world point to the chunk that contains it.
func (g Geometry) ChunkAt(p vecf.Vec2) ID {
	rel := p.Sub(g.WorldMin())
	idx := rel.FloorDiv(g.ChunkExtent)
	return ID{I: int32(idx.X), J: int32(idx.Y)}
}

// Origin returns the world-space lower-left corner of chunk id.
func (g Geometry) Origin(id ID) vecf.Vec2 {
	return g.WorldMin().Add(vecf.Vec2{X: float32(id.I), Y: float32(id.J)}.Mul(g.ChunkExtent))
}

// Grid builds the raster-sampling lattice for a chunk given the run's raster
// cell size and halo: width = height = ceil(chunk_extent/raster_cell_size),
// clamped to >= 1, preserving halo.
func (g Geometry) Grid(id ID, rasterCellSize float32, halo int) Grid {
	cells := int(math.Ceil(float64(g.ChunkExtent / rasterCellSize)))
	if cells < 1 {
		cells = 1
	}
	return Grid{
		Origin:   g.Origin(id),
		CellSize: rasterCellSize,
		Width:    cells,
		Height:   cells,
		Halo:     halo,
	}
}

// SeedForChunk derives a deterministic 64-bit seed for chunk id from a base
// seed, via rng.Derive keyed on the chunk's coordinates. It is a stable
// function: identical inputs always produce the identical output, across
// runs and versions.
func SeedForChunk(base uint64, id ID) uint64 {
	return rng.Derive(base, fmt.Sprintf("chunk:%d:%d", id.I, id.J), 0)
}
