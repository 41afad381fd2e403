// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package scatter

import (
	"github.com/terragrove/mapscatter/chunk"
	"github.com/terragrove/mapscatter/vecf"
)

// chunkIDAndGridForPosition resolves the chunk id and raster grid that a
// world position falls in for a centered domain, using the run's chunk
// extent, raster cell size and halo.
func chunkIDAndGridForPosition(position, domainExtent, domainCenter vecf.Vec2, chunkExtent, rasterCellSize float32, halo int) (chunk.ID, chunk.Grid) {
	geo := chunk.Geometry{DomainExtent: domainExtent, DomainCenter: domainCenter, ChunkExtent: chunkExtent}
	id := geo.ChunkAt(position)
	grid := geo.Grid(id, rasterCellSize, halo)
	return id, grid
}
