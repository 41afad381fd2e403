// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package fieldgraph

import (
	"log"
	"math"

	"github.com/terragrove/mapscatter/chunk"
	"github.com/terragrove/mapscatter/vecf"
)

type rasterKey struct {
	field FieldID
	chunk chunk.ID
}

// Runtime interprets a compiled Program against a TextureRegistry. It
// caches baked rasters per (field, chunk) so that a forced bake or an
// EdtNormalize node is computed at most once per chunk. A Runtime is
// single-use per chunk's evaluation pass; it is not safe for concurrent use
// from multiple goroutines.
type Runtime struct {
	Program  *Program
	Textures *TextureRegistry

	baked map[rasterKey]*chunk.Raster
}

func NewRuntime(program *Program, textures *TextureRegistry) *Runtime {
	return &Runtime{
		Program:  program,
		Textures: textures,
		baked:    make(map[rasterKey]*chunk.Raster),
	}
}

// Sample evaluates field at world position p within id/grid, preferring an
// already-baked raster, then forcing a bake if the node requires it, and
// otherwise evaluating inline.
func (rt *Runtime) sample(field FieldID, p vecf.Vec2, id chunk.ID, grid chunk.Grid) float32 {
	key := rasterKey{field: field, chunk: id}
	if raster, ok := rt.baked[key]; ok {
		return raster.SampleDomain(p)
	}

	if meta, ok := rt.Program.Nodes[field]; ok && meta.ForceBake {
		rt.bakeRasterIfNeeded(field, id, grid)
		if raster, ok := rt.baked[key]; ok {
			return raster.SampleDomain(p)
		}
		log.Printf("mapscatter: raster for %q not found after force bake", field)
	}

	return rt.evalFieldValue(field, p, id, grid)
}

// Sample is the exported entry point for evaluating a field by id.
func (rt *Runtime) Sample(field FieldID, p vecf.Vec2, id chunk.ID, grid chunk.Grid) float32 {
	return rt.sample(field, p, id, grid)
}

func (rt *Runtime) evalFieldValue(field FieldID, p vecf.Vec2, id chunk.ID, grid chunk.Grid) float32 {
	meta, ok := rt.Program.Nodes[field]
	if !ok {
		log.Printf("mapscatter: unknown field %q", field)
		return 0
	}
	node := meta.Spec

	input := func(i int) FieldID {
		if i < len(node.Inputs) {
			return node.Inputs[i]
		}
		return ""
	}

	switch node.Op {
	case OpConstant:
		return node.Value
	case OpTexture:
		return rt.Textures.Sample(node.TextureID, node.Channel, p)
	case OpAdd:
		var sum float32
		for _, in := range node.Inputs {
			sum += rt.sample(in, p, id, grid)
		}
		return sum
	case OpSub:
		if len(node.Inputs) == 0 {
			return 0
		}
		acc := rt.sample(node.Inputs[0], p, id, grid)
		for _, in := range node.Inputs[1:] {
			acc -= rt.sample(in, p, id, grid)
		}
		return acc
	case OpMul:
		product := float32(1)
		for _, in := range node.Inputs {
			product *= rt.sample(in, p, id, grid)
		}
		return product
	case OpMin:
		minVal := float32(math.Inf(1))
		for _, in := range node.Inputs {
			v := rt.sample(in, p, id, grid)
			if v < minVal {
				minVal = v
			}
		}
		return minVal
	case OpMax:
		maxVal := float32(math.Inf(-1))
		for _, in := range node.Inputs {
			v := rt.sample(in, p, id, grid)
			if v > maxVal {
				maxVal = v
			}
		}
		return maxVal
	case OpInvert:
		return 1 - rt.sample(input(0), p, id, grid)
	case OpScale:
		return rt.sample(input(0), p, id, grid) * node.Factor
	case OpClamp:
		return vecf.Clamp(rt.sample(input(0), p, id, grid), node.Min, node.Max)
	case OpSmoothStep:
		return smoothstep01(node.Edge0, node.Edge1, rt.sample(input(0), p, id, grid))
	case OpPow:
		return float32(math.Pow(float64(rt.sample(input(0), p, id, grid)), float64(node.Exp)))
	case OpEdtNormalize:
		rt.bakeRasterIfNeeded(field, id, grid)
		if raster, ok := rt.baked[rasterKey{field: field, chunk: id}]; ok {
			return raster.SampleDomain(p)
		}
		log.Printf("mapscatter: raster for %q not found after baking", field)
		return 0
	default:
		log.Printf("mapscatter: unhandled op for field %q", field)
		return 0
	}
}

func (rt *Runtime) bakeRasterIfNeeded(field FieldID, id chunk.ID, grid chunk.Grid) {
	key := rasterKey{field: field, chunk: id}
	if _, ok := rt.baked[key]; ok {
		return
	}

	meta, ok := rt.Program.Nodes[field]
	if !ok {
		log.Printf("mapscatter: cannot bake unknown field %q", field)
		return
	}

	if meta.Spec.Op == OpEdtNormalize {
		var inputID FieldID
		if len(meta.Spec.Inputs) > 0 {
			inputID = meta.Spec.Inputs[0]
		}
		raster := bakeEdtNormalizeParams(rt, inputID, meta.Spec.Threshold, meta.Spec.DMax, id, grid)
		rt.baked[key] = raster
		return
	}

	raster := chunk.NewRaster(grid)
	tw, th := grid.TotalWidth(), grid.TotalHeight()
	for iy := 0; iy < th; iy++ {
		for ix := 0; ix < tw; ix++ {
			p := grid.CellCenter(ix, iy)
			raster.Set(ix, iy, rt.evalFieldValue(field, p, id, grid))
		}
	}
	rt.baked[key] = raster
}

// smoothstep01 is the Hermite smoothstep, treating a degenerate edge range
// (edge1 == edge0, within float32 epsilon) as a hard step at edge1 rather
// than dividing by zero.
func smoothstep01(edge0, edge1, x float32) float32 {
	denom := edge1 - edge0
	if float32(math.Abs(float64(denom))) <= epsilon32 {
		if x >= edge1 {
			return 1
		}
		return 0
	}
	t := vecf.Clamp((x-edge0)/denom, 0, 1)
	return t * t * (3 - 2*t)
}
