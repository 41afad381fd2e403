// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package scatter

import (
	"github.com/terragrove/mapscatter/fieldgraph"
	"github.com/terragrove/mapscatter/vecf"
)

// OverlayTexture is a single-channel raster mask built from a layer's
// placements, registered into the texture registry so later layers can gate
// or weight on it (e.g. "no trees within N px of a placed rock").
type OverlayTexture struct {
	DomainExtent vecf.Vec2
	DomainCenter vecf.Vec2
	Width        uint32
	Height       uint32
	DataR        []float32
}

func NewOverlayTexture(domainExtent vecf.Vec2, width, height uint32, dataR []float32) *OverlayTexture {
	return NewOverlayTextureCentered(domainExtent, vecf.Vec2{}, width, height, dataR)
}

func NewOverlayTextureCentered(domainExtent, domainCenter vecf.Vec2, width, height uint32, dataR []float32) *OverlayTexture {
	return &OverlayTexture{DomainExtent: domainExtent, DomainCenter: domainCenter, Width: width, Height: height, DataR: dataR}
}

// SampleDomain reads channel at world position p, nearest-texel. An empty
// texture samples 0 on R and 1 on A; A reads 1 for every texture, since
// the mask carries no alpha data.
func (o *OverlayTexture) SampleDomain(channel fieldgraph.Channel, p vecf.Vec2) float32 {
	if o.Width == 0 || o.Height == 0 {
		if channel == fieldgraph.ChannelA {
			return 1
		}
		return 0
	}

	rel := p.Sub(o.DomainCenter)

	u := float32(0.5)
	if o.DomainExtent.X != 0 {
		u = vecf.Clamp(rel.X/o.DomainExtent.X+0.5, 0, 1)
	}
	v := float32(0.5)
	if o.DomainExtent.Y != 0 {
		v = vecf.Clamp(rel.Y/o.DomainExtent.Y+0.5, 0, 1)
	}

	w1 := o.Width - 1
	h1 := o.Height - 1
	x := uint32(u * float32(o.Width))
	if x > w1 {
		x = w1
	}
	y := uint32(v * float32(o.Height))
	if y > h1 {
		y = h1
	}
	idx := int(y)*int(o.Width) + int(x)

	switch channel {
	case fieldgraph.ChannelR:
		if idx < len(o.DataR) {
			return o.DataR[idx]
		}
		return 0
	case fieldgraph.ChannelA:
		return 1
	default:
		return 0
	}
}

// Sample implements fieldgraph.Texture.
func (o *OverlayTexture) Sample(channel fieldgraph.Channel, p vecf.Vec2) float32 {
	return o.SampleDomain(channel, p)
}

// buildOverlayMaskFromPositions rasterizes positions into a widthPx x
// heightPx mask over domainExtent centered at domainCenter, stamping a
// filled disc of stampRadiusPx pixels at every position.
func buildOverlayMaskFromPositions(domainExtent, domainCenter vecf.Vec2, positions []vecf.Vec2, widthPx, heightPx uint32, stampRadiusPx int32) *OverlayTexture {
	length := int(widthPx) * int(heightPx)
	if length == 0 {
		return NewOverlayTextureCentered(domainExtent, domainCenter, widthPx, heightPx, nil)
	}

	data := make([]float32, length)
	wi := int32(widthPx)
	hi := int32(heightPx)

	for _, position := range positions {
		rel := position.Sub(domainCenter)

		u := float32(0.5)
		if domainExtent.X != 0 {
			u = vecf.Clamp(rel.X/domainExtent.X+0.5, 0, 1)
		}
		v := float32(0.5)
		if domainExtent.Y != 0 {
			v = vecf.Clamp(rel.Y/domainExtent.Y+0.5, 0, 1)
		}

		px := clampI32(int32(u*float32(widthPx)), 0, wi-1)
		py := clampI32(int32(v*float32(heightPx)), 0, hi-1)

		startX := maxI32(px-stampRadiusPx, 0)
		endX := minI32(px+stampRadiusPx, wi-1)
		startY := maxI32(py-stampRadiusPx, 0)
		endY := minI32(py+stampRadiusPx, hi-1)

		r2 := stampRadiusPx * stampRadiusPx

		for sy := startY; sy <= endY; sy++ {
			row := int(sy) * int(widthPx)
			for sx := startX; sx <= endX; sx++ {
				dx := sx - px
				dy := sy - py
				if dx*dx+dy*dy <= r2 {
					data[row+int(sx)] = 1
				}
			}
		}
	}

	return NewOverlayTextureCentered(domainExtent, domainCenter, widthPx, heightPx, data)
}

func clampI32(v, lo, hi int32) int32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxI32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

func minI32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}
