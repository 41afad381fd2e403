// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package texture provides concrete fieldgraph.Texture implementations that
// a host registers into a fieldgraph.TextureRegistry by name.
package texture

import (
	"github.com/aquilax/go-perlin"

	"github.com/terragrove/mapscatter/fieldgraph"
	"github.com/terragrove/mapscatter/vecf"
)

// PerlinTexture samples continuous Perlin noise in domain space, remapped
// to [0, 1] on the R channel. There is no baking step of its own; the
// noise is a position -> f32 function sampled on demand at whatever
// resolution a field graph needs.
type PerlinTexture struct {
	noise     *perlin.Perlin
	frequency float32
	offset    vecf.Vec2
}

// NewPerlinTexture builds a texture from alpha/beta/n (the go-perlin
// parameters: alpha divides each successive octave's amplitude, beta
// multiplies each successive octave's frequency, n is the octave count), a
// seed, a sampling frequency and a domain-space offset.
func NewPerlinTexture(alpha, beta float64, n int32, seed int64, frequency float32, offset vecf.Vec2) *PerlinTexture {
	return &PerlinTexture{
		noise:     perlin.NewPerlin(alpha, beta, n, seed),
		frequency: frequency,
		offset:    offset,
	}
}

// Sample implements fieldgraph.Texture. Only the R channel carries noise;
// A always reads 1, as it does for scatter.OverlayTexture.
func (t *PerlinTexture) Sample(channel fieldgraph.Channel, p vecf.Vec2) float32 {
	switch channel {
	case fieldgraph.ChannelR:
		x := float64((p.X + t.offset.X) * t.frequency)
		y := float64((p.Y + t.offset.Y) * t.frequency)
		return float32(t.noise.Noise2D(x, y)*0.5 + 0.5)
	case fieldgraph.ChannelA:
		return 1
	default:
		return 0
	}
}
