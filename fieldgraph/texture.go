// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package fieldgraph

import (
	"log"

	"github.com/terragrove/mapscatter/vecf"
)

// Texture is a 2D texture sampled at a position in world coordinates.
// Implementations map the domain position to their own texel space.
type Texture interface {
	Sample(channel Channel, p vecf.Vec2) float32
}

// TextureRegistry is a process-local map from string id to Texture. Unknown
// ids sample to 0.0 with a logged warning.
type TextureRegistry struct {
	textures map[string]Texture
}

func NewTextureRegistry() *TextureRegistry {
	return &TextureRegistry{textures: make(map[string]Texture)}
}

// Register adds or replaces the texture at id.
func (r *TextureRegistry) Register(id string, t Texture) {
	r.textures[id] = t
}

// Unregister removes id, reporting whether it was present.
func (r *TextureRegistry) Unregister(id string) bool {
	if _, ok := r.textures[id]; !ok {
		return false
	}
	delete(r.textures, id)
	return true
}

// Get returns the texture at id, if registered.
func (r *TextureRegistry) Get(id string) (Texture, bool) {
	t, ok := r.textures[id]
	return t, ok
}

// Contains reports whether id is registered.
func (r *TextureRegistry) Contains(id string) bool {
	_, ok := r.textures[id]
	return ok
}

// Len returns the number of registered textures.
func (r *TextureRegistry) Len() int {
	return len(r.textures)
}

// Clone returns a shallow copy whose texture references are shared with r,
// used by the scatter executor to build a layer-scoped view (overlay
// textures registered on top of the base set) without mutating the
// caller's registry.
func (r *TextureRegistry) Clone() *TextureRegistry {
	out := NewTextureRegistry()
	for id, t := range r.textures {
		out.textures[id] = t
	}
	return out
}

// Sample looks up id and samples channel at p, warning and returning 0.0 on
// an unknown id.
func (r *TextureRegistry) Sample(id string, channel Channel, p vecf.Vec2) float32 {
	t, ok := r.textures[id]
	if !ok {
		log.Printf("mapscatter: unknown texture id %q", id)
		return 0
	}
	return t.Sample(channel, p)
}
