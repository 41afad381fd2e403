// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package scatter

import "github.com/terragrove/mapscatter/sampling"

// SelectionStrategy picks a Kind among those allowed at a candidate
// position.
type SelectionStrategy uint8

const (
	SelectionWeightedRandom SelectionStrategy = iota
	SelectionHighestProbability
)

// Layer is one pass of the plan: a set of candidate positions drawn from
// Sampling, evaluated against Kinds, with an optional overlay mask emitted
// for later layers to read.
type Layer struct {
	ID                   string
	Kinds                []Kind
	Sampling             sampling.Strategy
	OverlayMaskWidthPx   uint32
	OverlayMaskHeightPx  uint32
	OverlayBrushRadiusPx int32
	HasOverlay           bool
	SelectionStrategy    SelectionStrategy
}

// NewLayer creates a layer with the default selection strategy and no
// overlay.
func NewLayer(id string, kinds []Kind, strategy sampling.Strategy) Layer {
	return Layer{
		ID:                id,
		Kinds:             kinds,
		Sampling:          strategy,
		SelectionStrategy: SelectionWeightedRandom,
	}
}

// WithOverlay sets the overlay mask size in pixels and brush radius in
// pixels, returning the updated layer.
func (l Layer) WithOverlay(widthPx, heightPx uint32, brushRadiusPx int32) Layer {
	l.OverlayMaskWidthPx = widthPx
	l.OverlayMaskHeightPx = heightPx
	l.OverlayBrushRadiusPx = brushRadiusPx
	l.HasOverlay = true
	return l
}

// WithSelectionStrategy sets the selection strategy, returning the updated
// layer.
func (l Layer) WithSelectionStrategy(strategy SelectionStrategy) Layer {
	l.SelectionStrategy = strategy
	return l
}

// Plan is an ordered sequence of Layers executed by run order; an overlay
// produced by an earlier layer is visible to every later one.
type Plan struct {
	Layers []Layer
}

// NewPlan returns an empty plan.
func NewPlan() Plan {
	return Plan{}
}

// WithLayer appends a single layer, returning the updated plan.
func (p Plan) WithLayer(layer Layer) Plan {
	p.Layers = append(p.Layers, layer)
	return p
}

// WithLayers appends multiple layers, returning the updated plan.
func (p Plan) WithLayers(layers []Layer) Plan {
	p.Layers = append(p.Layers, layers...)
	return p
}
