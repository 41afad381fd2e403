// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package scatter

import (
	"testing"

	"github.com/terragrove/mapscatter/fieldgraph"
	"github.com/terragrove/mapscatter/internal/rng"
	"github.com/terragrove/mapscatter/sampling"
	"github.com/terragrove/mapscatter/vecf"
)

func testKind(id string) Kind {
	return NewKind(id, fieldgraph.NewSpec())
}

type emptySampling struct{}

func (emptySampling) Generate(vecf.Vec2, rng.Source) []vecf.Vec2 { return nil }

func TestLayerBuilderSetsOptionalFields(t *testing.T) {
	layer := NewLayer("id", []Kind{testKind("a")}, emptySampling{}).
		WithOverlay(32, 16, 4).
		WithSelectionStrategy(SelectionHighestProbability)

	if layer.ID != "id" {
		t.Fatalf("id = %q", layer.ID)
	}
	if len(layer.Kinds) != 1 {
		t.Fatalf("kinds len = %d", len(layer.Kinds))
	}
	if !layer.HasOverlay || layer.OverlayMaskWidthPx != 32 || layer.OverlayMaskHeightPx != 16 || layer.OverlayBrushRadiusPx != 4 {
		t.Fatalf("overlay fields not set: %+v", layer)
	}
	if layer.SelectionStrategy != SelectionHighestProbability {
		t.Fatalf("selection strategy = %v", layer.SelectionStrategy)
	}
}

func TestPlanBuilderPushesLayers(t *testing.T) {
	layer := NewLayer("layer", []Kind{testKind("a")}, emptySampling{})
	plan := NewPlan().WithLayer(layer)
	if len(plan.Layers) != 1 {
		t.Fatalf("layers len = %d", len(plan.Layers))
	}

	plan2 := NewPlan().WithLayers([]Layer{layer, layer})
	if len(plan2.Layers) != 2 {
		t.Fatalf("layers len = %d", len(plan2.Layers))
	}
}

func TestSamplingStrategySatisfiesInterface(t *testing.T) {
	var _ sampling.Strategy = emptySampling{}
}
