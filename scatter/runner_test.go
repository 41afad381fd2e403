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

func makeProbabilityKind(id string) Kind {
	spec := fieldgraph.NewSpec()
	spec.AddWithSemantics("probability", fieldgraph.Constant(1.0), fieldgraph.SemanticsProbability)
	return NewKind(id, spec)
}

func baseRunConfig() RunConfig {
	return NewRunConfig(vecf.Vec2{X: 10, Y: 10}).
		WithChunkExtent(10).
		WithRasterCellSize(5).
		WithGridHalo(0)
}

func TestLayerEventsUseSuppliedIndex(t *testing.T) {
	cache := fieldgraph.NewProgramCache()
	textures := fieldgraph.NewTextureRegistry()
	src := rng.NewRand(42)

	layerA := NewLayer("layer_a", []Kind{makeProbabilityKind("kind_a")}, sampling.NewJitterGrid(0.0, 5.0))
	layerB := NewLayer("layer_b", []Kind{makeProbabilityKind("kind_b")}, sampling.NewJitterGrid(0.0, 5.0))
	plan := NewPlan().WithLayers([]Layer{layerA, layerB})

	sink := NewVecSink()
	RunPlan(plan, baseRunConfig(), textures, cache, src, sink)

	var startedIndices []int
	placementIndices := map[int]bool{}
	for _, event := range sink.Events() {
		switch event.Kind {
		case EventLayerStarted:
			startedIndices = append(startedIndices, event.LayerIndex)
		case EventPlacementMade:
			placementIndices[event.LayerIndex] = true
		}
	}

	if len(startedIndices) != 2 || startedIndices[0] != 0 || startedIndices[1] != 1 {
		t.Fatalf("started indices = %v", startedIndices)
	}
	if !placementIndices[0] || !placementIndices[1] {
		t.Fatalf("expected placements in both layers, got %v", placementIndices)
	}
}

func TestLayerFinishedReportsOverlayDimensions(t *testing.T) {
	cache := fieldgraph.NewProgramCache()
	textures := fieldgraph.NewTextureRegistry()
	src := rng.NewRand(7)

	layer := NewLayer("overlay_layer", []Kind{makeProbabilityKind("kind_overlay")}, sampling.NewJitterGrid(0.0, 5.0)).
		WithOverlay(8, 8, 2)
	plan := NewPlan().WithLayer(layer)

	sink := NewVecSink()
	RunPlan(plan, baseRunConfig(), textures, cache, src, sink)

	var found bool
	var widthPx, heightPx uint32
	for _, event := range sink.Events() {
		if event.Kind == EventLayerFinished && event.LayerID == "overlay_layer" && event.Overlay != nil {
			found = true
			widthPx = event.Overlay.WidthPx
			heightPx = event.Overlay.HeightPx
		}
	}
	if !found {
		t.Fatal("expected overlay summary")
	}
	if widthPx != 8 || heightPx != 8 {
		t.Fatalf("overlay size = (%d, %d), want (8, 8)", widthPx, heightPx)
	}
}

func TestRunLayerWithEventsEndsInLayerFinished(t *testing.T) {
	cache := fieldgraph.NewProgramCache()
	textures := fieldgraph.NewTextureRegistry()

	runner, err := NewScatterRunner(baseRunConfig(), textures, cache)
	if err != nil {
		t.Fatalf("NewScatterRunner: %v", err)
	}

	layer := NewLayer("solo", []Kind{makeProbabilityKind("kind_solo")}, sampling.NewJitterGrid(0.0, 5.0)).
		WithOverlay(8, 8, 1)

	sink := NewVecSink()
	result, overlayName, overlayTex := runner.RunLayerWithEvents(layer, nil, rng.NewRand(11), sink)

	events := sink.Events()
	if len(events) == 0 {
		t.Fatal("expected events")
	}
	if events[0].Kind != EventLayerStarted {
		t.Fatalf("first event = %v, want LayerStarted", events[0].Kind)
	}
	last := events[len(events)-1]
	if last.Kind != EventLayerFinished {
		t.Fatalf("last event = %v, want LayerFinished", last.Kind)
	}
	if last.LayerID != "solo" {
		t.Fatalf("LayerFinished layer id = %q", last.LayerID)
	}
	if last.Result.PositionsEvaluated != result.PositionsEvaluated {
		t.Fatalf("LayerFinished result (%d evaluated) does not match returned result (%d)",
			last.Result.PositionsEvaluated, result.PositionsEvaluated)
	}
	if overlayTex == nil || overlayName != "mask_solo" {
		t.Fatalf("overlay = %q, %v", overlayName, overlayTex)
	}
	if last.Overlay == nil || last.Overlay.Name != overlayName {
		t.Fatalf("LayerFinished overlay summary = %+v, want %q", last.Overlay, overlayName)
	}
}

func TestRunPlanWithNoLayersReturnsEmptyResult(t *testing.T) {
	cache := fieldgraph.NewProgramCache()
	textures := fieldgraph.NewTextureRegistry()
	src := rng.NewRand(1)

	result := RunPlan(NewPlan(), baseRunConfig(), textures, cache, src, nil)
	if len(result.Placements) != 0 {
		t.Fatalf("expected no placements, got %d", len(result.Placements))
	}
}

func TestRunConfigValidateRejectsNonPositiveExtent(t *testing.T) {
	cfg := NewRunConfig(vecf.Vec2{X: 0, Y: 10})
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero domain extent")
	}
}
