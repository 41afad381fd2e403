// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package scatter

import (
	"fmt"
	"log"

	"github.com/terragrove/mapscatter/errs"
	"github.com/terragrove/mapscatter/fieldgraph"
	"github.com/terragrove/mapscatter/internal/rng"
	"github.com/terragrove/mapscatter/vecf"
)

// Placement is a placed instance of a kind at a world position.
type Placement struct {
	KindID   KindID
	Position vecf.Vec2
}

// RunConfig configures one scatter run: the evaluated domain, its chunking,
// and the raster resolution used for field sampling.
type RunConfig struct {
	DomainExtent   vecf.Vec2
	DomainCenter   vecf.Vec2
	ChunkExtent    float32
	RasterCellSize float32
	GridHalo       int
}

// NewRunConfig returns a RunConfig over domainExtent with the defaults
// chunkExtent=100, rasterCellSize=1, gridHalo=2, domainCenter at the
// origin.
func NewRunConfig(domainExtent vecf.Vec2) RunConfig {
	return RunConfig{
		DomainExtent:   domainExtent,
		ChunkExtent:    100,
		RasterCellSize: 1,
		GridHalo:       2,
	}
}

func (c RunConfig) WithChunkExtent(chunkExtent float32) RunConfig {
	c.ChunkExtent = chunkExtent
	return c
}

func (c RunConfig) WithDomainCenter(domainCenter vecf.Vec2) RunConfig {
	c.DomainCenter = domainCenter
	return c
}

func (c RunConfig) WithRasterCellSize(rasterCellSize float32) RunConfig {
	c.RasterCellSize = rasterCellSize
	return c
}

func (c RunConfig) WithGridHalo(gridHalo int) RunConfig {
	c.GridHalo = gridHalo
	return c
}

// Validate reports an InvalidConfig error if the configuration cannot be
// run.
func (c RunConfig) Validate() error {
	if c.DomainExtent.X <= 0 || c.DomainExtent.Y <= 0 {
		return errs.NewInvalidConfig("domain extent must be > 0 in both components")
	}
	if c.ChunkExtent <= 0 {
		return errs.NewInvalidConfig("chunk extent must be > 0")
	}
	if c.RasterCellSize <= 0 {
		return errs.NewInvalidConfig("raster cell size must be > 0")
	}
	return nil
}

// RunResult summarizes the outcome of running a Plan or a single Layer.
type RunResult struct {
	Placements         []Placement
	PositionsEvaluated int
	PositionsRejected  int
}

// ScatterRunner executes Plans and Layers against a shared texture registry
// and field program cache.
type ScatterRunner struct {
	Config       RunConfig
	BaseTextures *fieldgraph.TextureRegistry
	Cache        *fieldgraph.ProgramCache
}

// NewScatterRunner validates config and builds a runner.
func NewScatterRunner(config RunConfig, baseTextures *fieldgraph.TextureRegistry, cache *fieldgraph.ProgramCache) (*ScatterRunner, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &ScatterRunner{Config: config, BaseTextures: baseTextures, Cache: cache}, nil
}

// Run executes plan with no event observation.
func (r *ScatterRunner) Run(plan Plan, src rng.Source) RunResult {
	return RunPlan(plan, r.Config, r.BaseTextures, r.Cache, src, NoopSink{})
}

// RunWithEvents executes plan, forwarding every observable step to sink.
func (r *ScatterRunner) RunWithEvents(plan Plan, src rng.Source, sink Sink) RunResult {
	return RunPlan(plan, r.Config, r.BaseTextures, r.Cache, src, sink)
}

// RunLayer executes a single layer against a set of already-generated
// overlays, returning its result and, if it produced one, its overlay name
// and texture.
func (r *ScatterRunner) RunLayer(layer Layer, overlays map[string]*OverlayTexture, src rng.Source) (RunResult, string, *OverlayTexture) {
	return r.RunLayerWithEvents(layer, overlays, src, NoopSink{})
}

// RunLayerWithEvents is RunLayer with event observation. The emitted stream
// honors the per-layer ordering contract, ending in LayerFinished.
func (r *ScatterRunner) RunLayerWithEvents(layer Layer, overlays map[string]*OverlayTexture, src rng.Source, sink Sink) (RunResult, string, *OverlayTexture) {
	if sink == nil {
		sink = NoopSink{}
	}
	ctx := layerExecContext{config: r.Config, baseTextures: r.BaseTextures, overlays: overlays}
	result, overlayName, overlayTex := runLayerInternal(layer, ctx, r.Cache, src, sink, 0)

	if sink.Wants(EventLayerFinished) {
		var overlaySummary *OverlaySummary
		if overlayTex != nil {
			overlaySummary = &OverlaySummary{Name: overlayName, WidthPx: overlayTex.Width, HeightPx: overlayTex.Height}
		}
		sink.Send(ScatterEvent{
			Kind:       EventLayerFinished,
			LayerIndex: 0,
			LayerID:    layer.ID,
			Result:     result,
			Overlay:    overlaySummary,
		})
	}

	return result, overlayName, overlayTex
}

// RunPlan executes every layer of plan in order, threading each layer's
// overlay mask (if any) forward to later layers, and sends the run's
// events to sink (a nil sink observes nothing).
func RunPlan(plan Plan, config RunConfig, baseTextures *fieldgraph.TextureRegistry, cache *fieldgraph.ProgramCache, src rng.Source, sink Sink) RunResult {
	if sink == nil {
		sink = NoopSink{}
	}

	if sink.Wants(EventRunStarted) {
		sink.Send(ScatterEvent{Kind: EventRunStarted, Config: config, LayerCount: len(plan.Layers)})
	}

	if len(plan.Layers) == 0 {
		log.Printf("mapscatter: placement plan has no layers")
		if sink.Wants(EventWarning) {
			sink.Send(ScatterEvent{Kind: EventWarning, Context: "plan", Message: "placement plan has no layers"})
		}
	}

	overlays := make(map[string]*OverlayTexture)

	var allPlaced []Placement
	totalEval, totalReject := 0, 0

	for layerIdx, layer := range plan.Layers {
		log.Printf("mapscatter: layer %d: %q | kinds: %d", layerIdx, layer.ID, len(layer.Kinds))

		ctx := layerExecContext{config: config, baseTextures: baseTextures, overlays: overlays}
		layerResult, overlayName, overlayTex := runLayerInternal(layer, ctx, cache, src, sink, layerIdx)

		totalEval += layerResult.PositionsEvaluated
		totalReject += layerResult.PositionsRejected
		allPlaced = append(allPlaced, layerResult.Placements...)

		var overlaySummary *OverlaySummary
		if overlayTex != nil {
			overlaySummary = &OverlaySummary{Name: overlayName, WidthPx: overlayTex.Width, HeightPx: overlayTex.Height}
		}

		if sink.Wants(EventLayerFinished) {
			sink.Send(ScatterEvent{
				Kind:       EventLayerFinished,
				LayerIndex: layerIdx,
				LayerID:    layer.ID,
				Result:     layerResult,
				Overlay:    overlaySummary,
			})
		}

		if overlayTex != nil {
			overlays[overlayName] = overlayTex
		}
	}

	result := RunResult{Placements: allPlaced, PositionsEvaluated: totalEval, PositionsRejected: totalReject}

	if sink.Wants(EventRunFinished) {
		sink.Send(ScatterEvent{Kind: EventRunFinished, Result: result})
	}

	return result
}

type layerExecContext struct {
	config       RunConfig
	baseTextures *fieldgraph.TextureRegistry
	overlays     map[string]*OverlayTexture
}

func runLayerInternal(layer Layer, ctx layerExecContext, cache *fieldgraph.ProgramCache, src rng.Source, sink Sink, layerIndex int) (RunResult, string, *OverlayTexture) {
	if sink.Wants(EventLayerStarted) {
		kindIDs := make([]KindID, len(layer.Kinds))
		for i, k := range layer.Kinds {
			kindIDs[i] = k.ID
		}
		sink.Send(ScatterEvent{
			Kind:                 EventLayerStarted,
			LayerIndex:           layerIndex,
			LayerID:              layer.ID,
			LayerKinds:           kindIDs,
			LayerHasOverlay:      layer.HasOverlay,
			LayerOverlayWidthPx:  layer.OverlayMaskWidthPx,
			LayerOverlayHeightPx: layer.OverlayMaskHeightPx,
			LayerOverlayBrushPx:  layer.OverlayBrushRadiusPx,
		})
	}

	if len(layer.Kinds) == 0 {
		log.Printf("mapscatter: layer %q has no kinds; skipping", layer.ID)
		if sink.Wants(EventWarning) {
			sink.Send(ScatterEvent{Kind: EventWarning, Context: fmt.Sprintf("layer:%s", layer.ID), Message: "layer has no kinds; skipping"})
		}
		return RunResult{}, "", nil
	}

	domainExtent := ctx.config.DomainExtent
	domainCenter := ctx.config.DomainCenter

	evaluator := NewEmptyEvaluator()
	var survivingKinds []Kind

	for _, k := range layer.Kinds {
		if err := evaluator.AddKind(k, cache); err != nil {
			log.Printf("mapscatter: failed to compile kind %q in layer %q: %v", k.ID, layer.ID, err)
			if sink.Wants(EventWarning) {
				sink.Send(ScatterEvent{Kind: EventWarning, Context: fmt.Sprintf("layer:%s kind:%s", layer.ID, k.ID), Message: fmt.Sprintf("failed to compile kind: %v", err)})
			}
			continue
		}
		survivingKinds = append(survivingKinds, k)
	}
	if len(survivingKinds) == 0 {
		return RunResult{}, "", nil
	}

	rawPositions := layer.Sampling.Generate(domainExtent, src)
	positions := make([]vecf.Vec2, len(rawPositions))
	for i, p := range rawPositions {
		positions[i] = p.Add(domainCenter)
	}

	layerTextures := ctx.baseTextures.Clone()
	for name, ov := range ctx.overlays {
		layerTextures.Register(name, ov)
	}

	var placed []Placement
	for _, position := range positions {
		id, grid := chunkIDAndGridForPosition(position, domainExtent, domainCenter, ctx.config.ChunkExtent, ctx.config.RasterCellSize, ctx.config.GridHalo)

		results := evaluator.EvaluatePosition(position, id, grid, survivingKinds, layerTextures)

		var maxWeight float32
		for _, r := range results {
			if r.Allowed && r.Weight > maxWeight {
				maxWeight = r.Weight
			}
		}

		if sink.Wants(EventPositionEvaluated) {
			evaluations := make([]KindEvaluationLite, len(results))
			for i, r := range results {
				evaluations[i] = KindEvaluationLite{KindID: r.Kind.ID, Allowed: r.Allowed, Weight: r.Weight}
			}
			sink.Send(ScatterEvent{
				Kind:        EventPositionEvaluated,
				LayerIndex:  layerIndex,
				LayerID:     layer.ID,
				Position:    position,
				Evaluations: evaluations,
				MaxWeight:   maxWeight,
			})
		}

		roll := rng.Rand01(src)
		if maxWeight > 0 && roll < maxWeight {
			var selected Kind
			var ok bool
			switch layer.SelectionStrategy {
			case SelectionHighestProbability:
				selected, ok = pickHighestProbability(results)
			default:
				selected, ok = pickWeightedRandom(results, src)
			}
			if ok {
				placement := Placement{KindID: selected.ID, Position: position}
				if sink.Wants(EventPlacementMade) {
					sink.Send(ScatterEvent{Kind: EventPlacementMade, LayerIndex: layerIndex, LayerID: layer.ID, Placement: placement})
				}
				placed = append(placed, placement)
			}
		}
	}

	evalCount := len(positions)
	placedCount := len(placed)
	rejected := evalCount - placedCount
	if rejected < 0 {
		rejected = 0
	}

	var overlayName string
	var overlayTex *OverlayTexture
	if layer.HasOverlay {
		if layer.OverlayMaskWidthPx == 0 || layer.OverlayMaskHeightPx == 0 {
			log.Printf("mapscatter: layer %q overlay size is zero; skipping overlay", layer.ID)
			if sink.Wants(EventWarning) {
				sink.Send(ScatterEvent{Kind: EventWarning, Context: fmt.Sprintf("layer:%s", layer.ID), Message: "overlay size is zero; skipping overlay"})
			}
		} else if layer.OverlayBrushRadiusPx < 0 {
			log.Printf("mapscatter: layer %q overlay brush radius < 0; skipping overlay", layer.ID)
			if sink.Wants(EventWarning) {
				sink.Send(ScatterEvent{Kind: EventWarning, Context: fmt.Sprintf("layer:%s", layer.ID), Message: "overlay brush radius < 0; skipping overlay"})
			}
		} else {
			placedPositions := make([]vecf.Vec2, len(placed))
			for i, p := range placed {
				placedPositions[i] = p.Position
			}
			overlayTex = buildOverlayMaskFromPositions(domainExtent, domainCenter, placedPositions, layer.OverlayMaskWidthPx, layer.OverlayMaskHeightPx, layer.OverlayBrushRadiusPx)
			overlayName = fmt.Sprintf("mask_%s", layer.ID)

			if sink.Wants(EventOverlayGenerated) {
				sink.Send(ScatterEvent{
					Kind:       EventOverlayGenerated,
					LayerIndex: layerIndex,
					LayerID:    layer.ID,
					Overlay:    &OverlaySummary{Name: overlayName, WidthPx: layer.OverlayMaskWidthPx, HeightPx: layer.OverlayMaskHeightPx},
				})
			}
		}
	}

	result := RunResult{Placements: placed, PositionsEvaluated: evalCount, PositionsRejected: rejected}
	return result, overlayName, overlayTex
}
