// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/terragrove/mapscatter/fieldgraph"
	"github.com/terragrove/mapscatter/internal/rng"
	"github.com/terragrove/mapscatter/sampling"
	"github.com/terragrove/mapscatter/scatter"
)

const demoYAML = `
seed: 42
domain:
  extentX: 10
  extentY: 10
  chunkExtent: 10
  rasterCellSize: 1
  gridHalo: 1
layers:
  - id: trees
    selection: highestProbability
    sampling:
      strategy: uniformRandom
      count: 50
    overlayWidthPx: 8
    overlayHeightPx: 8
    overlayBrushRadiusPx: 2
    kinds:
      - id: oak
        nodes:
          - id: p
            op: constant
            value: 0.8
            semantics: probability
  - id: rocks
    sampling:
      strategy: poissonDisk
      radius: 1.5
    kinds:
      - id: boulder
        nodes:
          - id: noise
            op: texture
            textureId: terrain
            channel: r
          - id: g
            op: smoothStep
            inputs: [noise]
            edge0: 0.3
            edge1: 0.6
            semantics: gate
`

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

func TestLoadParsesAndValidates(t *testing.T) {
	cfg, err := Load(writeTempConfig(t, demoYAML))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Seed != 42 {
		t.Fatalf("seed = %d", cfg.Seed)
	}
	if len(cfg.Layers) != 2 {
		t.Fatalf("layers = %d", len(cfg.Layers))
	}
}

func TestLoadRejectsDuplicateLayerIDs(t *testing.T) {
	bad := `
seed: 1
domain: {extentX: 10, extentY: 10, chunkExtent: 10, rasterCellSize: 1}
layers:
  - id: same
    sampling: {strategy: uniformRandom, count: 1}
    kinds: [{id: k, nodes: [{id: p, op: constant, value: 1}]}]
  - id: same
    sampling: {strategy: uniformRandom, count: 1}
    kinds: [{id: k, nodes: [{id: p, op: constant, value: 1}]}]
`
	if _, err := Load(writeTempConfig(t, bad)); err == nil {
		t.Fatal("expected duplicate layer id error")
	}
}

func TestBuildProducesRunnablePlan(t *testing.T) {
	cfg, err := Load(writeTempConfig(t, demoYAML))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	plan, runConfig, err := cfg.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if err := runConfig.Validate(); err != nil {
		t.Fatalf("built config invalid: %v", err)
	}
	if len(plan.Layers) != 2 {
		t.Fatalf("plan layers = %d", len(plan.Layers))
	}
	if plan.Layers[0].SelectionStrategy != scatter.SelectionHighestProbability {
		t.Fatal("selection strategy not applied")
	}
	if !plan.Layers[0].HasOverlay || plan.Layers[0].OverlayMaskWidthPx != 8 {
		t.Fatal("overlay config not applied")
	}

	cache := fieldgraph.NewProgramCache()
	textures := fieldgraph.NewTextureRegistry()
	runner, err := scatter.NewScatterRunner(runConfig, textures, cache)
	if err != nil {
		t.Fatalf("NewScatterRunner: %v", err)
	}
	result := runner.Run(plan, rng.NewRand(cfg.Seed))
	if result.PositionsEvaluated == 0 {
		t.Fatal("expected candidate positions to be evaluated")
	}
}

func TestBuildRejectsUnknownOpAndStrategy(t *testing.T) {
	badOp := `
seed: 1
domain: {extentX: 10, extentY: 10, chunkExtent: 10, rasterCellSize: 1}
layers:
  - id: l
    sampling: {strategy: uniformRandom, count: 1}
    kinds: [{id: k, nodes: [{id: n, op: frobnicate}]}]
`
	cfg, err := Load(writeTempConfig(t, badOp))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, _, err := cfg.Build(); err == nil {
		t.Fatal("expected unknown op error")
	}

	badStrategy := `
seed: 1
domain: {extentX: 10, extentY: 10, chunkExtent: 10, rasterCellSize: 1}
layers:
  - id: l
    sampling: {strategy: teleport}
    kinds: [{id: k, nodes: [{id: p, op: constant, value: 1}]}]
`
	cfg, err = Load(writeTempConfig(t, badStrategy))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, _, err := cfg.Build(); err == nil {
		t.Fatal("expected unknown strategy error")
	}
}

func TestBuildClusteredKeepsClampInsideDefaultWhenOmitted(t *testing.T) {
	clusteredYAML := `
seed: 1
domain: {extentX: 10, extentY: 10, chunkExtent: 10, rasterCellSize: 1}
layers:
  - id: groves
    sampling:
      strategy: clustered
      process: thomas
      parentCount: 5
      meanChildren: 3
      sigma: 1.5
    kinds: [{id: k, nodes: [{id: p, op: constant, value: 1, semantics: probability}]}]
  - id: outcrops
    sampling:
      strategy: clustered
      process: neymanScott
      parentCount: 5
      meanChildren: 3
      radius: 2
      clampInside: false
    kinds: [{id: k, nodes: [{id: p, op: constant, value: 1, semantics: probability}]}]
`
	cfg, err := Load(writeTempConfig(t, clusteredYAML))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	plan, _, err := cfg.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	omitted, ok := plan.Layers[0].Sampling.(sampling.Clustered)
	if !ok {
		t.Fatalf("layer 0 sampling = %T, want sampling.Clustered", plan.Layers[0].Sampling)
	}
	if !omitted.ClampInside {
		t.Fatal("omitted clampInside key overrode the clamp-by-default constructor")
	}

	explicit, ok := plan.Layers[1].Sampling.(sampling.Clustered)
	if !ok {
		t.Fatalf("layer 1 sampling = %T, want sampling.Clustered", plan.Layers[1].Sampling)
	}
	if explicit.ClampInside {
		t.Fatal("explicit clampInside: false was not applied")
	}
}

func TestBuildRejectsNonPositiveDomain(t *testing.T) {
	bad := `
seed: 1
domain: {extentX: 0, extentY: 10, chunkExtent: 10, rasterCellSize: 1}
layers: []
`
	cfg, err := Load(writeTempConfig(t, bad))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, _, err := cfg.Build(); err == nil {
		t.Fatal("expected invalid domain error")
	}
}
