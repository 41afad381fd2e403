// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads a Plan/RunConfig/Kind description from YAML: plain
// structs with yaml tags and a Validate method, no code generation. The
// core library (fieldgraph, sampling, scatter) stays serialization
// agnostic; this package is the host-facing on-ramp used by cmd/scattercli.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/terragrove/mapscatter/fieldgraph"
	"github.com/terragrove/mapscatter/sampling"
	"github.com/terragrove/mapscatter/scatter"
	"github.com/terragrove/mapscatter/vecf"
)

// Config is the top-level description of a scatter run: the seed, the
// domain/chunking parameters, and the ordered layers to execute.
type Config struct {
	// Seed is the master RNG seed for the run.
	Seed uint64 `yaml:"seed"`

	Domain DomainConfig  `yaml:"domain"`
	Layers []LayerConfig `yaml:"layers"`
}

// DomainConfig mirrors scatter.RunConfig.
type DomainConfig struct {
	ExtentX        float32 `yaml:"extentX"`
	ExtentY        float32 `yaml:"extentY"`
	CenterX        float32 `yaml:"centerX"`
	CenterY        float32 `yaml:"centerY"`
	ChunkExtent    float32 `yaml:"chunkExtent"`
	RasterCellSize float32 `yaml:"rasterCellSize"`
	GridHalo       int     `yaml:"gridHalo"`
}

// LayerConfig describes one scatter.Layer.
type LayerConfig struct {
	ID                   string         `yaml:"id"`
	Selection            string         `yaml:"selection,omitempty"` // "weightedRandom" (default) | "highestProbability"
	Sampling             SamplingConfig `yaml:"sampling"`
	Kinds                []KindConfig   `yaml:"kinds"`
	OverlayWidthPx       uint32         `yaml:"overlayWidthPx,omitempty"`
	OverlayHeightPx      uint32         `yaml:"overlayHeightPx,omitempty"`
	OverlayBrushRadiusPx int32          `yaml:"overlayBrushRadiusPx,omitempty"`
}

// KindConfig describes one fieldgraph.Kind: a field graph spec keyed by
// field id.
type KindConfig struct {
	ID    string        `yaml:"id"`
	Nodes []NodeConfig  `yaml:"nodes"`
}

// NodeConfig describes one fieldgraph.NodeSpec. Only the fields relevant to
// Op are read; see fieldgraph.NodeSpec for the authoritative per-op field
// list.
type NodeConfig struct {
	ID        string   `yaml:"id"`
	Op        string   `yaml:"op"`
	Semantics string   `yaml:"semantics,omitempty"` // "gate" | "probability" | "" (intermediate)
	Inputs    []string `yaml:"inputs,omitempty"`

	Value     float32 `yaml:"value,omitempty"`     // constant
	TextureID string  `yaml:"textureId,omitempty"` // texture
	Channel   string  `yaml:"channel,omitempty"`   // texture: "r"|"g"|"b"|"a"
	Factor    float32 `yaml:"factor,omitempty"`    // scale
	Min       float32 `yaml:"min,omitempty"`       // clamp
	Max       float32 `yaml:"max,omitempty"`       // clamp
	Edge0     float32 `yaml:"edge0,omitempty"`     // smoothstep
	Edge1     float32 `yaml:"edge1,omitempty"`     // smoothstep
	Exp       float32 `yaml:"exp,omitempty"`       // pow
	Threshold float32 `yaml:"threshold,omitempty"` // edtNormalize
	DMax      float32 `yaml:"dMax,omitempty"`      // edtNormalize
}

// SamplingConfig describes one sampling.Strategy. Only the fields relevant
// to Strategy are read.
type SamplingConfig struct {
	Strategy string `yaml:"strategy"`

	Count      int     `yaml:"count,omitempty"`
	Rotate     bool    `yaml:"rotate,omitempty"`
	BaseX      uint32  `yaml:"baseX,omitempty"`
	BaseY      uint32  `yaml:"baseY,omitempty"`
	StartIndex uint32  `yaml:"startIndex,omitempty"`
	K          int     `yaml:"k,omitempty"`
	Radius     float32 `yaml:"radius,omitempty"`
	Jitter     float32 `yaml:"jitter,omitempty"`
	CellSize   float32 `yaml:"cellSize,omitempty"`

	// Clustered (Thomas / Neyman-Scott).
	Process       string  `yaml:"process,omitempty"` // "thomas" | "neymanScott"
	ParentCount   int     `yaml:"parentCount,omitempty"`
	ParentDensity float32 `yaml:"parentDensity,omitempty"`
	MeanChildren  float32 `yaml:"meanChildren,omitempty"`
	Sigma         float32 `yaml:"sigma,omitempty"` // thomas
	// ClampInside is a pointer so an omitted key keeps the constructors'
	// clamp-by-default behavior instead of forcing false.
	ClampInside *bool `yaml:"clampInside,omitempty"`
}

// Load reads and validates a Config from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return &cfg, nil
}

// Validate checks structural constraints: empty or duplicate layer ids,
// empty or duplicate kind ids within a layer, and an unknown selection
// strategy. A layer with no kinds is accepted. Numeric constraints
// (extents > 0 etc.) are checked only by scatter.RunConfig.Validate inside
// Build, and unknown sampling strategies, ops, channels and semantics are
// reported by Build.
func (c *Config) Validate() error {
	seenLayers := make(map[string]bool, len(c.Layers))
	for i, l := range c.Layers {
		if l.ID == "" {
			return fmt.Errorf("layers[%d]: id must not be empty", i)
		}
		if seenLayers[l.ID] {
			return fmt.Errorf("layers[%d]: duplicate layer id %q", i, l.ID)
		}
		seenLayers[l.ID] = true

		seenKinds := make(map[string]bool, len(l.Kinds))
		for j, k := range l.Kinds {
			if k.ID == "" {
				return fmt.Errorf("layers[%d].kinds[%d]: id must not be empty", i, j)
			}
			if seenKinds[k.ID] {
				return fmt.Errorf("layers[%d].kinds[%d]: duplicate kind id %q", i, j, k.ID)
			}
			seenKinds[k.ID] = true
		}

		switch l.Selection {
		case "", "weightedRandom", "highestProbability":
		default:
			return fmt.Errorf("layers[%d]: unknown selection strategy %q", i, l.Selection)
		}
	}
	return nil
}

// Build converts the parsed Config into the library's native Plan and
// RunConfig. It validates the numeric RunConfig fields via
// scatter.RunConfig.Validate, and returns an error for an unknown op,
// channel or semantics, or for a unary op without exactly one input. It
// does not compile the field graphs: an unknown input id, a variadic op
// with no inputs or a cycle passes Build and surfaces when the runner
// compiles the kind.
func (c *Config) Build() (scatter.Plan, scatter.RunConfig, error) {
	runConfig := scatter.RunConfig{
		DomainExtent:   vecf.Vec2{X: c.Domain.ExtentX, Y: c.Domain.ExtentY},
		DomainCenter:   vecf.Vec2{X: c.Domain.CenterX, Y: c.Domain.CenterY},
		ChunkExtent:    c.Domain.ChunkExtent,
		RasterCellSize: c.Domain.RasterCellSize,
		GridHalo:       c.Domain.GridHalo,
	}
	if err := runConfig.Validate(); err != nil {
		return scatter.Plan{}, scatter.RunConfig{}, err
	}

	plan := scatter.NewPlan()
	for _, lc := range c.Layers {
		strategy, err := buildSampling(lc.Sampling)
		if err != nil {
			return scatter.Plan{}, scatter.RunConfig{}, fmt.Errorf("layer %q: %w", lc.ID, err)
		}

		kinds := make([]scatter.Kind, 0, len(lc.Kinds))
		for _, kc := range lc.Kinds {
			spec, err := buildSpec(kc)
			if err != nil {
				return scatter.Plan{}, scatter.RunConfig{}, fmt.Errorf("layer %q kind %q: %w", lc.ID, kc.ID, err)
			}
			kinds = append(kinds, scatter.NewKind(kc.ID, spec))
		}

		layer := scatter.NewLayer(lc.ID, kinds, strategy)
		if lc.Selection == "highestProbability" {
			layer = layer.WithSelectionStrategy(scatter.SelectionHighestProbability)
		}
		if lc.OverlayWidthPx > 0 && lc.OverlayHeightPx > 0 {
			layer = layer.WithOverlay(lc.OverlayWidthPx, lc.OverlayHeightPx, lc.OverlayBrushRadiusPx)
		}

		plan = plan.WithLayer(layer)
	}

	return plan, runConfig, nil
}

func buildSpec(kc KindConfig) (*fieldgraph.Spec, error) {
	spec := fieldgraph.NewSpec()
	for _, nc := range kc.Nodes {
		node, err := buildNode(nc)
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", nc.ID, err)
		}
		spec.Add(fieldgraph.FieldID(nc.ID), node)

		switch nc.Semantics {
		case "gate":
			spec.SetSemantics(fieldgraph.FieldID(nc.ID), fieldgraph.SemanticsGate)
		case "probability":
			spec.SetSemantics(fieldgraph.FieldID(nc.ID), fieldgraph.SemanticsProbability)
		case "", "none":
		default:
			return nil, fmt.Errorf("node %q: unknown semantics %q", nc.ID, nc.Semantics)
		}
	}
	return spec, nil
}

func fieldIDs(ids []string) []fieldgraph.FieldID {
	out := make([]fieldgraph.FieldID, len(ids))
	for i, id := range ids {
		out[i] = fieldgraph.FieldID(id)
	}
	return out
}

func buildNode(nc NodeConfig) (fieldgraph.NodeSpec, error) {
	inputs := fieldIDs(nc.Inputs)

	switch nc.Op {
	case "constant":
		return fieldgraph.Constant(nc.Value), nil
	case "texture":
		channel, err := parseChannel(nc.Channel)
		if err != nil {
			return fieldgraph.NodeSpec{}, err
		}
		return fieldgraph.Texture(nc.TextureID, channel), nil
	case "add":
		return fieldgraph.Add(inputs...), nil
	case "sub":
		return fieldgraph.Sub(inputs...), nil
	case "mul":
		return fieldgraph.Mul(inputs...), nil
	case "min":
		return fieldgraph.Min(inputs...), nil
	case "max":
		return fieldgraph.Max(inputs...), nil
	case "invert":
		if err := requireOneInput(inputs); err != nil {
			return fieldgraph.NodeSpec{}, err
		}
		return fieldgraph.Invert(inputs[0]), nil
	case "scale":
		if err := requireOneInput(inputs); err != nil {
			return fieldgraph.NodeSpec{}, err
		}
		return fieldgraph.Scale(inputs[0], nc.Factor), nil
	case "clamp":
		if err := requireOneInput(inputs); err != nil {
			return fieldgraph.NodeSpec{}, err
		}
		return fieldgraph.Clamp(inputs[0], nc.Min, nc.Max), nil
	case "smoothStep":
		if err := requireOneInput(inputs); err != nil {
			return fieldgraph.NodeSpec{}, err
		}
		return fieldgraph.SmoothStep(inputs[0], nc.Edge0, nc.Edge1), nil
	case "pow":
		if err := requireOneInput(inputs); err != nil {
			return fieldgraph.NodeSpec{}, err
		}
		return fieldgraph.Pow(inputs[0], nc.Exp), nil
	case "edtNormalize":
		if err := requireOneInput(inputs); err != nil {
			return fieldgraph.NodeSpec{}, err
		}
		return fieldgraph.EdtNormalize(inputs[0], nc.Threshold, nc.DMax), nil
	default:
		return fieldgraph.NodeSpec{}, fmt.Errorf("unknown op %q", nc.Op)
	}
}

func requireOneInput(inputs []fieldgraph.FieldID) error {
	if len(inputs) != 1 {
		return fmt.Errorf("expected exactly one input, got %d", len(inputs))
	}
	return nil
}

func parseChannel(s string) (fieldgraph.Channel, error) {
	switch s {
	case "r", "R", "":
		return fieldgraph.ChannelR, nil
	case "g", "G":
		return fieldgraph.ChannelG, nil
	case "b", "B":
		return fieldgraph.ChannelB, nil
	case "a", "A":
		return fieldgraph.ChannelA, nil
	default:
		return 0, fmt.Errorf("unknown texture channel %q", s)
	}
}

func buildSampling(sc SamplingConfig) (sampling.Strategy, error) {
	switch sc.Strategy {
	case "uniformRandom":
		return sampling.NewUniformRandom(sc.Count), nil
	case "halton":
		if sc.BaseX != 0 || sc.BaseY != 0 {
			baseX, baseY := sc.BaseX, sc.BaseY
			if baseX == 0 {
				baseX = 2
			}
			if baseY == 0 {
				baseY = 3
			}
			return sampling.NewHaltonWithBases(sc.Count, baseX, baseY, sc.Rotate), nil
		}
		return sampling.NewHaltonWithRotation(sc.Count, sc.Rotate), nil
	case "fibonacciLattice":
		return sampling.NewFibonacciLatticeWithRotation(sc.Count, sc.Rotate), nil
	case "stratifiedMultiJitter":
		return sampling.NewStratifiedMultiJitterWithRotation(sc.Count, sc.Rotate), nil
	case "bestCandidate":
		k := sc.K
		if k < 1 {
			k = 1
		}
		return sampling.NewBestCandidate(sc.Count, k), nil
	case "poissonDisk":
		return sampling.NewPoissonDisk(sc.Radius), nil
	case "jitterGrid":
		return sampling.NewJitterGrid(sc.Jitter, sc.CellSize), nil
	case "hexJitterGrid":
		return sampling.NewHexJitterGrid(sc.Jitter, sc.CellSize), nil
	case "clustered":
		return buildClustered(sc)
	default:
		return nil, fmt.Errorf("unknown sampling strategy %q", sc.Strategy)
	}
}

func buildClustered(sc SamplingConfig) (sampling.Strategy, error) {
	useDensity := sc.ParentCount == 0 && sc.ParentDensity > 0

	var c sampling.Clustered
	switch sc.Process {
	case "thomas":
		if useDensity {
			c = sampling.ThomasWithDensity(sc.ParentDensity, sc.MeanChildren, sc.Sigma)
		} else {
			c = sampling.ThomasWithCount(sc.ParentCount, sc.MeanChildren, sc.Sigma)
		}
	case "neymanScott":
		if useDensity {
			c = sampling.NeymanScottWithDensity(sc.ParentDensity, sc.MeanChildren, sc.Radius)
		} else {
			c = sampling.NeymanScottWithCount(sc.ParentCount, sc.MeanChildren, sc.Radius)
		}
	default:
		return nil, fmt.Errorf("unknown clustered process %q", sc.Process)
	}

	if sc.ClampInside != nil {
		c = c.WithClampInside(*sc.ClampInside)
	}
	return c, nil
}
