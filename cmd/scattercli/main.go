// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Command scattercli loads a Plan/RunConfig description from YAML, runs it,
// and dumps the resulting event stream and placements as JSON. It is the
// demo host for the mapscatter core: flag-parsed options, log.Fatalf on
// unrecoverable setup errors, and no logic of its own beyond wiring.
package main

import (
	"flag"
	"log"
	"os"

	jsoniter "github.com/json-iterator/go"

	"github.com/terragrove/mapscatter/config"
	"github.com/terragrove/mapscatter/fieldgraph"
	"github.com/terragrove/mapscatter/internal/rng"
	"github.com/terragrove/mapscatter/scatter"
)

var json = jsoniter.Config{
	EscapeHTML:                    false,
	SortMapKeys:                   true,
	MarshalFloatWith6Digits:       true,
	ObjectFieldMustBeSimpleString: true,
}.Froze()

func main() {
	var (
		planPath   string
		seedFlag   uint64
		events     bool
		useDefault bool
	)

	flag.StringVar(&planPath, "plan", "", "path to a YAML plan/config file")
	flag.Uint64Var(&seedFlag, "seed", 0, "override the plan's seed (0 keeps the plan's own seed)")
	flag.BoolVar(&events, "events", false, "dump the full event stream instead of just placements")
	flag.BoolVar(&useDefault, "demo", false, "run a small built-in demo plan instead of loading -plan")
	flag.Parse()

	var cfg *config.Config
	if useDefault {
		cfg = demoConfig()
	} else {
		if planPath == "" {
			log.Fatal("scattercli: -plan is required unless -demo is given")
		}
		var err error
		cfg, err = config.Load(planPath)
		if err != nil {
			log.Fatalf("scattercli: %v", err)
		}
	}

	seed := cfg.Seed
	if seedFlag != 0 {
		seed = seedFlag
	}

	plan, runConfig, err := cfg.Build()
	if err != nil {
		log.Fatalf("scattercli: %v", err)
	}

	textures := fieldgraph.NewTextureRegistry()
	cache := fieldgraph.NewProgramCache()

	runner, err := scatter.NewScatterRunner(runConfig, textures, cache)
	if err != nil {
		log.Fatalf("scattercli: %v", err)
	}

	src := rng.NewRand(seed)
	runID := scatter.NewRunID()
	log.Printf("scattercli: run %s (seed %d)", runID, seed)

	var out interface{}
	if events {
		sink := scatter.NewVecSink()
		result := runner.RunWithEvents(plan, src, sink)
		out = struct {
			RunID  string                 `json:"runId"`
			Result scatter.RunResult      `json:"result"`
			Events []scatter.ScatterEvent `json:"events"`
		}{RunID: runID.String(), Result: result, Events: sink.Events()}
	} else {
		out = struct {
			RunID  string            `json:"runId"`
			Result scatter.RunResult `json:"result"`
		}{RunID: runID.String(), Result: runner.Run(plan, src)}
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(out); err != nil {
		log.Fatalf("scattercli: encode result: %v", err)
	}
}

// demoConfig returns an always-placeable scenario (one unconditionally
// accepted kind over a small domain), useful for a quick smoke test
// without a YAML file on disk.
func demoConfig() *config.Config {
	return &config.Config{
		Seed: 42,
		Domain: config.DomainConfig{
			ExtentX: 10, ExtentY: 10,
			ChunkExtent: 10, RasterCellSize: 1, GridHalo: 2,
		},
		Layers: []config.LayerConfig{
			{
				ID:       "demo",
				Sampling: config.SamplingConfig{Strategy: "uniformRandom", Count: 100},
				Kinds: []config.KindConfig{
					{
						ID: "k",
						Nodes: []config.NodeConfig{
							{ID: "p", Op: "constant", Value: 1.0, Semantics: "probability"},
						},
					},
				},
			},
		},
	}
}
