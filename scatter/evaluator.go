// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package scatter

import (
	"github.com/terragrove/mapscatter/chunk"
	"github.com/terragrove/mapscatter/errs"
	"github.com/terragrove/mapscatter/fieldgraph"
	"github.com/terragrove/mapscatter/vecf"
)

// KindEvaluation is the outcome of evaluating one Kind at one position.
type KindEvaluation struct {
	Kind    Kind
	Allowed bool
	Weight  float32
}

type kindInfo struct {
	program          *fieldgraph.Program
	gateFields       []fieldgraph.FieldID
	probabilityField fieldgraph.FieldID
	hasProbability   bool
}

type runtimeKey struct {
	kindID string
	chunk  chunk.ID
}

// Evaluator compiles a set of Kinds once and evaluates them repeatedly
// against candidate positions, reusing one fieldgraph.Runtime per (kind,
// chunk) pair for its lifetime so a forced raster bake runs at most once
// per chunk.
type Evaluator struct {
	kindInfo map[string]kindInfo
	runtimes map[runtimeKey]*fieldgraph.Runtime
}

// NewEmptyEvaluator returns an Evaluator with no kinds registered yet; call
// AddKind to populate it.
func NewEmptyEvaluator() *Evaluator {
	return &Evaluator{
		kindInfo: make(map[string]kindInfo),
		runtimes: make(map[runtimeKey]*fieldgraph.Runtime),
	}
}

// NewEvaluator compiles every kind's field graph via cache and builds an
// Evaluator. It fails if any kind's spec has more than one Probability
// field, leaving the Evaluator unused in that case.
func NewEvaluator(kinds []Kind, cache *fieldgraph.ProgramCache) (*Evaluator, error) {
	e := NewEmptyEvaluator()
	for _, kind := range kinds {
		if err := e.AddKind(kind, cache); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// AddKind compiles kind via cache and registers it with the Evaluator. It
// returns a Compile error, leaving the Evaluator unchanged, if kind's spec
// has more than one Probability field.
func (e *Evaluator) AddKind(kind Kind, cache *fieldgraph.ProgramCache) error {
	program, err := cache.GetOrCompile(kind, fieldgraph.NewCompileOptions())
	if err != nil {
		return err
	}

	gateFields := program.GateFields()
	probFields := program.ProbabilityFields()
	if len(probFields) > 1 {
		return errs.NewCompile("kind %q has multiple Probability fields", kind.ID)
	}

	ki := kindInfo{program: program, gateFields: gateFields}
	if len(probFields) == 1 {
		ki.probabilityField = probFields[0]
		ki.hasProbability = true
	}
	e.kindInfo[kind.ID] = ki
	return nil
}

// runtimeFor returns the cached runtime for (kindID, id), building one
// against textures if none exists yet.
func (e *Evaluator) runtimeFor(kindID string, id chunk.ID, program *fieldgraph.Program, textures *fieldgraph.TextureRegistry) *fieldgraph.Runtime {
	key := runtimeKey{kindID: kindID, chunk: id}
	rt, ok := e.runtimes[key]
	if !ok {
		rt = fieldgraph.NewRuntime(program, textures)
		e.runtimes[key] = rt
	}
	return rt
}

// EvaluatePosition evaluates every kind in kinds at position, returning
// results sorted by descending weight. Kinds the Evaluator has no
// registration for are silently skipped.
func (e *Evaluator) EvaluatePosition(position vecf.Vec2, id chunk.ID, grid chunk.Grid, kinds []Kind, textures *fieldgraph.TextureRegistry) []KindEvaluation {
	results := make([]KindEvaluation, 0, len(kinds))
	for _, kind := range kinds {
		info, ok := e.kindInfo[kind.ID]
		if !ok {
			continue
		}
		rt := e.runtimeFor(kind.ID, id, info.program, textures)
		results = append(results, evaluateOne(kind, info, rt, position, id, grid))
	}
	sortByDescendingWeight(results)
	return results
}

// EvaluatePositionsBatched evaluates every kind in kinds at each of
// positions, reusing the Evaluator's per-(kind, chunk) runtimes across all
// of them. Results for each position are sorted by descending weight.
func (e *Evaluator) EvaluatePositionsBatched(positions []vecf.Vec2, id chunk.ID, grid chunk.Grid, kinds []Kind, textures *fieldgraph.TextureRegistry) [][]KindEvaluation {
	allResults := make([][]KindEvaluation, 0, len(positions))
	for _, pos := range positions {
		allResults = append(allResults, e.EvaluatePosition(pos, id, grid, kinds, textures))
	}
	return allResults
}

// EvaluateKind evaluates a single known kind at a single position.
func (e *Evaluator) EvaluateKind(kind Kind, position vecf.Vec2, id chunk.ID, grid chunk.Grid, textures *fieldgraph.TextureRegistry) (KindEvaluation, bool) {
	info, ok := e.kindInfo[kind.ID]
	if !ok {
		return KindEvaluation{}, false
	}
	rt := e.runtimeFor(kind.ID, id, info.program, textures)
	return evaluateOne(kind, info, rt, position, id, grid), true
}

func evaluateOne(kind Kind, info kindInfo, rt *fieldgraph.Runtime, pos vecf.Vec2, id chunk.ID, grid chunk.Grid) KindEvaluation {
	allowed := true
	for _, fieldID := range info.gateFields {
		if rt.Sample(fieldID, pos, id, grid) <= 0 {
			allowed = false
			break
		}
	}

	var weight float32
	if allowed {
		if info.hasProbability {
			weight = vecf.Clamp(rt.Sample(info.probabilityField, pos, id, grid), 0, 1)
		} else {
			weight = DefaultProbabilityWhenMissing
		}
	}

	return KindEvaluation{Kind: kind, Allowed: allowed, Weight: weight}
}

func sortByDescendingWeight(results []KindEvaluation) {
	for i := 1; i < len(results); i++ {
		for j := i; j > 0 && results[j].Weight > results[j-1].Weight; j-- {
			results[j], results[j-1] = results[j-1], results[j]
		}
	}
}
