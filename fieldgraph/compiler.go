// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package fieldgraph

import (
	"sort"

	"github.com/terragrove/mapscatter/errs"
	"golang.org/x/exp/slices"
)

// CompileOptions configures the compiler. ForceBake names fields that must
// be baked to a raster rather than evaluated inline.
type CompileOptions struct {
	ForceBake map[FieldID]struct{}
}

// NewCompileOptions returns an empty CompileOptions.
func NewCompileOptions() CompileOptions {
	return CompileOptions{ForceBake: make(map[FieldID]struct{})}
}

// WithForceBake marks id as a mandatory raster-bake site.
func (o CompileOptions) WithForceBake(id FieldID) CompileOptions {
	o.ForceBake[id] = struct{}{}
	return o
}

// Compile validates spec and produces a Program with a topologically
// ordered field-id list.
func Compile(spec *Spec, opts CompileOptions) (*Program, error) {
	nodes := make(map[FieldID]NodeMeta, len(spec.Nodes))

	for id, node := range spec.Nodes {
		for _, input := range node.Inputs {
			if _, ok := spec.Nodes[input]; !ok {
				return nil, errs.NewCompile("node %q references unknown input %q", id, input)
			}
		}

		if err := validateArity(id, node); err != nil {
			return nil, err
		}

		_, forceBake := opts.ForceBake[id]
		nodes[id] = NodeMeta{
			ID:        id,
			Spec:      node,
			ForceBake: forceBake,
			Semantics: spec.Semantics[id],
		}
	}

	topo, err := topoSort(nodes)
	if err != nil {
		return nil, err
	}

	return &Program{Nodes: nodes, Topo: topo}, nil
}

func validateArity(id FieldID, node NodeSpec) error {
	switch {
	case node.Op == OpConstant || node.Op == OpTexture:
		return nil
	case node.Op.IsVariadic():
		if len(node.Inputs) == 0 {
			return errs.NewCompile("node %q (%s) requires at least one input", id, node.Op)
		}
	case node.Op.IsUnary():
		if len(node.Inputs) != 1 {
			return errs.NewCompile("node %q (%s) requires exactly one input but found %d", id, node.Op, len(node.Inputs))
		}
	}
	return nil
}

// topoSort runs a Kahn-style sort: nodes with in-degree 0 seed the frontier;
// each dependent's in-degree decreases once per distinct input edge from the
// node just emitted (duplicate inputs count once). The frontier is processed
// in sorted order so that identical specs always produce an identical
// topological order, which is what makes the program cache idempotent.
func topoSort(nodes map[FieldID]NodeMeta) ([]FieldID, error) {
	indeg := make(map[FieldID]int, len(nodes))
	dependents := make(map[FieldID]map[FieldID]struct{})

	for id, meta := range nodes {
		seen := make(map[FieldID]struct{}, len(meta.Spec.Inputs))
		for _, input := range meta.Spec.Inputs {
			seen[input] = struct{}{}
		}
		indeg[id] = len(seen)
		for input := range seen {
			m := dependents[input]
			if m == nil {
				m = make(map[FieldID]struct{})
				dependents[input] = m
			}
			m[id] = struct{}{}
		}
	}

	var frontier []FieldID
	for id, d := range indeg {
		if d == 0 {
			frontier = append(frontier, id)
		}
	}
	sort.Slice(frontier, func(i, j int) bool { return frontier[i] < frontier[j] })

	out := make([]FieldID, 0, len(nodes))
	for len(frontier) > 0 {
		id := frontier[0]
		frontier = frontier[1:]
		out = append(out, id)

		var unlocked []FieldID
		for child := range dependents[id] {
			indeg[child]--
			if indeg[child] == 0 {
				unlocked = append(unlocked, child)
			}
		}
		sort.Slice(unlocked, func(i, j int) bool { return unlocked[i] < unlocked[j] })
		frontier = mergeSorted(frontier, unlocked)
	}

	if len(out) != len(nodes) {
		return nil, errs.NewCompile("cycle detected in field graph")
	}
	return out, nil
}

// mergeSorted merges two already-sorted slices, keeping the frontier sorted
// without re-sorting it from scratch on every pop.
func mergeSorted(a, b []FieldID) []FieldID {
	if len(b) == 0 {
		return a
	}
	out := make([]FieldID, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if a[i] <= b[j] {
			out = append(out, a[i])
			i++
		} else {
			out = append(out, b[j])
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}

// sortedFieldIDs is a small helper used by Fingerprint to get a stable
// ordering of a field-id set.
func sortedFieldIDs(ids map[FieldID]struct{}) []FieldID {
	out := make([]FieldID, 0, len(ids))
	for id := range ids {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}
