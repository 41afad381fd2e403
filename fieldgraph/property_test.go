// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package fieldgraph

import (
	"fmt"
	"testing"

	"pgregory.net/rapid"
)

// randomDAGSpec builds an acyclic spec of n nodes: node i (i > 0) takes its
// inputs exclusively from nodes 0..i-1, so the graph is acyclic by
// construction regardless of which inputs rapid picks.
func randomDAGSpec(t *rapid.T, n int) *Spec {
	spec := NewSpec()
	spec.Add("n0", Constant(1))

	for i := 1; i < n; i++ {
		id := FieldID(fmt.Sprintf("n%d", i))
		maxInputs := i
		if maxInputs > 4 {
			maxInputs = 4
		}
		count := rapid.IntRange(1, maxInputs).Draw(t, fmt.Sprintf("inputCount_%d", i))

		inputs := make([]FieldID, count)
		for j := 0; j < count; j++ {
			idx := rapid.IntRange(0, i-1).Draw(t, fmt.Sprintf("input_%d_%d", i, j))
			inputs[j] = FieldID(fmt.Sprintf("n%d", idx))
		}
		spec.Add(id, Add(inputs...))
	}
	return spec
}

// TestProperty_TopoOrderRespectsInputs checks the topological-order
// invariant: for every node, all of its inputs appear at earlier positions
// in Program.Topo.
func TestProperty_TopoOrderRespectsInputs(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 20).Draw(t, "n")
		spec := randomDAGSpec(t, n)

		program, err := Compile(spec, NewCompileOptions())
		if err != nil {
			t.Fatalf("compile failed on acyclic graph: %v", err)
		}

		if len(program.Topo) != len(spec.Nodes) {
			t.Fatalf("topo order covers %d nodes, spec has %d", len(program.Topo), len(spec.Nodes))
		}

		position := make(map[FieldID]int, len(program.Topo))
		for i, id := range program.Topo {
			position[id] = i
		}

		for _, id := range program.Topo {
			for _, input := range program.Nodes[id].Spec.Inputs {
				if position[input] >= position[id] {
					t.Fatalf("input %q of %q does not precede it in topo order", input, id)
				}
			}
		}
	})
}

// TestProperty_GetOrCompileIdempotent checks the cache round-trip
// invariant: calling GetOrCompile twice on the same spec+options returns
// programs with identical node sets and identical topological order.
func TestProperty_GetOrCompileIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 15).Draw(t, "n")
		spec := randomDAGSpec(t, n)
		kind := NewKind("k", spec)
		opts := NewCompileOptions()

		cache := NewProgramCache()
		first, err := cache.GetOrCompile(kind, opts)
		if err != nil {
			t.Fatalf("first compile failed: %v", err)
		}
		second, err := cache.GetOrCompile(kind, opts)
		if err != nil {
			t.Fatalf("second compile failed: %v", err)
		}

		if len(first.Topo) != len(second.Topo) {
			t.Fatalf("topo length differs: %d vs %d", len(first.Topo), len(second.Topo))
		}
		for i := range first.Topo {
			if first.Topo[i] != second.Topo[i] {
				t.Fatalf("topo order differs at index %d: %q vs %q", i, first.Topo[i], second.Topo[i])
			}
		}
		if len(first.Nodes) != len(second.Nodes) {
			t.Fatalf("node set size differs: %d vs %d", len(first.Nodes), len(second.Nodes))
		}
	})
}

// TestProperty_FingerprintStableUnderRebuild checks that building the exact
// same spec twice (fresh maps, same contents) produces the same fingerprint,
// and that changing a single constant's bit pattern changes it.
func TestProperty_FingerprintStableUnderRebuild(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		value := float32(rapid.Float64Range(-1000, 1000).Draw(t, "value"))

		specA := NewSpec()
		specA.Add("n0", Constant(value))
		specB := NewSpec()
		specB.Add("n0", Constant(value))

		opts := NewCompileOptions()
		if Fingerprint(specA, opts) != Fingerprint(specB, opts) {
			t.Fatalf("identical specs produced different fingerprints")
		}

		specC := NewSpec()
		specC.Add("n0", Constant(value+1))
		if Fingerprint(specA, opts) == Fingerprint(specC, opts) {
			t.Fatalf("distinct constants collided in fingerprint")
		}
	})
}
