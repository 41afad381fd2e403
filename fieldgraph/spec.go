// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package fieldgraph

// Semantics tags the role a node plays for the scatter evaluator.
type Semantics uint8

const (
	// SemanticsNone marks an intermediate node with no role of its own.
	SemanticsNone Semantics = iota
	SemanticsGate
	SemanticsProbability
)

// Spec is a mapping from field id to NodeSpec, plus an optional semantics
// tag per field id. Unlabeled nodes are intermediate.
type Spec struct {
	Nodes     map[FieldID]NodeSpec
	Semantics map[FieldID]Semantics
}

// NewSpec returns an empty, ready-to-populate Spec.
func NewSpec() *Spec {
	return &Spec{
		Nodes:     make(map[FieldID]NodeSpec),
		Semantics: make(map[FieldID]Semantics),
	}
}

// Add inserts or replaces the node at id.
func (s *Spec) Add(id FieldID, node NodeSpec) *Spec {
	s.Nodes[id] = node
	return s
}

// SetSemantics tags id with the given semantics.
func (s *Spec) SetSemantics(id FieldID, sem Semantics) *Spec {
	s.Semantics[id] = sem
	return s
}

// AddWithSemantics is Add followed by SetSemantics.
func (s *Spec) AddWithSemantics(id FieldID, node NodeSpec, sem Semantics) *Spec {
	s.Add(id, node)
	s.SetSemantics(id, sem)
	return s
}
