// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package scatter implements the placement pipeline: plans of layers, each
// placing Kinds from fieldgraph at positions drawn by a sampling.Strategy,
// gated and weighted by their field graphs and resolved by a selection
// strategy, with an overlay mask threaded between layers and every step
// observable through a Sink.
package scatter

import "github.com/terragrove/mapscatter/fieldgraph"

// KindID names a placeable category within a Plan.
type KindID = string

// Kind is fieldgraph.Kind under the name this package's callers expect. It
// is not redefined here: the program cache already keys on fieldgraph.Kind,
// and Go has no cyclic imports to let that type live in this package
// instead.
type Kind = fieldgraph.Kind

// NewKind constructs a Kind from an id and its field graph spec.
func NewKind(id string, spec *fieldgraph.Spec) Kind {
	return fieldgraph.NewKind(id, spec)
}

// DefaultProbabilityWhenMissing is the selection weight used for an allowed
// candidate whose Kind has no Probability field.
const DefaultProbabilityWhenMissing float32 = 0.1
