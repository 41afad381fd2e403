// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package fieldgraph

// Kind identifies a placeable category by a string id and the field graph
// spec that governs its gate/probability behavior. It lives in fieldgraph
// rather than the scatter package that otherwise owns the placement-level
// vocabulary, because the program cache is keyed on it and the two
// packages cannot import each other.
type Kind struct {
	ID   string
	Spec *Spec
}

func NewKind(id string, spec *Spec) Kind {
	return Kind{ID: id, Spec: spec}
}
