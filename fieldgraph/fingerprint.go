// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package fieldgraph

import (
	"hash/fnv"
	"math"
	"sort"
)

// Fingerprint computes a deterministic 64-bit hash of spec plus opts: node
// ids in lexicographic order; for each node the operator tag, the semantics
// tag (distinguishing absent from any present value), the input id list in
// authored order, and all numeric parameters hashed by bit pattern (so NaN
// variants stay distinguishable and -0.0 != +0.0); then the sorted
// force_bake ids.
func Fingerprint(spec *Spec, opts CompileOptions) uint64 {
	h := fnv.New64a()

	ids := make([]FieldID, 0, len(spec.Nodes))
	for id := range spec.Nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		node := spec.Nodes[id]
		writeString(h, string(id))
		writeByte(h, byte(node.Op))

		sem, ok := spec.Semantics[id]
		if !ok {
			writeByte(h, 255)
		} else {
			writeByte(h, byte(sem))
		}

		for _, input := range node.Inputs {
			writeString(h, string(input))
		}

		switch node.Op {
		case OpConstant:
			writeFloat(h, node.Value)
		case OpTexture:
			writeString(h, node.TextureID)
			writeByte(h, byte(node.Channel))
		case OpScale:
			writeFloat(h, node.Factor)
		case OpClamp:
			writeFloat(h, node.Min)
			writeFloat(h, node.Max)
		case OpSmoothStep:
			writeFloat(h, node.Edge0)
			writeFloat(h, node.Edge1)
		case OpPow:
			writeFloat(h, node.Exp)
		case OpEdtNormalize:
			writeFloat(h, node.Threshold)
			writeFloat(h, node.DMax)
		}
	}

	if len(opts.ForceBake) > 0 {
		for _, id := range sortedFieldIDs(opts.ForceBake) {
			writeString(h, string(id))
		}
	}

	return h.Sum64()
}

func writeString(h interface{ Write([]byte) (int, error) }, s string) {
	_, _ = h.Write([]byte(s))
	_, _ = h.Write([]byte{0})
}

func writeByte(h interface{ Write([]byte) (int, error) }, b byte) {
	_, _ = h.Write([]byte{b})
}

func writeFloat(h interface{ Write([]byte) (int, error) }, f float32) {
	bits := math.Float32bits(f)
	_, _ = h.Write([]byte{byte(bits), byte(bits >> 8), byte(bits >> 16), byte(bits >> 24)})
}
