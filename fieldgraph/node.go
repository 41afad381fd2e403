// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package fieldgraph implements the declarative scalar-field DAG language:
// node specs, the compiler, the fingerprint-keyed program cache, and the
// runtime interpreter (inline evaluation and chunked raster baking,
// including the Euclidean Distance Transform operator).
package fieldgraph

// FieldID names a node within a FieldGraphSpec.
type FieldID string

// Op tags the operator a NodeSpec performs.
type Op uint8

const (
	OpConstant Op = iota
	OpTexture
	OpAdd
	OpSub
	OpMul
	OpMin
	OpMax
	OpInvert
	OpScale
	OpClamp
	OpSmoothStep
	OpPow
	OpEdtNormalize
)

// Channel selects a texture's sample channel.
type Channel uint8

const (
	ChannelR Channel = iota
	ChannelG
	ChannelB
	ChannelA
)

// NodeSpec is a single operation in the field graph DAG. Only the fields
// relevant to Op are meaningful; the zero value of the rest is ignored.
type NodeSpec struct {
	Op     Op
	Inputs []FieldID

	// Constant
	Value float32
	// Texture
	TextureID string
	Channel   Channel
	// Scale
	Factor float32
	// Clamp
	Min, Max float32
	// SmoothStep
	Edge0, Edge1 float32
	// Pow
	Exp float32
	// EdtNormalize
	Threshold, DMax float32
}

func Constant(value float32) NodeSpec {
	return NodeSpec{Op: OpConstant, Value: value}
}

func Texture(id string, channel Channel) NodeSpec {
	return NodeSpec{Op: OpTexture, TextureID: id, Channel: channel}
}

func Add(inputs ...FieldID) NodeSpec { return NodeSpec{Op: OpAdd, Inputs: inputs} }
func Sub(inputs ...FieldID) NodeSpec { return NodeSpec{Op: OpSub, Inputs: inputs} }
func Mul(inputs ...FieldID) NodeSpec { return NodeSpec{Op: OpMul, Inputs: inputs} }
func Min(inputs ...FieldID) NodeSpec { return NodeSpec{Op: OpMin, Inputs: inputs} }
func Max(inputs ...FieldID) NodeSpec { return NodeSpec{Op: OpMax, Inputs: inputs} }

func Invert(input FieldID) NodeSpec {
	return NodeSpec{Op: OpInvert, Inputs: []FieldID{input}}
}

func Scale(input FieldID, factor float32) NodeSpec {
	return NodeSpec{Op: OpScale, Inputs: []FieldID{input}, Factor: factor}
}

func Clamp(input FieldID, min, max float32) NodeSpec {
	return NodeSpec{Op: OpClamp, Inputs: []FieldID{input}, Min: min, Max: max}
}

func SmoothStep(input FieldID, edge0, edge1 float32) NodeSpec {
	return NodeSpec{Op: OpSmoothStep, Inputs: []FieldID{input}, Edge0: edge0, Edge1: edge1}
}

func Pow(input FieldID, exp float32) NodeSpec {
	return NodeSpec{Op: OpPow, Inputs: []FieldID{input}, Exp: exp}
}

func EdtNormalize(input FieldID, threshold, dMax float32) NodeSpec {
	return NodeSpec{Op: OpEdtNormalize, Inputs: []FieldID{input}, Threshold: threshold, DMax: dMax}
}

// IsVariadic reports whether op requires at least one input (as opposed to
// exactly one, or none).
func (op Op) IsVariadic() bool {
	switch op {
	case OpAdd, OpSub, OpMul, OpMin, OpMax:
		return true
	default:
		return false
	}
}

// IsUnary reports whether op requires exactly one input.
func (op Op) IsUnary() bool {
	switch op {
	case OpInvert, OpScale, OpClamp, OpSmoothStep, OpPow, OpEdtNormalize:
		return true
	default:
		return false
	}
}

func (op Op) String() string {
	switch op {
	case OpConstant:
		return "Constant"
	case OpTexture:
		return "Texture"
	case OpAdd:
		return "Add"
	case OpSub:
		return "Sub"
	case OpMul:
		return "Mul"
	case OpMin:
		return "Min"
	case OpMax:
		return "Max"
	case OpInvert:
		return "Invert"
	case OpScale:
		return "Scale"
	case OpClamp:
		return "Clamp"
	case OpSmoothStep:
		return "SmoothStep"
	case OpPow:
		return "Pow"
	case OpEdtNormalize:
		return "EdtNormalize"
	default:
		return "Unknown"
	}
}
