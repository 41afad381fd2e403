// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package vecf provides f32 2D vector and scalar helpers shared by the
// chunk, fieldgraph, sampling and scatter packages.
package vecf

import (
	"github.com/chewxy/math32"
	"math"
)

// Vec2 is a 2D vector of float32 components, the coordinate type of the
// whole module (world positions, domain extents, sample offsets).
type Vec2 struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

func (v Vec2) Mul(factor float32) Vec2 {
	v.X *= factor
	v.Y *= factor
	return v
}

func (v Vec2) Div(divisor float32) Vec2 {
	return v.Mul(1.0 / divisor)
}

func (v Vec2) Add(other Vec2) Vec2 {
	v.X += other.X
	v.Y += other.Y
	return v
}

func (v Vec2) Sub(other Vec2) Vec2 {
	v.X -= other.X
	v.Y -= other.Y
	return v
}

func (v Vec2) AddScaled(other Vec2, factor float32) Vec2 {
	v.X += other.X * factor
	v.Y += other.Y * factor
	return v
}

func (v Vec2) Dot(other Vec2) float32 {
	return v.X*other.X + v.Y*other.Y
}

func (v Vec2) Distance(other Vec2) float32 {
	return v.Sub(other).Length()
}

func (v Vec2) DistanceSquared(other Vec2) float32 {
	x := v.X - other.X
	y := v.Y - other.Y
	return x*x + y*y
}

func (v Vec2) Length() float32 {
	return math32.Hypot(v.X, v.Y)
}

func (v Vec2) LengthSquared() float32 {
	return v.X*v.X + v.Y*v.Y
}

func Lerp(a, b, factor float32) float32 {
	return a + (b-a)*factor
}

func (v Vec2) Lerp(other Vec2, factor float32) Vec2 {
	v.X = Lerp(v.X, other.X, factor)
	v.Y = Lerp(v.Y, other.Y, factor)
	return v
}

func (v Vec2) Abs() Vec2 {
	v.X = math32.Abs(v.X)
	v.Y = math32.Abs(v.Y)
	return v
}

func (v Vec2) Floor() Vec2 {
	// Use math.Floor instead of math32 because it uses assembly.
	v.X = float32(math.Floor(float64(v.X)))
	v.Y = float32(math.Floor(float64(v.Y)))
	return v
}

// FloorDiv divides componentwise and floors, the mapping used to locate the
// chunk or grid cell that a world position falls into.
func (v Vec2) FloorDiv(divisor float32) Vec2 {
	return v.Div(divisor).Floor()
}

func Clamp(val, minimum, maximum float32) float32 {
	return Min(Max(val, minimum), maximum)
}

func (v Vec2) Clamp(minimum, maximum Vec2) Vec2 {
	v.X = Clamp(v.X, minimum.X, maximum.X)
	v.Y = Clamp(v.Y, minimum.Y, maximum.Y)
	return v
}

func Min(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func Max(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// Square returns a*a.
func Square(a float32) float32 {
	return a * a
}

// MapRange linearly remaps number from [oldMin,oldMax] to [newMin,newMax],
// optionally clamping the result to the new range.
func MapRange(number, oldMin, oldMax, newMin, newMax float32, clampToRange bool) float32 {
	oldRange := oldMax - oldMin
	newRange := newMax - newMin
	normalized := (number - oldMin) / oldRange
	mapped := newMin + normalized*newRange
	if clampToRange {
		mapped = Clamp(mapped, newMin, newMax)
	}
	return mapped
}

// minPositiveNormal32 is the smallest positive *normal* float32 (2^-126),
// deliberately not the smallest subnormal a strict IEEE-754
// nextafter(0, -Inf) would give.
const minPositiveNormal32 = 1.1754944e-38

// NextBelow returns the next representable float32 strictly below x, used to
// turn an inclusive upper bound into the exclusive bound every sampling
// strategy enforces. A zero input returns the negative of the smallest
// positive normal rather than the smallest subnormal, and +/-Inf and NaN
// pass through unchanged except +Inf, which saturates to the largest finite
// value.
func NextBelow(x float32) float32 {
	if math.IsNaN(float64(x)) {
		return x
	}
	if math.IsInf(float64(x), -1) {
		return x
	}
	if math.IsInf(float64(x), 1) {
		return math.MaxFloat32
	}
	if x == 0 {
		return -minPositiveNormal32
	}

	bits := math.Float32bits(x)
	if x > 0 {
		return math.Float32frombits(bits - 1)
	}
	return math.Float32frombits(bits + 1)
}
