// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package vecf

// Rect is an axis-aligned rectangle anchored at its center, the shape of a
// domain extent or a chunk's coverage.
type Rect struct {
	Center Vec2
	Width  float32
	Height float32
}

func RectFromCenter(center Vec2, width, height float32) Rect {
	return Rect{Center: center, Width: width, Height: height}
}

// Min is the lower-left corner of the rect.
func (r Rect) Min() Vec2 {
	return Vec2{X: r.Center.X - r.Width*0.5, Y: r.Center.Y - r.Height*0.5}
}

// Max is the upper-right corner of the rect.
func (r Rect) Max() Vec2 {
	return Vec2{X: r.Center.X + r.Width*0.5, Y: r.Center.Y + r.Height*0.5}
}

// ContainsHalfOpen reports whether p lies in [min, max) componentwise, the
// half-open bound every sampler strategy must respect.
func (r Rect) ContainsHalfOpen(p Vec2) bool {
	min, max := r.Min(), r.Max()
	return p.X >= min.X && p.X < max.X && p.Y >= min.Y && p.Y < max.Y
}
