// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package sampling

import (
	"sort"
	"testing"

	"github.com/terragrove/mapscatter/internal/rng"
	"github.com/terragrove/mapscatter/vecf"
)

func TestJitterGridClampsJitterValue(t *testing.T) {
	s := NewJitterGrid(2.0, 1.0)
	if s.Jitter != 1.0 {
		t.Fatalf("jitter = %v, want 1.0", s.Jitter)
	}
}

func TestJitterGridReturnsGridCentersWithoutJitter(t *testing.T) {
	s := NewJitterGrid(0.0, 2.0)
	src := rng.NewRand(1)
	points := s.Generate(vecf.Vec2{X: 4, Y: 4}, src)
	if len(points) != 4 {
		t.Fatalf("got %d points, want 4", len(points))
	}

	xs := make([]float32, len(points))
	ys := make([]float32, len(points))
	for i, p := range points {
		xs[i], ys[i] = p.X, p.Y
	}
	sort.Slice(xs, func(i, j int) bool { return xs[i] < xs[j] })
	sort.Slice(ys, func(i, j int) bool { return ys[i] < ys[j] })

	want := []float32{-1, -1, 1, 1}
	for i := range want {
		if xs[i] != want[i] || ys[i] != want[i] {
			t.Fatalf("xs=%v ys=%v, want %v for both", xs, ys, want)
		}
	}
}

func TestJitterGridEmptyForNonPositiveExtent(t *testing.T) {
	s := NewJitterGrid(0.0, 1.0)
	src := rng.NewRand(42)
	if got := s.Generate(vecf.Vec2{X: 0, Y: 5}, src); len(got) != 0 {
		t.Fatalf("w=0: got %d points", len(got))
	}
	if got := s.Generate(vecf.Vec2{X: 5, Y: 0}, src); len(got) != 0 {
		t.Fatalf("h=0: got %d points", len(got))
	}
}
