// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package sampling

import (
	"testing"

	"github.com/terragrove/mapscatter/internal/rng"
	"github.com/terragrove/mapscatter/vecf"
)

func TestFibonacciLatticeEmptyForZeroCountOrNonPositiveExtent(t *testing.T) {
	src := rng.NewRand(1)
	s0 := NewFibonacciLattice(0)
	if got := s0.Generate(vecf.Vec2{X: 10, Y: 10}, src); len(got) != 0 {
		t.Fatalf("count=0: got %d points", len(got))
	}

	s1 := NewFibonacciLattice(10)
	for _, extent := range []vecf.Vec2{{X: 0, Y: 10}, {X: 10, Y: 0}, {X: -5, Y: 2}} {
		if got := s1.Generate(extent, src); len(got) != 0 {
			t.Fatalf("extent=%v: got %d points", extent, len(got))
		}
	}
}

func TestFibonacciLatticePointsWithinDomain(t *testing.T) {
	src := rng.NewRand(42)
	s := NewFibonacciLattice(100)
	pts := s.Generate(vecf.Vec2{X: 7, Y: 3}, src)
	if len(pts) != 100 {
		t.Fatalf("got %d points, want 100", len(pts))
	}
	halfW, halfH := float32(3.5), float32(1.5)
	for _, p := range pts {
		if p.X < -halfW || p.X >= halfW || p.Y < -halfH || p.Y >= halfH {
			t.Fatalf("point %v out of bounds", p)
		}
	}
}

func TestFibonacciLatticeRotationChangesDistribution(t *testing.T) {
	noRot := NewFibonacciLatticeWithRotation(16, false)
	a := noRot.Generate(vecf.Vec2{X: 10, Y: 10}, rng.NewRand(123))
	b := noRot.Generate(vecf.Vec2{X: 10, Y: 10}, rng.NewRand(987))
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("point %d mismatch without rotation: %v vs %v", i, a[i], b[i])
		}
	}

	rot := NewFibonacciLatticeWithRotation(16, true)
	c := rot.Generate(vecf.Vec2{X: 10, Y: 10}, rng.NewRand(123))
	d := rot.Generate(vecf.Vec2{X: 10, Y: 10}, rng.NewRand(987))
	same := true
	for i := range c {
		if c[i] != d[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("rotation did not change the distribution across seeds")
	}
}
