// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package sampling

import (
	"testing"

	"github.com/terragrove/mapscatter/internal/rng"
	"github.com/terragrove/mapscatter/vecf"
)

func TestBestCandidateEmptyForZeroCountOrNonPositiveExtent(t *testing.T) {
	src := rng.NewRand(1)
	s0 := NewBestCandidate(0, 16)
	if got := s0.Generate(vecf.Vec2{X: 10, Y: 10}, src); len(got) != 0 {
		t.Fatalf("count=0: got %d points", len(got))
	}

	s1 := NewBestCandidate(10, 16)
	for _, extent := range []vecf.Vec2{{X: 0, Y: 10}, {X: 10, Y: 0}, {X: -5, Y: 2}} {
		if got := s1.Generate(extent, src); len(got) != 0 {
			t.Fatalf("extent=%v: got %d points", extent, len(got))
		}
	}
}

func TestBestCandidateCountAndBoundsRespected(t *testing.T) {
	src := rng.NewRand(42)
	s := NewBestCandidate(128, 16)
	pts := s.Generate(vecf.Vec2{X: 9, Y: 5}, src)
	if len(pts) != 128 {
		t.Fatalf("got %d points, want 128", len(pts))
	}
	halfW, halfH := float32(4.5), float32(2.5)
	for _, p := range pts {
		if p.X < -halfW || p.X >= halfW || p.Y < -halfH || p.Y >= halfH {
			t.Fatalf("point %v out of bounds", p)
		}
	}
}

func TestBestCandidateDeterminismForSameSeed(t *testing.T) {
	s := NewBestCandidate(64, 8)

	a := s.Generate(vecf.Vec2{X: 10, Y: 10}, rng.NewRand(123))
	b := s.Generate(vecf.Vec2{X: 10, Y: 10}, rng.NewRand(123))
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("point %d mismatch: %v vs %v", i, a[i], b[i])
		}
	}

	c := s.Generate(vecf.Vec2{X: 10, Y: 10}, rng.NewRand(456))
	same := true
	for i := range a {
		if a[i] != c[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("different seeds produced identical sequences")
	}
}
