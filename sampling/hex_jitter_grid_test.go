// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package sampling

import (
	"math"
	"testing"

	"github.com/terragrove/mapscatter/internal/rng"
	"github.com/terragrove/mapscatter/vecf"
)

func TestHexJitterGridClampsJitterValue(t *testing.T) {
	s := NewHexJitterGrid(2.5, 1.0)
	if s.Jitter != 1.0 {
		t.Fatalf("jitter = %v, want 1.0", s.Jitter)
	}
	s = NewHexJitterGrid(-0.5, 1.0)
	if s.Jitter != 0.0 {
		t.Fatalf("jitter = %v, want 0.0", s.Jitter)
	}
}

func TestHexJitterGridEmptyForNonPositiveExtent(t *testing.T) {
	s := NewHexJitterGrid(0.0, 1.0)
	src := rng.NewRand(1)
	for _, extent := range []vecf.Vec2{{X: 0, Y: 5}, {X: 5, Y: 0}, {X: -1, Y: 1}} {
		if got := s.Generate(extent, src); len(got) != 0 {
			t.Fatalf("extent=%v: got %d points", extent, len(got))
		}
	}
}

func TestHexJitterGridPointsStayInsideBounds(t *testing.T) {
	s := NewHexJitterGrid(1.0, 5.0)
	src := rng.NewRand(42)
	w, h := float32(23), float32(17)
	pts := s.Generate(vecf.Vec2{X: w, Y: h}, src)

	halfW, halfH := w*0.5, h*0.5
	if len(pts) == 0 {
		t.Fatal("expected non-empty result")
	}
	for _, p := range pts {
		if p.X < -halfW || p.X >= halfW || p.Y < -halfH || p.Y >= halfH {
			t.Fatalf("point %v out of bounds", p)
		}
	}
}

func TestHexJitterGridOddRowsOffsetWhenNoJitter(t *testing.T) {
	s := NewHexJitterGrid(0.0, 4.0)
	src := rng.NewRand(7)
	pts := s.Generate(vecf.Vec2{X: 20, Y: 20}, src)
	if len(pts) == 0 {
		t.Fatal("expected non-empty result")
	}

	dx := float32(4.0)
	dy := dx * float32(math.Sqrt(3)) * 0.5

	minY := float32(math.Inf(1))
	for _, p := range pts {
		if p.Y < minY {
			minY = p.Y
		}
	}
	band0Max := minY + dy*0.75
	band1Min := band0Max + dy*0.25

	var row0, row1 []float32
	for _, p := range pts {
		switch {
		case p.Y <= band0Max:
			row0 = append(row0, p.X)
		case p.Y >= band1Min && p.Y < band1Min+dy*0.75:
			row1 = append(row1, p.X)
		}
	}

	if len(row0) > 0 && len(row1) > 0 {
		minSlice := func(s []float32) float32 {
			m := s[0]
			for _, v := range s {
				if v < m {
					m = v
				}
			}
			return m
		}
		dxEst := float32(math.Abs(float64(minSlice(row1) - minSlice(row0))))
		if math.Abs(float64(dxEst-dx*0.5)) >= 0.6 {
			t.Fatalf("dxEst=%v, want close to %v", dxEst, dx*0.5)
		}
	}
}
