// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package sampling

import (
	"math"

	"github.com/terragrove/mapscatter/internal/rng"
	"github.com/terragrove/mapscatter/vecf"
)

// PoissonDisk implements Bridson's algorithm: every pair of output points is
// at least Radius apart.
type PoissonDisk struct {
	Radius float32
}

func NewPoissonDisk(radius float32) PoissonDisk {
	return PoissonDisk{Radius: radius}
}

func (s PoissonDisk) Generate(domainExtent vecf.Vec2, src rng.Source) []vecf.Vec2 {
	if !isFinite32(s.Radius) || s.Radius <= 0 {
		return nil
	}
	w, h := domainExtent.X, domainExtent.Y
	if !isFinite32(w) || !isFinite32(h) || w <= 0 || h <= 0 {
		return nil
	}
	sampler := newPoissonDiskSampler(s.Radius, domainExtent)
	return sampler.generate(src)
}

type poissonDiskSampler struct {
	radius        float32
	radiusSquared float32
	cellSize      float32
	gridWidth     int
	gridHeight    int
	grid          []poissonCell
	active        []vecf.Vec2
	bounds        vecf.Vec2
}

type poissonCell struct {
	point vecf.Vec2
	set   bool
}

func newPoissonDiskSampler(radius float32, bounds vecf.Vec2) *poissonDiskSampler {
	cellSize := radius / float32(math.Sqrt2)
	gridWidth := int(math.Ceil(float64(bounds.X/cellSize))) + 1
	gridHeight := int(math.Ceil(float64(bounds.Y/cellSize))) + 1

	return &poissonDiskSampler{
		radius:        radius,
		radiusSquared: radius * radius,
		cellSize:      cellSize,
		gridWidth:     gridWidth,
		gridHeight:    gridHeight,
		grid:          make([]poissonCell, gridWidth*gridHeight),
		bounds:        bounds,
	}
}

func (s *poissonDiskSampler) gridIndex(x, y int) int {
	return y*s.gridWidth + x
}

func (s *poissonDiskSampler) pointToGrid(p vecf.Vec2) (int, int) {
	centeredX := p.X + s.bounds.X/2.0
	centeredY := p.Y + s.bounds.Y/2.0
	x := clampInt(int(math.Floor(float64(centeredX/s.cellSize))), 0, s.gridWidth-1)
	y := clampInt(int(math.Floor(float64(centeredY/s.cellSize))), 0, s.gridHeight-1)
	return x, y
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (s *poissonDiskSampler) isValidPoint(p vecf.Vec2) bool {
	halfX, halfY := s.bounds.X/2.0, s.bounds.Y/2.0
	if p.X < -halfX || p.X >= halfX || p.Y < -halfY || p.Y >= halfY {
		return false
	}

	gx, gy := s.pointToGrid(p)
	startX := maxInt(gx-2, 0)
	endX := minInt(gx+3, s.gridWidth)
	startY := maxInt(gy-2, 0)
	endY := minInt(gy+3, s.gridHeight)

	for y := startY; y < endY; y++ {
		for x := startX; x < endX; x++ {
			cell := s.grid[s.gridIndex(x, y)]
			if !cell.set {
				continue
			}
			if p.DistanceSquared(cell.point) < s.radiusSquared {
				return false
			}
		}
	}
	return true
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func (s *poissonDiskSampler) addPoint(p vecf.Vec2) {
	gx, gy := s.pointToGrid(p)
	s.grid[s.gridIndex(gx, gy)] = poissonCell{point: p, set: true}
	s.active = append(s.active, p)
}

const poissonMaxAttempts = 30

func (s *poissonDiskSampler) generateAroundPoint(src rng.Source, p vecf.Vec2) (vecf.Vec2, bool) {
	for i := 0; i < poissonMaxAttempts; i++ {
		angle := rand01(src) * 2.0 * math.Pi
		distance := s.radius + rand01(src)*s.radius

		candidate := vecf.Vec2{
			X: p.X + float32(math.Cos(float64(angle)))*distance,
			Y: p.Y + float32(math.Sin(float64(angle)))*distance,
		}
		if s.isValidPoint(candidate) {
			return candidate, true
		}
	}
	return vecf.Vec2{}, false
}

func (s *poissonDiskSampler) generate(src rng.Source) []vecf.Vec2 {
	halfX, halfY := s.bounds.X/2.0, s.bounds.Y/2.0

	initial := vecf.Vec2{
		X: -halfX + rand01(src)*(2.0*halfX),
		Y: -halfY + rand01(src)*(2.0*halfY),
	}
	s.addPoint(initial)

	points := []vecf.Vec2{initial}

	for len(s.active) > 0 {
		active := s.active[0]
		s.active = s.active[1:]

		foundAny := false
		for i := 0; i < 5; i++ {
			if p, ok := s.generateAroundPoint(src, active); ok {
				s.addPoint(p)
				points = append(points, p)
				foundAny = true
			}
		}

		if foundAny {
			s.active = append(s.active, active)
		}
	}

	return points
}
