// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package sampling

import (
	"math"

	"github.com/terragrove/mapscatter/internal/rng"
	"github.com/terragrove/mapscatter/vecf"
)

// StratifiedMultiJitter is a correlated multi-jittered (Kensler CMJ) sampler:
// a near-square grid of strata, each axis permuted independently per row and
// column, then jittered within its cell.
type StratifiedMultiJitter struct {
	Count  int
	Rotate bool
}

func NewStratifiedMultiJitter(count int) StratifiedMultiJitter {
	return StratifiedMultiJitter{Count: count}
}

func NewStratifiedMultiJitterWithRotation(count int, rotate bool) StratifiedMultiJitter {
	return StratifiedMultiJitter{Count: count, Rotate: rotate}
}

func (s StratifiedMultiJitter) Generate(domainExtent vecf.Vec2, src rng.Source) []vecf.Vec2 {
	w, h := domainExtent.X, domainExtent.Y
	if s.Count == 0 || w <= 0 || h <= 0 {
		return nil
	}

	nx := int(math.Ceil(math.Sqrt(float64(s.Count))))
	ny := ceilDiv(s.Count, nx)
	if ny < 1 {
		ny = 1
	}

	var dx, dy float32
	if s.Rotate {
		dx, dy = rand01(src), rand01(src)
	}

	colPermPerRow := make([][]int, ny)
	for j := range colPermPerRow {
		colPermPerRow[j] = fisherYatesShuffle(identityPerm(nx), src)
	}
	rowPermPerCol := make([][]int, nx)
	for i := range rowPermPerCol {
		rowPermPerCol[i] = fisherYatesShuffle(identityPerm(ny), src)
	}

	halfW, halfH := w*0.5, h*0.5
	maxX, maxY := nextDown(halfW), nextDown(halfH)

	out := make([]vecf.Vec2, 0, s.Count)
	for n := 0; n < s.Count; n++ {
		i := n % nx
		j := n / nx
		if j >= ny {
			break
		}

		sx := colPermPerRow[j][i]
		sy := rowPermPerCol[i][j]
		jx, jy := rand01(src), rand01(src)

		u := (float32(i) + (float32(sy)+jx)/float32(ny)) / float32(nx)
		v := (float32(j) + (float32(sx)+jy)/float32(nx)) / float32(ny)

		u = frac(u + dx)
		v = frac(v + dy)

		x := clampRange(u*w-halfW, -halfW, maxX)
		y := clampRange(v*h-halfH, -halfH, maxY)
		out = append(out, vecf.Vec2{X: x, Y: y})
	}
	return out
}

func ceilDiv(a, b int) int {
	if b == 0 {
		return 0
	}
	return (a + b - 1) / b
}

func identityPerm(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	return p
}

// fisherYatesShuffle shuffles arr in place using src and returns it.
func fisherYatesShuffle(arr []int, src rng.Source) []int {
	n := len(arr)
	for n > 1 {
		k := int(src.NextU32() % uint32(n))
		n--
		arr[n], arr[k] = arr[k], arr[n]
	}
	return arr
}
