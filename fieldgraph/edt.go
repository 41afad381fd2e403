// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package fieldgraph

import (
	"math"

	"github.com/terragrove/mapscatter/chunk"
)

// bakeEdtNormalizeParams computes the Euclidean Distance Transform of the
// mask {inputField >= threshold}, normalizes by dMax (or clamps to 1.0 if
// dMax <= 0), and returns the result as a Raster. It uses the
// Felzenszwalb-Huttenlocher algorithm: two separable 1D lower-envelope
// passes over squared distance, then a final sqrt.
func bakeEdtNormalizeParams(rt *Runtime, inputField FieldID, threshold, dMax float32, id chunk.ID, grid chunk.Grid) *chunk.Raster {
	tw, th := grid.TotalWidth(), grid.TotalHeight()
	mask := make([]uint8, tw*th)

	for iy := 0; iy < th; iy++ {
		for ix := 0; ix < tw; ix++ {
			p := grid.CellCenter(ix, iy)
			v := rt.sample(inputField, p, id, grid)
			idx := iy*tw + ix
			if v >= threshold {
				mask[idx] = 1
			}
		}
	}

	edt := edtUnsigned(mask, tw, th)

	raster := chunk.NewRaster(grid)
	if dMax > 0 {
		for i, val := range edt {
			raster.Values[i] = float32(math.Min(float64(val/dMax), 1.0))
		}
	} else {
		for i, val := range edt {
			raster.Values[i] = float32(math.Min(float64(val), 1.0))
		}
	}
	return raster
}

// edt1D computes the 1D EDT of f (squared distance to nearest zero) via the
// lower-envelope-of-parabolas algorithm, writing into output.
func edt1D(f []float32, output []float32) {
	n := len(f)
	if n == 0 {
		return
	}

	v := make([]int, n)
	z := make([]float32, n+1)
	k := 0

	v[0] = 0
	z[0] = float32(math.Inf(-1))
	z[1] = float32(math.Inf(1))

	for q := 1; q < n; q++ {
		for {
			if k == 0 {
				s := intersectionSafe(q, v[0], f)
				if s <= z[0] {
					break
				}
			}

			r := v[k]
			s := intersectionSafe(q, r, f)

			if s <= z[k] {
				if k > 0 {
					k--
					continue
				}
				break
			}
			break
		}

		k++
		v[k] = q
		if k > 0 {
			z[k] = intersectionSafe(q, v[k-1], f)
		}
		z[k+1] = float32(math.Inf(1))
	}

	k = 0
	for q := range output {
		for k+1 < len(z) && z[k+1] < float32(q) {
			k++
		}
		dx := float32(q) - float32(v[k])
		output[q] = dx*dx + f[v[k]]
	}
}

// intersectionSafe returns the x coordinate where the parabolas rooted at i
// and j intersect in the lower envelope, or +Inf for a degenerate case (same
// index, a non-finite height, or a near-zero denominator).
func intersectionSafe(i, j int, f []float32) float32 {
	if i == j {
		return float32(math.Inf(1))
	}

	fi, fj := f[i], f[j]
	if !isFinite32(fi) || !isFinite32(fj) {
		return float32(math.Inf(1))
	}

	numerator := (fi + float32(i*i)) - (fj + float32(j*j))
	denominator := 2.0 * (float32(i) - float32(j))
	if math.Abs(float64(denominator)) < epsilon32 {
		return float32(math.Inf(1))
	}
	return numerator / denominator
}

const epsilon32 = 1.1920929e-7 // float32 machine epsilon

func isFinite32(f float32) bool {
	return !math.IsInf(float64(f), 0) && !math.IsNaN(float64(f))
}

// edtUnsigned computes the 2D EDT of a binary mask (w*h, row-major) via two
// separable 1D passes: rows then columns, then a final sqrt to convert
// squared distance to distance.
func edtUnsigned(mask []uint8, w, h int) []float32 {
	maxDistSquared := float32(w*w + h*h)
	f := make([]float32, w*h)
	for i, m := range mask {
		if m == 0 {
			f[i] = 0
		} else {
			f[i] = maxDistSquared
		}
	}

	rowBuffer := make([]float32, w)
	for y := 0; y < h; y++ {
		start := y * w
		edt1D(f[start:start+w], rowBuffer)
		copy(f[start:start+w], rowBuffer)
	}

	colInput := make([]float32, h)
	colOutput := make([]float32, h)
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			colInput[y] = f[y*w+x]
		}
		edt1D(colInput, colOutput)
		for y := 0; y < h; y++ {
			f[y*w+x] = colOutput[y]
		}
	}

	for i, val := range f {
		f[i] = float32(math.Sqrt(float64(val)))
	}
	return f
}
