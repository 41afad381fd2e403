// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package sampling

import (
	"math"

	"github.com/terragrove/mapscatter/internal/rng"
	"github.com/terragrove/mapscatter/vecf"
)

// ParentStrategy picks how many cluster centers (parents) to place.
type ParentStrategy struct {
	// exactly one of these is meaningful, selected by IsDensity
	Count     int
	Density   float32 // parents per unit area
	IsDensity bool
}

func ParentCount(n int) ParentStrategy      { return ParentStrategy{Count: n} }
func ParentDensity(d float32) ParentStrategy { return ParentStrategy{Density: d, IsDensity: true} }

// ClusterKernel is the displacement distribution applied to children
// relative to their parent.
type ClusterKernel struct {
	// exactly one of these is meaningful, selected by IsUniformDisk
	Sigma         float32 // Gaussian standard deviation (Thomas process)
	Radius        float32 // uniform disk radius (Neyman-Scott process)
	IsUniformDisk bool
}

func GaussianKernel(sigma float32) ClusterKernel { return ClusterKernel{Sigma: sigma} }
func UniformDiskKernel(radius float32) ClusterKernel {
	return ClusterKernel{Radius: radius, IsUniformDisk: true}
}

// Clustered generates a Thomas or Neyman-Scott point process: a set of
// parent centers, each spawning a Poisson-distributed number of children
// displaced by Kernel.
type Clustered struct {
	Parents      ParentStrategy
	MeanChildren float32
	Kernel       ClusterKernel
	// ClampInside clips out-of-domain children to the open rectangle;
	// when false, children land wherever the kernel puts them and only
	// non-finite samples are discarded.
	ClampInside bool
}

func ThomasWithCount(parentCount int, meanChildren, sigma float32) Clustered {
	return Clustered{Parents: ParentCount(parentCount), MeanChildren: meanChildren, Kernel: GaussianKernel(sigma), ClampInside: true}
}

func ThomasWithDensity(density, meanChildren, sigma float32) Clustered {
	return Clustered{Parents: ParentDensity(density), MeanChildren: meanChildren, Kernel: GaussianKernel(sigma), ClampInside: true}
}

func NeymanScottWithCount(parentCount int, meanChildren, radius float32) Clustered {
	return Clustered{Parents: ParentCount(parentCount), MeanChildren: meanChildren, Kernel: UniformDiskKernel(radius), ClampInside: true}
}

func NeymanScottWithDensity(density, meanChildren, radius float32) Clustered {
	return Clustered{Parents: ParentDensity(density), MeanChildren: meanChildren, Kernel: UniformDiskKernel(radius), ClampInside: true}
}

func (c Clustered) WithClampInside(clamp bool) Clustered {
	c.ClampInside = clamp
	return c
}

func (c Clustered) Generate(domainExtent vecf.Vec2, src rng.Source) []vecf.Vec2 {
	w, h := domainExtent.X, domainExtent.Y
	if !isFinite32(w) || !isFinite32(h) || w <= 0 || h <= 0 {
		return nil
	}

	halfW, halfH := w*0.5, h*0.5
	maxX, maxY := nextDown(halfW), nextDown(halfH)

	var parentCount int
	if c.Parents.IsDensity {
		lam := vecf.Max(c.Parents.Density, 0) * (w * h)
		parentCount = int(poissonKnuth(lam, src))
	} else {
		parentCount = c.Parents.Count
	}

	if parentCount == 0 || c.MeanChildren <= 0 {
		return nil
	}

	out := make([]vecf.Vec2, 0, int(math.Ceil(float64(float32(parentCount)*c.MeanChildren))))

	for i := 0; i < parentCount; i++ {
		parentX := -halfW + rand01(src)*w
		parentY := -halfH + rand01(src)*h
		parent := vecf.Vec2{X: parentX, Y: parentY}

		k := int(poissonKnuth(vecf.Max(c.MeanChildren, 0), src))
		if k == 0 {
			continue
		}

		if c.Kernel.IsUniformDisk {
			r := vecf.Max(c.Kernel.Radius, 0)
			for n := 0; n < k; n++ {
				ru := r * float32(math.Sqrt(float64(rand01(src))))
				theta := 2.0 * math.Pi * rand01(src)
				x := parent.X + ru*float32(math.Cos(float64(theta)))
				y := parent.Y + ru*float32(math.Sin(float64(theta)))

				if c.ClampInside {
					x = clampRange(x, -halfW, maxX)
					y = clampRange(y, -halfH, maxY)
				}
				if isFinite32(x) && isFinite32(y) {
					out = append(out, vecf.Vec2{X: x, Y: y})
				}
			}
		} else {
			s := vecf.Max(c.Kernel.Sigma, 0)
			for n := 0; n < k; n++ {
				nx, ny := boxMullerPair(src)
				x := parent.X + s*nx
				y := parent.Y + s*ny

				if c.ClampInside {
					x = clampRange(x, -halfW, maxX)
					y = clampRange(y, -halfH, maxY)
				}
				if isFinite32(x) && isFinite32(y) {
					out = append(out, vecf.Vec2{X: x, Y: y})
				}
			}
		}
	}

	return out
}

// poissonKnuth draws a Poisson(lambda)-distributed count via Knuth's
// multiplicative algorithm.
func poissonKnuth(lambda float32, src rng.Source) uint32 {
	if !isFinite32(lambda) || lambda <= 0 {
		return 0
	}

	l := float32(math.Exp(float64(-lambda)))
	var k uint32
	p := float32(1.0)

	for {
		k++
		p *= rand01(src)
		if p <= l {
			return k - 1
		}
		if k > 10_000_000 {
			return k - 1
		}
	}
}

// boxMullerPair draws two independent standard-normal samples.
func boxMullerPair(src rng.Source) (float32, float32) {
	u1 := clampRange(1.0-rand01(src), minPositiveFloat32, 1.0)
	u2 := rand01(src)

	r := float32(math.Sqrt(float64(-2.0 * math.Log(float64(u1)))))
	theta := 2.0 * math.Pi * u2

	return r * float32(math.Cos(float64(theta))), r * float32(math.Sin(float64(theta)))
}
