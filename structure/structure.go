// SPDX-License-Identifier: MIT

package structure

import (
	"math"
	"sort"
)

const (
	// Eps is the radial offset (km) used when probing either side of a radius.
	Eps = 1e-7

	// MaximumRatioOfDBoundary is the largest relative change (in percent) of
	// any parameter across r±Eps that is still considered continuous.
	MaximumRatioOfDBoundary = 1e-2

	// DBoundaryZone is the half width (km) of the zone around a discontinuity
	// inside which a depth is snapped onto it.
	DBoundaryZone = 0.5
)

// Structure is a spherically symmetric elastic model.
// Implementations must be safe for concurrent use.
type Structure interface {
	// Rho returns the density at radius r.
	Rho(r float64) float64
	// A returns ρ·Vph².
	A(r float64) float64
	// C returns ρ·Vpv².
	C(r float64) float64
	// F returns η·(A − 2L).
	F(r float64) float64
	// L returns ρ·Vsv².
	L(r float64) float64
	// N returns ρ·Vsh².
	N(r float64) float64

	InnerCoreBoundary() float64
	CoreMantleBoundary() float64
	EarthRadius() float64

	// Boundaries returns every layer boundary in ascending order, starting
	// with 0 and ending with EarthRadius.
	Boundaries() []float64

	// Fingerprint is a content hash of the defining parameters. Two
	// structures with equal fingerprints are interchangeable.
	Fingerprint() string
}

// Equal reports whether a and b describe the same model.
func Equal(a, b Structure) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Fingerprint() == b.Fingerprint()
}

// Partition is one of the three principal shells of the planet.
type Partition uint8

const (
	InnerCore Partition = iota
	OuterCore
	Mantle
)

// String implements fmt.Stringer.
func (p Partition) String() string {
	switch p {
	case InnerCore:
		return "inner-core"
	case OuterCore:
		return "outer-core"
	case Mantle:
		return "mantle"
	}
	return "unknown"
}

// PartitionOf returns the partition containing r. Boundary radii belong to
// the shell above them.
func PartitionOf(s Structure, r float64) Partition {
	switch {
	case r < s.InnerCoreBoundary():
		return InnerCore
	case r < s.CoreMantleBoundary():
		return OuterCore
	}
	return Mantle
}

// Bounds returns the bottom and top radius of the partition p.
func Bounds(s Structure, p Partition) (bottom, top float64) {
	switch p {
	case InnerCore:
		return 0, s.InnerCoreBoundary()
	case OuterCore:
		return s.InnerCoreBoundary(), s.CoreMantleBoundary()
	}
	return s.CoreMantleBoundary(), s.EarthRadius()
}

// IsDiscontinuity reports whether any of ρ, A, C, F, L, N changes across
// r±Eps by more than MaximumRatioOfDBoundary percent.
func IsDiscontinuity(s Structure, r float64) bool {
	for _, f := range []func(float64) float64{s.Rho, s.A, s.C, s.F, s.L, s.N} {
		lo, hi := math.Abs(f(r-Eps)), math.Abs(f(r+Eps))
		if lo == hi {
			continue
		}
		ratio := lo / hi
		if hi < lo {
			ratio = hi / lo
		}
		if ratio < 1-MaximumRatioOfDBoundary/100 {
			return true
		}
	}
	return false
}

// Discontinuities returns the boundaries of s at which IsDiscontinuity is
// true, excluding the centre and the surface.
func Discontinuities(s Structure) []float64 {
	var out []float64
	b := s.Boundaries()
	for _, r := range b[1 : len(b)-1] {
		if IsDiscontinuity(s, r) {
			out = append(out, r)
		}
	}
	return out
}

// SnapToDiscontinuity returns the discontinuity within DBoundaryZone of r,
// or r itself when there is none.
func SnapToDiscontinuity(s Structure, r float64) float64 {
	for _, d := range Discontinuities(s) {
		if math.Abs(d-r) <= DBoundaryZone {
			return d
		}
	}
	return r
}

// layerIndex locates r in the ascending boundary list b: the returned i
// satisfies b[i] <= r < b[i+1], clamped to the valid range.
func layerIndex(b []float64, r float64) int {
	i := sort.SearchFloat64s(b, r)
	if i < len(b) && b[i] == r {
		i++
	}
	i--
	if i < 0 {
		return 0
	}
	if i > len(b)-2 {
		return len(b) - 2
	}
	return i
}

func elastic(rho, vpv, vph, vsv, vsh, eta float64) (a, c, f, l, n float64) {
	a = rho * vph * vph
	c = rho * vpv * vpv
	l = rho * vsv * vsv
	n = rho * vsh * vsh
	f = eta * (a - 2*l)
	return
}

// Sample holds every parameter of a structure at one radius.
type Sample struct {
	Rho, A, C, F, L, N float64
}

// sampler is implemented by structures able to evaluate all parameters in
// one pass.
type sampler interface {
	Sample(r float64) Sample
}

// At evaluates every parameter of s at r.
func At(s Structure, r float64) Sample {
	if sm, ok := s.(sampler); ok {
		return sm.Sample(r)
	}
	return Sample{Rho: s.Rho(r), A: s.A(r), C: s.C(r), F: s.F(r), L: s.L(r), N: s.N(r)}
}
