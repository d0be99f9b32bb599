// SPDX-License-Identifier: MIT

package structure

import "math"

// Modulus selects the elastic modulus that fixes the horizontal phase
// velocity of a wave type: A for P, K and I waves, L for SV and JV, N for SH.
type Modulus uint8

const (
	ModulusA Modulus = iota
	ModulusL
	ModulusN
)

// Of picks the modulus from a sample.
func (m Modulus) Of(s Sample) float64 {
	switch m {
	case ModulusL:
		return s.L
	case ModulusN:
		return s.N
	}
	return s.A
}

// TurningState classifies how a ray of a given ray parameter behaves inside
// a radial range.
type TurningState uint8

const (
	// Penetrates: the ray reaches the bottom of the range without turning.
	Penetrates TurningState = iota
	// Turns: the ray turns at the returned radius.
	Turns
	// Evanescent: the ray cannot propagate at the top of the range.
	Evanescent
)

// String implements fmt.Stringer.
func (t TurningState) String() string {
	switch t {
	case Penetrates:
		return "penetrates"
	case Turns:
		return "turns"
	case Evanescent:
		return "evanescent"
	}
	return "unknown"
}

// turningScanStep is the coarse scan step (km) before bisection.
const turningScanStep = 2.0

// HorizontalSlowness returns r·sqrt(ρ/M), the ray parameter of a ray
// travelling horizontally at r. A zero modulus yields +Inf.
func HorizontalSlowness(s Structure, m Modulus, r float64) float64 {
	smp := At(s, r)
	mod := m.Of(smp)
	if mod <= 0 {
		return math.Inf(1)
	}
	return r * math.Sqrt(smp.Rho/mod)
}

// TurningRadius solves r·sqrt(ρ/M) = p for the first root met when going
// down from top to bottom. A velocity jump that stops the ray turns it at
// the discontinuity itself. A range reaching the centre always turns, at 0
// for p = 0.
// Complexity: O((top-bottom)/step + log(1/tol)) structure evaluations.
func TurningRadius(s Structure, m Modulus, p, bottom, top float64) (float64, TurningState) {
	// Stage 1: Validate
	f := func(r float64) float64 { return HorizontalSlowness(s, m, r) - p }
	if math.IsNaN(p) || p < 0 || f(top-Eps) < 0 {
		return math.NaN(), Evanescent
	}

	// Stage 2: Collect layer edges from the top down
	edges := []float64{top}
	b := s.Boundaries()
	for i := len(b) - 1; i >= 0; i-- {
		if b[i] > bottom && b[i] < top {
			edges = append(edges, b[i])
		}
	}
	edges = append(edges, bottom)

	// Stage 3: Scan each layer and bisect the first sign change
	for k := 0; k+1 < len(edges); k++ {
		hi, lo := edges[k]-Eps, edges[k+1]+Eps
		if k > 0 && f(hi) < 0 {
			return edges[k], Turns
		}
		prev := hi
		for r := hi - turningScanStep; ; r -= turningScanStep {
			if r < lo {
				r = lo
			}
			if f(r) < 0 {
				return bisect(f, r, prev), Turns
			}
			if r == lo {
				break
			}
			prev = r
		}
	}

	// Stage 4: Finalize
	if bottom == 0 {
		return 0, Turns
	}
	return math.NaN(), Penetrates
}

// bisect narrows [neg, pos] where f(neg) < 0 <= f(pos) and returns the
// non-negative side.
func bisect(f func(float64) float64, neg, pos float64) float64 {
	for i := 0; i < 200 && math.Abs(pos-neg) > 1e-10*math.Max(1, pos); i++ {
		mid := 0.5 * (neg + pos)
		if f(mid) < 0 {
			neg = mid
		} else {
			pos = mid
		}
	}
	return pos
}

// PTurningRadius is the turning radius of a mantle P wave.
func PTurningRadius(s Structure, p float64) (float64, TurningState) {
	return TurningRadius(s, ModulusA, p, s.CoreMantleBoundary(), s.EarthRadius())
}

// SVTurningRadius is the turning radius of a mantle SV wave.
func SVTurningRadius(s Structure, p float64) (float64, TurningState) {
	return TurningRadius(s, ModulusL, p, s.CoreMantleBoundary(), s.EarthRadius())
}

// SHTurningRadius is the turning radius of a mantle SH wave.
func SHTurningRadius(s Structure, p float64) (float64, TurningState) {
	return TurningRadius(s, ModulusN, p, s.CoreMantleBoundary(), s.EarthRadius())
}

// KTurningRadius is the turning radius of an outer-core P wave.
func KTurningRadius(s Structure, p float64) (float64, TurningState) {
	return TurningRadius(s, ModulusA, p, s.InnerCoreBoundary(), s.CoreMantleBoundary())
}

// ITurningRadius is the turning radius of an inner-core P wave.
func ITurningRadius(s Structure, p float64) (float64, TurningState) {
	return TurningRadius(s, ModulusA, p, 0, s.InnerCoreBoundary())
}

// JVTurningRadius is the turning radius of an inner-core SV wave.
func JVTurningRadius(s Structure, p float64) (float64, TurningState) {
	return TurningRadius(s, ModulusL, p, 0, s.InnerCoreBoundary())
}
