// SPDX-License-Identifier: MIT

package woodhouse

import (
	"math"

	"github.com/katalvlaran/raytime/phase"
	"github.com/katalvlaran/raytime/structure"
)

// Coefficients holds S1..S5 together with the moduli the SH, K and
// inner-core integrands read directly.
type Coefficients struct {
	S1, S2, S3, S4, S5 float64
	Rho, A, C, L, N    float64
}

// At computes the coefficients of s at r without memoization.
func At(s structure.Structure, r float64) Coefficients {
	m := structure.At(s, r)
	c := Coefficients{Rho: m.Rho, A: m.A, C: m.C, L: m.L, N: m.N}
	c.S1 = 0.5 * m.Rho * (1/m.L + 1/m.C)
	c.S2 = 0.5 * m.Rho * (1/m.L - 1/m.C)
	c.S3 = 0.5 / (m.L * m.C) * (m.A*m.C - m.F*m.F - 2*m.L*m.F)
	c.S4 = c.S3*c.S3 - m.A/m.C
	c.S5 = 0.5*m.Rho/m.C*(1+m.A/m.L) - c.S1*c.S3
	return c
}

// R returns sqrt(S4 (p/r)⁴ + 2 S5 (p/r)² + S2²).
func (c Coefficients) R(p, r float64) float64 {
	x := p * p / (r * r)
	return math.Sqrt(c.S4*x*x + 2*c.S5*x + c.S2*c.S2)
}

// Q returns qτ, qΔ and qT of wave w for ray parameter p at radius r.
// All three are NaN when the ray does not exist at r.
func (c Coefficients) Q(w phase.WaveType, p, r float64) (qtau, qdelta, qt float64) {
	r2 := r * r
	x := p * p / r2
	switch w {
	case phase.WaveP, phase.WaveI, phase.WaveSV, phase.WaveJV:
		rr := c.R(p, r)
		sign := -1.0
		if w == phase.WaveSV || w == phase.WaveJV {
			sign = 1
		}
		qtau = math.Sqrt(c.S1 - c.S3*x + sign*rr)
		qdelta = p / r2 / qtau * (c.S3 - sign*(c.S4*x+c.S5)/rr)
		qt = (c.S1 + sign*(c.S5*x+c.S2*c.S2)/rr) / qtau
	case phase.WaveSH:
		qtau = math.Sqrt(c.Rho/c.L - c.N*x/c.L)
		qdelta = p * c.N / c.L / qtau / r2
		qt = c.Rho / c.L / qtau
	case phase.WaveK:
		qtau = math.Sqrt(c.Rho/c.A - x)
		qdelta = p / r2 / qtau
		qt = c.Rho / c.A / qtau
	default:
		return math.NaN(), math.NaN(), math.NaN()
	}
	if math.IsNaN(qtau) {
		return math.NaN(), math.NaN(), math.NaN()
	}
	return qtau, qdelta, qt
}

// Kernel evaluates integrands on one structure. It is safe for concurrent
// use.
type Kernel struct {
	s    structure.Structure
	t    *table
	zero Coefficients
}

// Option configures a Kernel.
type Option func(*Kernel)

// WithCache shares c with other kernels. Without it each kernel memoizes
// privately.
func WithCache(c *Cache) Option {
	return func(k *Kernel) {
		if c != nil {
			k.t = c.table(k.s)
		}
	}
}

// New returns a kernel on s.
func New(s structure.Structure, opts ...Option) *Kernel {
	k := &Kernel{s: s}
	for _, o := range opts {
		o(k)
	}
	if k.t == nil {
		k.t = &table{}
	}
	k.zero = At(s, 0)
	return k
}

// Structure returns the structure the kernel evaluates.
func (k *Kernel) Structure() structure.Structure { return k.s }

// Coefficients returns the memoized coefficients at r.
func (k *Kernel) Coefficients(r float64) Coefficients {
	if v, ok := k.t.values.Load(r); ok {
		return v.(Coefficients)
	}
	c := At(k.s, r)
	k.t.values.Store(r, c)
	return c
}

// Fresh computes the coefficients at r bypassing the memo table. Quadrature
// nodes near a turning point are never reused, so storing them only grows
// the table.
func (k *Kernel) Fresh(r float64) Coefficients { return At(k.s, r) }

// Zero returns the coefficients at the centre of the Earth.
func (k *Kernel) Zero() Coefficients { return k.zero }

// QTau returns qτ of wave w.
func (k *Kernel) QTau(w phase.WaveType, p, r float64) float64 {
	q, _, _ := k.Coefficients(r).Q(w, p, r)
	return q
}

// QDelta returns qΔ of wave w.
func (k *Kernel) QDelta(w phase.WaveType, p, r float64) float64 {
	_, q, _ := k.Coefficients(r).Q(w, p, r)
	return q
}

// QT returns qT of wave w.
func (k *Kernel) QT(w phase.WaveType, p, r float64) float64 {
	_, _, q := k.Coefficients(r).Q(w, p, r)
	return q
}

// QTauNearZero returns qτ of an inner-core wave using the coefficients at
// the centre. Other waves yield NaN.
func (k *Kernel) QTauNearZero(w phase.WaveType, p, r float64) float64 {
	q, _, _ := k.nearZero(w, p, r)
	return q
}

// QDeltaNearZero is QDelta for radii below the first inner-core mesh point.
func (k *Kernel) QDeltaNearZero(w phase.WaveType, p, r float64) float64 {
	_, q, _ := k.nearZero(w, p, r)
	return q
}

// QTNearZero is QT for radii below the first inner-core mesh point.
func (k *Kernel) QTNearZero(w phase.WaveType, p, r float64) float64 {
	_, _, q := k.nearZero(w, p, r)
	return q
}

func (k *Kernel) nearZero(w phase.WaveType, p, r float64) (float64, float64, float64) {
	if w != phase.WaveI && w != phase.WaveJV {
		return math.NaN(), math.NaN(), math.NaN()
	}
	return k.zero.Q(w, p, r)
}
