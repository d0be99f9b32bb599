// SPDX-License-Identifier: MIT

package structure

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
)

// PolynomialLayer holds the coefficients of one layer. Every profile is a
// polynomial in the normalised radius x = r/EarthRadius, lowest order first.
// An empty Eta means η = 1.
type PolynomialLayer struct {
	Bottom, Top float64
	Rho         []float64
	Vpv, Vph    []float64
	Vsv, Vsh    []float64
	Eta         []float64
}

// PolynomialStructure is a layered model with polynomial profiles, the
// parameterisation used by PREM.
type PolynomialStructure struct {
	name        string
	radius      float64
	icb, cmb    float64
	layers      []PolynomialLayer
	boundaries  []float64
	fingerprint string
}

// NewPolynomialStructure validates layers and returns the model.
// Layers must be ascending, contiguous, start at 0 and end at radius;
// icb and cmb must coincide with layer boundaries.
// Complexity: O(L) where L is the number of layers.
func NewPolynomialStructure(name string, radius, icb, cmb float64, layers []PolynomialLayer) (*PolynomialStructure, error) {
	// Stage 1: Validate geometry
	if len(layers) == 0 {
		return nil, fmt.Errorf("NewPolynomialStructure: no layers: %w", ErrInvalidModel)
	}
	b, err := checkBoundaries(radius, icb, cmb, len(layers), func(i int) (float64, float64) {
		return layers[i].Bottom, layers[i].Top
	})
	if err != nil {
		return nil, fmt.Errorf("NewPolynomialStructure %q: %w", name, err)
	}
	for i, l := range layers {
		if len(l.Rho) == 0 || len(l.Vpv) == 0 || len(l.Vph) == 0 || len(l.Vsv) == 0 || len(l.Vsh) == 0 {
			return nil, fmt.Errorf("NewPolynomialStructure %q: layer %d lacks a profile: %w", name, i, ErrInvalidModel)
		}
	}

	// Stage 2: Copy and fingerprint
	ls := make([]PolynomialLayer, len(layers))
	h := sha256.New()
	writeFloats(h, radius, icb, cmb)
	for i, l := range layers {
		ls[i] = PolynomialLayer{
			Bottom: l.Bottom, Top: l.Top,
			Rho: clone(l.Rho), Vpv: clone(l.Vpv), Vph: clone(l.Vph),
			Vsv: clone(l.Vsv), Vsh: clone(l.Vsh), Eta: clone(l.Eta),
		}
		writeFloats(h, l.Bottom, l.Top)
		for _, c := range [][]float64{l.Rho, l.Vpv, l.Vph, l.Vsv, l.Vsh, l.Eta} {
			writeFloats(h, float64(len(c)))
			writeFloats(h, c...)
		}
	}

	return &PolynomialStructure{
		name:        name,
		radius:      radius,
		icb:         icb,
		cmb:         cmb,
		layers:      ls,
		boundaries:  b,
		fingerprint: "poly:" + hex.EncodeToString(h.Sum(nil)),
	}, nil
}

// Name returns the model name given at construction.
func (s *PolynomialStructure) Name() string { return s.name }

// Layers returns a copy of the layer definitions.
func (s *PolynomialStructure) Layers() []PolynomialLayer {
	out := make([]PolynomialLayer, len(s.layers))
	copy(out, s.layers)
	return out
}

func (s *PolynomialStructure) InnerCoreBoundary() float64  { return s.icb }
func (s *PolynomialStructure) CoreMantleBoundary() float64 { return s.cmb }
func (s *PolynomialStructure) EarthRadius() float64        { return s.radius }
func (s *PolynomialStructure) Fingerprint() string         { return s.fingerprint }

// Boundaries implements Structure.
func (s *PolynomialStructure) Boundaries() []float64 { return clone(s.boundaries) }

func (s *PolynomialStructure) at(r float64) (*PolynomialLayer, float64) {
	return &s.layers[layerIndex(s.boundaries, r)], r / s.radius
}

func (s *PolynomialStructure) Rho(r float64) float64 {
	l, x := s.at(r)
	return horner(l.Rho, x)
}

func (s *PolynomialStructure) moduli(r float64) (a, c, f, ll, n float64) {
	l, x := s.at(r)
	eta := 1.0
	if len(l.Eta) > 0 {
		eta = horner(l.Eta, x)
	}
	return elastic(horner(l.Rho, x), horner(l.Vpv, x), horner(l.Vph, x),
		horner(l.Vsv, x), horner(l.Vsh, x), eta)
}

func (s *PolynomialStructure) A(r float64) float64 { a, _, _, _, _ := s.moduli(r); return a }
func (s *PolynomialStructure) C(r float64) float64 { _, c, _, _, _ := s.moduli(r); return c }
func (s *PolynomialStructure) F(r float64) float64 { _, _, f, _, _ := s.moduli(r); return f }
func (s *PolynomialStructure) L(r float64) float64 { _, _, _, l, _ := s.moduli(r); return l }
func (s *PolynomialStructure) N(r float64) float64 { _, _, _, _, n := s.moduli(r); return n }

// String implements fmt.Stringer.
func (s *PolynomialStructure) String() string {
	return fmt.Sprintf("%s (%d layers, R=%g km)", s.name, len(s.layers), s.radius)
}

// horner evaluates c[0] + c[1]x + c[2]x² + ...
func horner(c []float64, x float64) float64 {
	v := 0.0
	for i := len(c) - 1; i >= 0; i-- {
		v = v*x + c[i]
	}
	return v
}

// checkBoundaries validates n contiguous layers and returns the ascending
// boundary list.
func checkBoundaries(radius, icb, cmb float64, n int, layer func(int) (float64, float64)) ([]float64, error) {
	if !(radius > 0) || !(icb > 0) || !(cmb > icb) || !(radius > cmb) {
		return nil, fmt.Errorf("radius %g, icb %g, cmb %g: %w", radius, icb, cmb, ErrInvalidModel)
	}
	b := make([]float64, 0, n+1)
	var hasICB, hasCMB bool
	for i := 0; i < n; i++ {
		bottom, top := layer(i)
		if !(top > bottom) || math.IsNaN(bottom) {
			return nil, fmt.Errorf("layer %d [%g, %g]: %w", i, bottom, top, ErrInvalidModel)
		}
		if i == 0 && bottom != 0 {
			return nil, fmt.Errorf("first layer starts at %g, not 0: %w", bottom, ErrInvalidModel)
		}
		if i > 0 && bottom != b[len(b)-1] {
			return nil, fmt.Errorf("gap between layers %d and %d: %w", i-1, i, ErrInvalidModel)
		}
		if i == 0 {
			b = append(b, bottom)
		}
		b = append(b, top)
		hasICB = hasICB || top == icb
		hasCMB = hasCMB || top == cmb
	}
	if b[len(b)-1] != radius {
		return nil, fmt.Errorf("last layer ends at %g, not %g: %w", b[len(b)-1], radius, ErrInvalidModel)
	}
	if !hasICB || !hasCMB {
		return nil, fmt.Errorf("icb or cmb is not a layer boundary: %w", ErrInvalidModel)
	}
	return b, nil
}

type hashWriter interface{ Write([]byte) (int, error) }

func writeFloats(h hashWriter, v ...float64) {
	var buf [8]byte
	for _, x := range v {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(x))
		_, _ = h.Write(buf[:])
	}
}

func clone(v []float64) []float64 {
	if v == nil {
		return nil
	}
	out := make([]float64, len(v))
	copy(out, v)
	return out
}

// Sample evaluates every parameter at r in one layer lookup.
func (s *PolynomialStructure) Sample(r float64) Sample {
	l, x := s.at(r)
	rho := horner(l.Rho, x)
	eta := 1.0
	if len(l.Eta) > 0 {
		eta = horner(l.Eta, x)
	}
	a, c, f, ll, n := elastic(rho, horner(l.Vpv, x), horner(l.Vph, x), horner(l.Vsv, x), horner(l.Vsh, x), eta)
	return Sample{Rho: rho, A: a, C: c, F: f, L: ll, N: n}
}
