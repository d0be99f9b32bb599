// SPDX-License-Identifier: MIT

package structure

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Row is one line of a tabulated model. A radius repeated on two
// consecutive rows marks a discontinuity: the first row is the value below
// it, the second the value above.
type Row struct {
	Radius float64 `toml:"radius" yaml:"radius"`
	Rho    float64 `toml:"rho" yaml:"rho"`
	Vpv    float64 `toml:"vpv" yaml:"vpv"`
	Vph    float64 `toml:"vph" yaml:"vph"`
	Vsv    float64 `toml:"vsv" yaml:"vsv"`
	Vsh    float64 `toml:"vsh" yaml:"vsh"`
	Eta    float64 `toml:"eta" yaml:"eta"`
}

// TabulatedStructure interpolates linearly between rows within a layer.
type TabulatedStructure struct {
	name        string
	radius      float64
	icb, cmb    float64
	layers      [][]Row
	boundaries  []float64
	fingerprint string
}

// NewTabulatedStructure splits ascending rows into layers at repeated radii.
// The first row must sit at radius 0 and the last at the surface. A zero Eta
// is read as 1.
// Complexity: O(n) where n = len(rows).
func NewTabulatedStructure(name string, icb, cmb float64, rows []Row) (*TabulatedStructure, error) {
	// Stage 1: Validate rows
	if len(rows) < 2 {
		return nil, fmt.Errorf("NewTabulatedStructure %q: need at least two rows: %w", name, ErrInvalidModel)
	}
	for i, r := range rows {
		if !(r.Rho > 0) || r.Vpv <= 0 || r.Vph <= 0 || r.Vsv < 0 || r.Vsh < 0 {
			return nil, fmt.Errorf("NewTabulatedStructure %q: row %d: %w", name, i, ErrInvalidModel)
		}
		if i > 0 && r.Radius < rows[i-1].Radius {
			return nil, fmt.Errorf("NewTabulatedStructure %q: rows not ascending at %d: %w", name, i, ErrInvalidModel)
		}
	}

	// Stage 2: Split into layers
	var layers [][]Row
	cur := []Row{normalise(rows[0])}
	for _, r := range rows[1:] {
		r = normalise(r)
		if r.Radius == cur[len(cur)-1].Radius {
			layers = append(layers, cur)
			cur = []Row{r}
			continue
		}
		cur = append(cur, r)
	}
	layers = append(layers, cur)
	for i, l := range layers {
		if len(l) < 2 {
			return nil, fmt.Errorf("NewTabulatedStructure %q: layer %d has a single row: %w", name, i, ErrInvalidModel)
		}
	}
	radius := rows[len(rows)-1].Radius
	b, err := checkBoundaries(radius, icb, cmb, len(layers), func(i int) (float64, float64) {
		return layers[i][0].Radius, layers[i][len(layers[i])-1].Radius
	})
	if err != nil {
		return nil, fmt.Errorf("NewTabulatedStructure %q: %w", name, err)
	}

	// Stage 3: Fingerprint
	h := sha256.New()
	writeFloats(h, radius, icb, cmb)
	for _, r := range rows {
		writeFloats(h, r.Radius, r.Rho, r.Vpv, r.Vph, r.Vsv, r.Vsh, normalise(r).Eta)
	}
	return &TabulatedStructure{
		name:        name,
		radius:      radius,
		icb:         icb,
		cmb:         cmb,
		layers:      layers,
		boundaries:  b,
		fingerprint: "table:" + hex.EncodeToString(h.Sum(nil)),
	}, nil
}

func normalise(r Row) Row {
	if r.Eta == 0 {
		r.Eta = 1
	}
	return r
}

func (s *TabulatedStructure) Name() string                { return s.name }
func (s *TabulatedStructure) InnerCoreBoundary() float64  { return s.icb }
func (s *TabulatedStructure) CoreMantleBoundary() float64 { return s.cmb }
func (s *TabulatedStructure) EarthRadius() float64        { return s.radius }
func (s *TabulatedStructure) Fingerprint() string         { return s.fingerprint }
func (s *TabulatedStructure) Boundaries() []float64       { return clone(s.boundaries) }

// row interpolates the layer containing r.
func (s *TabulatedStructure) row(r float64) Row {
	rows := s.layers[layerIndex(s.boundaries, r)]
	j := 1
	for j < len(rows)-1 && rows[j].Radius <= r {
		j++
	}
	lo, hi := rows[j-1], rows[j]
	t := (r - lo.Radius) / (hi.Radius - lo.Radius)
	lerp := func(a, b float64) float64 { return a + (b-a)*t }
	return Row{
		Radius: r,
		Rho:    lerp(lo.Rho, hi.Rho),
		Vpv:    lerp(lo.Vpv, hi.Vpv),
		Vph:    lerp(lo.Vph, hi.Vph),
		Vsv:    lerp(lo.Vsv, hi.Vsv),
		Vsh:    lerp(lo.Vsh, hi.Vsh),
		Eta:    lerp(lo.Eta, hi.Eta),
	}
}

// Sample evaluates every parameter at r.
func (s *TabulatedStructure) Sample(r float64) Sample {
	v := s.row(r)
	a, c, f, l, n := elastic(v.Rho, v.Vpv, v.Vph, v.Vsv, v.Vsh, v.Eta)
	return Sample{Rho: v.Rho, A: a, C: c, F: f, L: l, N: n}
}

func (s *TabulatedStructure) Rho(r float64) float64 { return s.row(r).Rho }
func (s *TabulatedStructure) A(r float64) float64   { return s.Sample(r).A }
func (s *TabulatedStructure) C(r float64) float64   { return s.Sample(r).C }
func (s *TabulatedStructure) F(r float64) float64   { return s.Sample(r).F }
func (s *TabulatedStructure) L(r float64) float64   { return s.Sample(r).L }
func (s *TabulatedStructure) N(r float64) float64   { return s.Sample(r).N }
