// SPDX-License-Identifier: MIT

package mesh

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/raytime/structure"
)

// Key identifies a mesh. Equal keys produce identical grids.
type Key struct {
	Structure        string // structure fingerprint
	InnerCore        float64
	OuterCore        float64
	Mantle           float64
	Eps              float64
	TurningZoneWidth float64
}

// String implements fmt.Stringer.
func (k Key) String() string {
	return fmt.Sprintf("mesh(%.12s ic=%g oc=%g m=%g eps=%g tz=%g)",
		k.Structure, k.InnerCore, k.OuterCore, k.Mantle, k.Eps, k.TurningZoneWidth)
}

// Layer is the grid of one layer between two consecutive boundaries.
type Layer struct {
	Partition   structure.Partition
	Bottom, Top float64   // structure boundaries
	Radii       []float64 // ascending, Bottom+eps .. Top−eps
}

// Mesh is an immutable set of per-layer grids.
type Mesh struct {
	s      structure.Structure
	opts   options
	layers []Layer
}

// New builds the mesh of s.
//
// Complexity: O(R/interval) time and space.
func New(s structure.Structure, opts ...Option) (*Mesh, error) {
	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	b := s.Boundaries()
	layers := make([]Layer, 0, len(b)-1)
	for i := 0; i+1 < len(b); i++ {
		bottom, top := b[i], b[i+1]
		p := structure.PartitionOf(s, bottom)
		interval := o.interval(p)
		if 2*o.eps >= top-bottom {
			return nil, fmt.Errorf("New: eps %g does not fit layer [%g, %g]: %w", o.eps, bottom, top, ErrInvalidOption)
		}
		layers = append(layers, Layer{
			Partition: p,
			Bottom:    bottom,
			Top:       top,
			Radii:     grid(bottom+o.eps, top-o.eps, interval),
		})
	}
	return &Mesh{s: s, opts: o, layers: layers}, nil
}

// Simple returns the default mesh of s.
func Simple(s structure.Structure) *Mesh {
	m, err := New(s)
	if err != nil {
		panic(err)
	}
	return m
}

// grid returns ceil((hi−lo)/step)+1 evenly spaced points from lo to hi.
func grid(lo, hi, step float64) []float64 {
	n := int(math.Ceil((hi - lo) / step))
	if n < 1 {
		n = 1
	}
	r := make([]float64, n+1)
	for i := range r {
		r[i] = lo + (hi-lo)*float64(i)/float64(n)
	}
	r[n] = hi
	return r
}

func (o options) interval(p structure.Partition) float64 {
	switch p {
	case structure.InnerCore:
		return o.inner
	case structure.OuterCore:
		return o.outer
	}
	return o.mantle
}

// Structure returns the meshed structure.
func (m *Mesh) Structure() structure.Structure { return m.s }

// Eps returns the boundary offset.
func (m *Mesh) Eps() float64 { return m.opts.eps }

// TurningZoneWidth returns the width of the turning-point zone.
func (m *Mesh) TurningZoneWidth() float64 { return m.opts.turningZone }

// Interval returns the grid spacing of partition p.
func (m *Mesh) Interval(p structure.Partition) float64 { return m.opts.interval(p) }

// Key returns the identity of the mesh.
func (m *Mesh) Key() Key {
	return keyOf(m.s, m.opts)
}

func keyOf(s structure.Structure, o options) Key {
	return Key{
		Structure:        s.Fingerprint(),
		InnerCore:        o.inner,
		OuterCore:        o.outer,
		Mantle:           o.mantle,
		Eps:              o.eps,
		TurningZoneWidth: o.turningZone,
	}
}

// Layers returns every layer from the centre upwards. The radii slices are
// shared and must not be modified.
func (m *Mesh) Layers() []Layer {
	out := make([]Layer, len(m.layers))
	copy(out, m.layers)
	return out
}

// LayersOf returns the layers of partition p from the bottom upwards.
func (m *Mesh) LayersOf(p structure.Partition) []Layer {
	var out []Layer
	for _, l := range m.layers {
		if l.Partition == p {
			out = append(out, l)
		}
	}
	return out
}

// LayerAt returns the index of the layer containing r. Boundary radii belong
// to the layer above, the surface to the top layer.
func (m *Mesh) LayerAt(r float64) int {
	i := sort.Search(len(m.layers), func(i int) bool { return m.layers[i].Top > r })
	if i == len(m.layers) {
		return len(m.layers) - 1
	}
	return i
}

// Layer returns the i-th layer.
func (m *Mesh) Layer(i int) Layer { return m.layers[i] }

// Len returns the number of layers.
func (m *Mesh) Len() int { return len(m.layers) }

// Radii returns every grid radius of partition p in ascending order.
func (m *Mesh) Radii(p structure.Partition) []float64 {
	var out []float64
	for _, l := range m.layers {
		if l.Partition == p {
			out = append(out, l.Radii...)
		}
	}
	return out
}
