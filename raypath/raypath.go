// SPDX-License-Identifier: MIT

package raypath

import (
	"fmt"
	"math"
	"math/bits"
	"sync"

	"github.com/katalvlaran/raytime/mesh"
	"github.com/katalvlaran/raytime/phase"
	"github.com/katalvlaran/raytime/structure"
	"github.com/katalvlaran/raytime/woodhouse"
)

// Integral is an accumulated epicentral distance (rad) and travel time (s).
type Integral struct {
	Delta, T float64
}

func (a Integral) add(b Integral) Integral { return Integral{a.Delta + b.Delta, a.T + b.T} }
func (a Integral) sub(b Integral) Integral { return Integral{a.Delta - b.Delta, a.T - b.T} }

var nan = Integral{math.NaN(), math.NaN()}

func (a Integral) isNaN() bool { return math.IsNaN(a.Delta) || math.IsNaN(a.T) }

// waveState is what Compute learns about one wave type.
type waveState struct {
	wave      phase.WaveType
	partition structure.Partition
	bottom    float64 // partition bounds
	top       float64
	layers    []mesh.Layer

	turning float64 // turning radius, NaN unless state is Turns
	state   structure.TurningState
	lowest  float64 // turning radius or bottom+eps
	home    int     // layer containing lowest
	zoneTop float64 // may lie several layers above home
	zoneK   int     // layer containing zoneTop
	zone    Integral   // ∫ from lowest to zoneTop
	cum     []Integral // ∫ from lowest to the top grid point of each layer

	nearZero float64 // I and JV use the centre coefficients below it
}

type partialKey struct {
	wave int
	r    float64
}

type resultKey struct {
	phase  phase.Key
	eventR float64
}

// Raypath integrates every phase for one ray parameter. Methods are safe for
// concurrent use.
type Raypath struct {
	p      float64
	kernel *woodhouse.Kernel
	mesh   *mesh.Mesh

	once  sync.Once
	waves [6]waveState

	mu      sync.Mutex
	partial map[partialKey]Integral
	results map[resultKey]Integral
}

// New returns an uncomputed raypath.
func New(p float64, k *woodhouse.Kernel, m *mesh.Mesh) (*Raypath, error) {
	if p < 0 || math.IsNaN(p) || math.IsInf(p, 0) {
		return nil, fmt.Errorf("New(%g): %w", p, ErrInvalidRayParameter)
	}
	if !structure.Equal(k.Structure(), m.Structure()) {
		return nil, fmt.Errorf("New(%g): %w", p, ErrStructureMismatch)
	}
	return &Raypath{
		p:       p,
		kernel:  k,
		mesh:    m,
		partial: make(map[partialKey]Integral),
		results: make(map[resultKey]Integral),
	}, nil
}

// RayParameter returns p in s/rad.
func (rp *Raypath) RayParameter() float64 { return rp.p }

// Structure returns the structure the raypath is integrated in.
func (rp *Raypath) Structure() structure.Structure { return rp.mesh.Structure() }

// Mesh returns the integration mesh.
func (rp *Raypath) Mesh() *mesh.Mesh { return rp.mesh }

// Less orders raypaths by ray parameter.
func (rp *Raypath) Less(o *Raypath) bool { return rp.p < o.p }

// String implements fmt.Stringer.
func (rp *Raypath) String() string { return fmt.Sprintf("Raypath(p=%g)", rp.p) }

// waveIndex maps a single wave flag to 0..5.
func waveIndex(w phase.WaveType) int { return bits.TrailingZeros8(uint8(w)) }

func waveGeometry(w phase.WaveType) (structure.Partition, structure.Modulus) {
	switch w {
	case phase.WaveSV:
		return structure.Mantle, structure.ModulusL
	case phase.WaveSH:
		return structure.Mantle, structure.ModulusN
	case phase.WaveK:
		return structure.OuterCore, structure.ModulusA
	case phase.WaveI:
		return structure.InnerCore, structure.ModulusA
	case phase.WaveJV:
		return structure.InnerCore, structure.ModulusL
	}
	return structure.Mantle, structure.ModulusA
}

// Compute finds turning radii and integrates every wave over its partition.
// It is idempotent; queries call it implicitly.
func (rp *Raypath) Compute() {
	rp.once.Do(func() {
		for _, w := range phase.WaveTypes {
			ws := rp.prepare(w)
			if ws.state != structure.Evanescent {
				rp.integrateLayers(ws)
			}
		}
	})
}

// geometry fills the partition data of wave w.
func (rp *Raypath) geometry(w phase.WaveType) *waveState {
	ws := &rp.waves[waveIndex(w)]
	part, _ := waveGeometry(w)
	ws.wave, ws.partition = w, part
	ws.bottom, ws.top = structure.Bounds(rp.Structure(), part)
	ws.layers = rp.mesh.LayersOf(part)
	ws.nearZero = math.Inf(-1)
	if part == structure.InnerCore && len(ws.layers[0].Radii) > 1 {
		ws.nearZero = ws.layers[0].Radii[1]
	}
	return ws
}

// prepare finds where wave w turns and sizes its turning zone.
func (rp *Raypath) prepare(w phase.WaveType) *waveState {
	ws := rp.geometry(w)
	_, mod := waveGeometry(w)
	ws.turning, ws.state = structure.TurningRadius(rp.Structure(), mod, rp.p, ws.bottom, ws.top)
	switch ws.state {
	case structure.Evanescent:
		return ws
	case structure.Turns:
		ws.lowest = ws.turning
	default:
		ws.lowest = ws.bottom + rp.mesh.Eps()
	}
	ws.home = ws.layerOf(ws.lowest)
	ws.zoneTop = math.Max(ws.lowest, math.Min(ws.lowest+rp.mesh.TurningZoneWidth(), ws.top))
	ws.zoneK = ws.layerOf(ws.zoneTop)
	return ws
}

func (rp *Raypath) integrateLayers(ws *waveState) {
	ws.zone = rp.zone(ws, ws.zoneTop)
	ws.cum = make([]Integral, len(ws.layers))
	var running Integral
	for k, l := range ws.layers {
		g := l.Radii
		switch {
		case k < ws.home:
			continue
		case k < ws.zoneK:
			running = rp.zone(ws, g[len(g)-1])
		case k == ws.zoneK:
			running = ws.zone.add(rp.simpson(ws, ws.zoneTop, g[len(g)-1]))
		default:
			running = running.add(rp.simpson(ws, g[0], g[len(g)-1]))
		}
		ws.cum[k] = running
	}
}

// layerOf returns the index of the partition layer holding r; the partition
// top maps to the last layer.
func (ws *waveState) layerOf(r float64) int {
	for k, l := range ws.layers {
		if r < l.Top {
			return k
		}
	}
	return len(ws.layers) - 1
}

// TurningRadius returns where wave w turns and whether it does.
func (rp *Raypath) TurningRadius(w phase.WaveType) (float64, structure.TurningState) {
	rp.Compute()
	ws := &rp.waves[waveIndex(w)]
	return ws.turning, ws.state
}
