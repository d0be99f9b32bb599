// SPDX-License-Identifier: MIT

package raypath

import (
	"math"

	"github.com/katalvlaran/raytime/phase"
	"github.com/katalvlaran/raytime/structure"
)

// diffractionTolerance is the relative distance of p from the grazing ray
// parameter within which a diffraction is admissible.
const diffractionTolerance = 1e-6

// radiusTolerance absorbs rounding when comparing leg ends with partition
// bounds and turning radii (km).
const radiusTolerance = 1e-9

// Delta returns the epicentral distance (rad) of ph for a source at eventR,
// NaN when the phase does not exist for this ray parameter.
func (rp *Raypath) Delta(ph phase.Phase, eventR float64) float64 {
	return rp.evaluate(ph, eventR).Delta
}

// T returns the travel time (s) of ph for a source at eventR, or NaN.
func (rp *Raypath) T(ph phase.Phase, eventR float64) float64 {
	return rp.evaluate(ph, eventR).T
}

// Tau returns the delay time τ = T − pΔ (s), or NaN.
func (rp *Raypath) Tau(ph phase.Phase, eventR float64) float64 {
	v := rp.evaluate(ph, eventR)
	return v.T - rp.p*v.Delta
}

// Exists reports whether ph has an arrival for this ray parameter.
func (rp *Raypath) Exists(ph phase.Phase, eventR float64) bool {
	return !rp.evaluate(ph, eventR).isNaN()
}

func (rp *Raypath) evaluate(ph phase.Phase, eventR float64) Integral {
	rp.Compute()
	key := resultKey{ph.Key(), eventR}
	rp.mu.Lock()
	v, ok := rp.results[key]
	rp.mu.Unlock()
	if ok {
		return v
	}

	v = rp.sum(ph, eventR)

	rp.mu.Lock()
	rp.results[key] = v
	rp.mu.Unlock()
	return v
}

func (rp *Raypath) sum(ph phase.Phase, eventR float64) Integral {
	if ph.IsZero() || !(eventR > 0) || eventR > rp.Structure().EarthRadius() {
		return nan
	}
	d, diffracted := ph.Diffraction()
	if diffracted && !rp.grazes(d) {
		return nan
	}
	var total Integral
	for _, part := range ph.Parts() {
		switch v := part.(type) {
		case phase.GeneralPart:
			leg := rp.leg(v, eventR, diffracted)
			if leg.isNaN() {
				return nan
			}
			total = total.add(leg)
		case phase.LocatedDiffracted:
			total.Delta += v.Angle
			total.T += rp.p * v.Angle
		}
	}
	return total
}

// grazes reports whether p is the grazing ray parameter of d just above its
// boundary.
func (rp *Raypath) grazes(d phase.LocatedDiffracted) bool {
	_, mod := waveGeometry(d.Wave)
	g := structure.HorizontalSlowness(rp.Structure(), mod, rp.boundary(d.Boundary)+rp.mesh.Eps())
	return math.Abs(rp.p-g) <= diffractionTolerance*g
}

func (rp *Raypath) boundary(pp phase.PassPoint) float64 {
	if pp == phase.ICB {
		return rp.Structure().InnerCoreBoundary()
	}
	return rp.Structure().CoreMantleBoundary()
}

// radius maps a pass point of a leg to a radius.
func (rp *Raypath) radius(ws *waveState, pp phase.PassPoint, depth, eventR float64, diffracted bool) float64 {
	s := rp.Structure()
	switch pp {
	case phase.SeismicSource:
		return eventR
	case phase.EarthSurface:
		return s.EarthRadius()
	case phase.CMB:
		return s.CoreMantleBoundary()
	case phase.ICB:
		return s.InnerCoreBoundary()
	case phase.BouncePoint:
		if diffracted {
			return math.Max(s.CoreMantleBoundary()+rp.mesh.Eps(), ws.lowest)
		}
		return ws.turning
	}
	return s.EarthRadius() - depth
}

// leg integrates one GeneralPart. Legs that the ray cannot travel are NaN.
func (rp *Raypath) leg(g phase.GeneralPart, eventR float64, diffracted bool) Integral {
	ws := &rp.waves[waveIndex(g.Wave)]
	if ws.state == structure.Evanescent {
		return nan
	}
	bounce := g.Inner == phase.BouncePoint || g.Outer == phase.BouncePoint
	if bounce && !diffracted && ws.state != structure.Turns {
		return nan
	}
	rIn := rp.radius(ws, g.Inner, g.InnerDepth, eventR, diffracted)
	rOut := rp.radius(ws, g.Outer, g.OuterDepth, eventR, diffracted)
	switch {
	case math.IsNaN(rIn) || math.IsNaN(rOut):
		return nan
	case rOut < rIn:
		return nan
	case rIn < ws.bottom-radiusTolerance || rOut > ws.top+radiusTolerance:
		return nan
	case ws.state == structure.Turns && rIn < ws.turning-radiusTolerance:
		return nan
	}

	v := rp.cumulative(ws, rOut).sub(rp.cumulative(ws, rIn))
	if bounce && rp.p == 0 && (g.Wave == phase.WaveI || g.Wave == phase.WaveJV) {
		v.Delta += math.Pi / 2
	}
	return v
}
