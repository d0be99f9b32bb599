// SPDX-License-Identifier: MIT

package raypath

import (
	"math"
	"sort"

	"github.com/katalvlaran/raytime/phase"
)

// Point is a position in the great-circle plane through source and
// receiver. The source lies on the +Y axis and the ray moves clockwise.
type Point struct {
	X, Y float64 // km
}

// routeZoneSamples is the number of extra samples inside a turning zone.
const routeZoneSamples = 8

// diffractionStep is the arc step (rad) along a diffraction.
const diffractionStep = math.Pi / 180

// Route returns the path of ph sampled at the mesh radii, or nil when the
// phase does not exist.
func (rp *Raypath) Route(ph phase.Phase, eventR float64) []Point {
	if !rp.Exists(ph, eventR) {
		return nil
	}
	_, diffracted := ph.Diffraction()
	var (
		pts   []Point
		theta float64
	)
	add := func(r float64) {
		pts = append(pts, Point{X: r * math.Sin(theta), Y: r * math.Cos(theta)})
	}
	add(eventR)

	for _, part := range ph.Parts() {
		switch v := part.(type) {
		case phase.GeneralPart:
			ws := &rp.waves[waveIndex(v.Wave)]
			rIn := rp.radius(ws, v.Inner, v.InnerDepth, eventR, diffracted)
			rOut := rp.radius(ws, v.Outer, v.OuterDepth, eventR, diffracted)
			radii := rp.samples(ws, rIn, rOut)
			centre := rp.p == 0 && ws.turning == 0 && (v.Inner == phase.BouncePoint || v.Outer == phase.BouncePoint)
			if v.Downward {
				for i := len(radii) - 1; i > 0; i-- {
					theta += rp.span(ws, radii[i-1], radii[i]).Delta
					add(radii[i-1])
				}
				if centre {
					theta += math.Pi / 2
				}
				continue
			}
			if centre {
				theta += math.Pi / 2
			}
			for i := 1; i < len(radii); i++ {
				theta += rp.span(ws, radii[i-1], radii[i]).Delta
				add(radii[i])
			}
		case phase.LocatedDiffracted:
			r := rp.boundary(v.Boundary) + rp.mesh.Eps()
			n := int(math.Ceil(v.Angle / diffractionStep))
			for i := 0; i < n; i++ {
				theta += v.Angle / float64(n)
				add(r)
			}
		}
	}
	return pts
}

// samples returns the ascending radii at which a leg from rIn to rOut is
// sampled: both ends, the grid radii between them and a few points inside
// the turning zone.
func (rp *Raypath) samples(ws *waveState, rIn, rOut float64) []float64 {
	out := []float64{rIn, rOut}
	for j := 1; j < routeZoneSamples; j++ {
		f := float64(j) / routeZoneSamples
		out = append(out, ws.lowest+(ws.zoneTop-ws.lowest)*f*f)
	}
	for _, l := range ws.layers {
		out = append(out, l.Radii...)
	}
	sort.Float64s(out)

	kept := out[:0]
	for _, r := range out {
		if r < rIn || r > rOut || (len(kept) > 0 && r == kept[len(kept)-1]) {
			continue
		}
		kept = append(kept, r)
	}
	return kept
}
