// SPDX-License-Identifier: MIT

package raypath

import (
	"math"
	"sort"

	"github.com/katalvlaran/raytime/phase"
	"github.com/katalvlaran/raytime/woodhouse"
)

// integrand returns qΔ and qT of the wave at r. Mesh radii go through the
// kernel's memo table, anything else is computed fresh.
func (rp *Raypath) integrand(ws *waveState, r float64, memo bool) (float64, float64) {
	var c woodhouse.Coefficients
	switch {
	case r < ws.nearZero && (ws.wave == phase.WaveI || ws.wave == phase.WaveJV):
		c = rp.kernel.Zero()
	case memo:
		c = rp.kernel.Coefficients(r)
	default:
		c = rp.kernel.Fresh(r)
	}
	_, qd, qt := c.Q(ws.wave, rp.p, r)
	return qd, qt
}

// zone integrates from the lowest point to x ≤ zoneTop with r = lowest + u².
// The integrand becomes 2u·f(lowest + u²), which is finite at u = 0. The zone
// may cross layer boundaries; panels break at each of them.
func (rp *Raypath) zone(ws *waveState, x float64) Integral {
	if x <= ws.lowest {
		return Integral{}
	}
	var sum Integral
	a := 0.0
	for _, l := range ws.layers[ws.home:] {
		if l.Top >= x {
			break
		}
		b := math.Sqrt(l.Top - ws.lowest)
		sum = sum.add(rp.gaussRange(ws, a, b))
		a = b
	}
	return sum.add(rp.gaussRange(ws, a, math.Sqrt(x-ws.lowest)))
}

// gaussRange integrates [a, b] in u. Starting from u = 0 the panels halve
// towards the lowest point; elsewhere no panel spans more than a factor of
// two in u.
func (rp *Raypath) gaussRange(ws *waveState, a, b float64) Integral {
	var sum Integral
	if b <= a {
		return sum
	}
	if a == 0 {
		n := panelCount(ws.lowest, b)
		hi := b
		for j := 0; j < n; j++ {
			lo := 0.0
			if j < n-1 {
				lo = hi / 2
			}
			sum = sum.add(rp.gaussPanel(ws, lo, hi))
			hi = lo
		}
		return sum
	}
	for lo := a; lo < b; {
		hi := math.Min(2*lo, b)
		sum = sum.add(rp.gaussPanel(ws, lo, hi))
		lo = hi
	}
	return sum
}

func (rp *Raypath) gaussPanel(ws *waveState, lo, hi float64) Integral {
	half, mid := (hi-lo)/2, (hi+lo)/2
	var sum Integral
	for i, x := range glNodes {
		u := mid + half*x
		qd, qt := rp.integrand(ws, ws.lowest+u*u, false)
		sum.Delta += glWeights[i] * 2 * u * qd
		sum.T += glWeights[i] * 2 * u * qt
	}
	sum.Delta *= half
	sum.T *= half
	return sum
}

// simpson integrates [lo, hi] over the mesh grid of the partition, one
// Simpson panel per grid interval. The eps slivers at layer boundaries are
// skipped.
func (rp *Raypath) simpson(ws *waveState, lo, hi float64) Integral {
	var sum Integral
	for _, l := range ws.layers {
		g := l.Radii
		x0, x1 := math.Max(lo, g[0]), math.Min(hi, g[len(g)-1])
		if x1 <= x0 {
			continue
		}
		i := sort.SearchFloat64s(g, x0)
		j := sort.SearchFloat64s(g, x1)
		prev, prevGrid := x0, i < len(g) && g[i] == x0
		if prevGrid {
			i++
		}
		for k := i; k < j; k++ {
			sum = sum.add(rp.simpsonPanel(ws, prev, g[k], prevGrid, true))
			prev, prevGrid = g[k], true
		}
		if x1 > prev {
			sum = sum.add(rp.simpsonPanel(ws, prev, x1, prevGrid, j < len(g) && g[j] == x1))
		}
	}
	return sum
}

func (rp *Raypath) simpsonPanel(ws *waveState, a, b float64, gridA, gridB bool) Integral {
	da, ta := rp.integrand(ws, a, gridA)
	dm, tm := rp.integrand(ws, (a+b)/2, gridA && gridB)
	db, tb := rp.integrand(ws, b, gridB)
	h := (b - a) / 6
	return Integral{h * (da + 4*dm + db), h * (ta + 4*tm + tb)}
}

// cumulative returns the integral from the lowest point of the wave to r,
// memoized per radius.
func (rp *Raypath) cumulative(ws *waveState, r float64) Integral {
	r = math.Min(math.Max(r, ws.lowest), ws.top)
	key := partialKey{waveIndex(ws.wave), r}
	rp.mu.Lock()
	v, ok := rp.partial[key]
	rp.mu.Unlock()
	if ok {
		return v
	}

	k := ws.layerOf(r)
	switch {
	case r <= ws.zoneTop:
		v = rp.zone(ws, r)
	case k == ws.zoneK:
		v = ws.zone.add(rp.simpson(ws, ws.zoneTop, r))
	default:
		v = ws.cum[k-1].add(rp.simpson(ws, ws.layers[k].Radii[0], r))
	}

	rp.mu.Lock()
	rp.partial[key] = v
	rp.mu.Unlock()
	return v
}

// span integrates [lo, hi] directly, splitting at the zone top. Route
// sampling uses it for short consecutive steps.
func (rp *Raypath) span(ws *waveState, lo, hi float64) Integral {
	var v Integral
	if lo < ws.zoneTop {
		v = rp.zone(ws, math.Min(hi, ws.zoneTop)).sub(rp.zone(ws, lo))
		lo = ws.zoneTop
	}
	if hi > lo {
		v = v.add(rp.simpson(ws, lo, hi))
	}
	return v
}
