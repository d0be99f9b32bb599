// SPDX-License-Identifier: MIT

package catalog

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/raytime/phase"
	"github.com/katalvlaran/raytime/raypath"
)

// searchTimeDegree is the degree of the T(Δ) fit through the four raypaths
// around a bracketed arrival.
const searchTimeDegree = 3

// threePointTimeDegree is the degree of the T(Δ) fit through a seed and its
// two catalog neighbours.
const threePointTimeDegree = 1

// bracket is one arrival found between two catalog neighbours: the lower
// and higher raypaths, the midpoint raypath and the interpolated one.
type bracket struct {
	lower, centre, higher, in *raypath.Raypath
}

func (c *Catalog) validate(op string, eventR, target float64, relative bool) error {
	if !(eventR > 0) || eventR > c.Structure().EarthRadius() {
		return fmt.Errorf("%s: event radius %g: %w", op, eventR, ErrInvalidInput)
	}
	if math.IsNaN(target) || target < 0 || (relative && target > math.Pi) {
		return fmt.Errorf("%s: epicentral distance %g: %w", op, target, ErrInvalidInput)
	}
	return nil
}

// SearchPath returns one raypath per arrival of ph at epicentral distance
// target (rad) for an event at radius eventR. With relative set, distances
// are folded into [0, π] first. An empty result means no arrival.
//
// Diffracted phases return the grazing raypath when it carries the phase.
func (c *Catalog) SearchPath(ph phase.Phase, eventR, target float64, relative bool) ([]*raypath.Raypath, error) {
	if err := c.validate("SearchPath", eventR, target, relative); err != nil {
		return nil, err
	}
	searches.WithLabelValues("path").Inc()
	if ph.IsDiffracted() {
		if rp := c.diffraction(ph); rp != nil && rp.Exists(ph, eventR) {
			return []*raypath.Raypath{rp}, nil
		}
		return nil, nil
	}
	var out []*raypath.Raypath
	for _, b := range c.brackets(ph, eventR, target, relative) {
		out = append(out, b.in)
	}
	return out, nil
}

// SearchTime returns the travel time of every arrival of ph at target,
// fitting T(Δ) through the four raypaths around each arrival.
func (c *Catalog) SearchTime(ph phase.Phase, eventR, target float64, relative bool) ([]float64, error) {
	if err := c.validate("SearchTime", eventR, target, relative); err != nil {
		return nil, err
	}
	searches.WithLabelValues("time").Inc()
	if ph.IsDiffracted() {
		rps, err := c.SearchPath(ph, eventR, target, relative)
		if err != nil || len(rps) == 0 {
			return nil, err
		}
		return []float64{rps[0].T(ph, eventR)}, nil
	}
	var out []float64
	for _, b := range c.brackets(ph, eventR, target, relative) {
		t := raypath.InterpolateTravelTime(ph, eventR, target, relative, searchTimeDegree,
			b.lower, b.centre, b.higher, b.in)
		if !math.IsNaN(t) {
			out = append(out, t)
		}
	}
	return out, nil
}

// brackets scans adjacent catalog raypaths whose distances straddle target.
// Pairs lacking the phase are skipped, as are pairs whose midpoint or
// interpolated raypath lacks it.
func (c *Catalog) brackets(ph phase.Phase, eventR, target float64, relative bool) []bracket {
	delta := func(rp *raypath.Raypath) float64 {
		d := rp.Delta(ph, eventR)
		if relative {
			d = raypath.ToRelativeAngle(d)
		}
		return d
	}
	var out []bracket
	for i := 0; i+1 < len(c.raypaths); i++ {
		lo, hi := c.raypaths[i], c.raypaths[i+1]
		dl, dh := delta(lo), delta(hi)
		if math.IsNaN(dl) || math.IsNaN(dh) || (dl-target)*(dh-target) > 0 {
			continue
		}
		centre := c.fresh((lo.RayParameter() + hi.RayParameter()) / 2)
		if centre == nil || math.IsNaN(centre.Delta(ph, eventR)) {
			continue
		}
		p := raypath.InterpolateRayParameter(ph, eventR, target, relative, c.cfg.degree, lo, centre, hi)
		in := c.fresh(p)
		if in == nil || math.IsNaN(in.Delta(ph, eventR)) {
			continue
		}
		out = append(out, bracket{lower: lo, centre: centre, higher: hi, in: in})
	}
	return out
}

// fresh computes a raypath outside the catalog; nil for an invalid p.
func (c *Catalog) fresh(p float64) *raypath.Raypath {
	rp, err := raypath.New(p, c.kernel, c.mesh)
	if err != nil {
		return nil
	}
	rp.Compute()
	raypathsComputed.Inc()
	return rp
}

// neighbours returns the catalog raypaths just below and above seed's p.
func (c *Catalog) neighbours(seed *raypath.Raypath) (lower, higher *raypath.Raypath) {
	if seed == nil {
		return nil, nil
	}
	p := seed.RayParameter()
	i := sort.Search(len(c.raypaths), func(i int) bool { return c.raypaths[i].RayParameter() >= p })
	if i > 0 {
		lower = c.raypaths[i-1]
	}
	for ; i < len(c.raypaths); i++ {
		if c.raypaths[i].RayParameter() > p {
			higher = c.raypaths[i]
			break
		}
	}
	return lower, higher
}

// TravelTimeByThreePointInterpolate fits a straight T(Δ) through seed and its catalog
// neighbours and evaluates it at target. It returns NaN when a neighbour is
// missing or lacks the phase.
func (c *Catalog) TravelTimeByThreePointInterpolate(ph phase.Phase, eventR, target float64, relative bool, seed *raypath.Raypath) (float64, error) {
	if err := c.validate("TravelTimeByThreePointInterpolate", eventR, target, relative); err != nil {
		return math.NaN(), err
	}
	lower, higher := c.neighbours(seed)
	if lower == nil || higher == nil {
		return math.NaN(), nil
	}
	return raypath.InterpolateTravelTime(ph, eventR, target, relative, threePointTimeDegree, lower, seed, higher), nil
}

// RayParameterByThreePointInterpolate fits p(Δ) like
// TravelTimeByThreePointInterpolate.
func (c *Catalog) RayParameterByThreePointInterpolate(ph phase.Phase, eventR, target float64, relative bool, seed *raypath.Raypath) (float64, error) {
	if err := c.validate("RayParameterByThreePointInterpolate", eventR, target, relative); err != nil {
		return math.NaN(), err
	}
	lower, higher := c.neighbours(seed)
	if lower == nil || higher == nil {
		return math.NaN(), nil
	}
	return raypath.InterpolateRayParameter(ph, eventR, target, relative, c.cfg.degree, lower, seed, higher), nil
}
