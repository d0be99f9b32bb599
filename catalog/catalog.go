// SPDX-License-Identifier: MIT

package catalog

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/raytime/mesh"
	"github.com/katalvlaran/raytime/phase"
	"github.com/katalvlaran/raytime/raypath"
	"github.com/katalvlaran/raytime/structure"
	"github.com/katalvlaran/raytime/woodhouse"
)

// Key identifies a catalog: structure, mesh and resolution.
type Key struct {
	Mesh   mesh.Key
	DDelta float64
}

// String implements fmt.Stringer.
func (k Key) String() string { return fmt.Sprintf("%s/ddelta=%g", k.Mesh, k.DDelta) }

// KeyOf returns the key of a catalog built on m with resolution dDelta.
func KeyOf(m *mesh.Mesh, dDelta float64) Key { return Key{Mesh: m.Key(), DDelta: dDelta} }

// Catalog is an immutable, ordered set of computed raypaths. It is safe for
// concurrent use once built.
type Catalog struct {
	key    Key
	kernel *woodhouse.Kernel
	mesh   *mesh.Mesh
	cfg    settings

	raypaths []*raypath.Raypath // ascending, unique p
	pdiff    *raypath.Raypath
	svdiff   *raypath.Raypath
	shdiff   *raypath.Raypath
	klimit   *raypath.Raypath
}

// Build samples ray-parameter space on k and m so that no reference phase
// changes by more than dDelta (rad) between neighbours.
//
// Stage 1: coarse grid 0, ΔP, 2ΔP, ... up to the largest surface
// horizontal slowness plus ΔP, integrated on a bounded worker pool.
// Stage 2: grazing raypaths of Pdiff, SVdiff, SHdiff and the outer-core
// limit.
// Stage 3: per reference phase, midpoint insertion until every adjacent
// pair is within dDelta, lacks the phase, or is closer than the minimum
// step.
//
// Complexity: O(n·L) integrand evaluations for n raypaths over L mesh
// intervals.
func Build(ctx context.Context, k *woodhouse.Kernel, m *mesh.Mesh, dDelta float64, opts ...Option) (*Catalog, error) {
	if !finitePositive(dDelta) || dDelta > math.Pi {
		return nil, fmt.Errorf("Build: ddelta %g: %w", dDelta, ErrInvalidInput)
	}
	if !structure.Equal(k.Structure(), m.Structure()) {
		return nil, fmt.Errorf("Build: %w", raypath.ErrStructureMismatch)
	}
	c := &Catalog{key: KeyOf(m, dDelta), kernel: k, mesh: m, cfg: newSettings(opts)}

	ctx, span := tracer.Start(ctx, "catalog.Build", trace.WithAttributes(
		attribute.String("catalog.key", c.key.String()),
	))
	defer span.End()

	start := time.Now()
	err := c.build(ctx)
	buildDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		buildTotal.WithLabelValues("error").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("Build: %w", err)
	}
	buildTotal.WithLabelValues("ok").Inc()
	span.SetAttributes(attribute.Int("catalog.raypaths", len(c.raypaths)))
	span.SetStatus(codes.Ok, "")
	c.cfg.logger.Info("catalog built",
		"key", c.key.String(),
		"raypaths", len(c.raypaths),
		"duration", time.Since(start))
	return c, nil
}

func (c *Catalog) build(ctx context.Context) error {
	s := c.mesh.Structure()

	// Stage 1
	pMax := 0.0
	for _, mod := range []structure.Modulus{structure.ModulusA, structure.ModulusL, structure.ModulusN} {
		pMax = math.Max(pMax, structure.HorizontalSlowness(s, mod, s.EarthRadius()))
	}
	pMax += c.cfg.deltaP
	var ps []float64
	for i := 0; float64(i)*c.cfg.deltaP < pMax; i++ {
		ps = append(ps, float64(i)*c.cfg.deltaP)
	}

	// Stage 2
	eps := c.mesh.Eps()
	cmb := s.CoreMantleBoundary() + eps
	special := []float64{
		structure.HorizontalSlowness(s, structure.ModulusA, cmb),
		structure.HorizontalSlowness(s, structure.ModulusL, cmb),
		structure.HorizontalSlowness(s, structure.ModulusN, cmb),
		structure.HorizontalSlowness(s, structure.ModulusA, s.InnerCoreBoundary()+eps),
	}
	paths, err := c.computeAll(ctx, append(ps, special...))
	if err != nil {
		return err
	}
	n := len(ps)
	c.pdiff, c.svdiff, c.shdiff, c.klimit = paths[n], paths[n+1], paths[n+2], paths[n+3]
	c.raypaths = merge(nil, paths)
	c.cfg.logger.Debug("coarse grid computed", "raypaths", len(c.raypaths), "pmax", pMax)

	// Stage 3
	for _, ph := range c.cfg.references {
		if err := c.refine(ctx, ph); err != nil {
			return err
		}
	}
	return nil
}

// refine inserts midpoints for ph until the list is fine enough.
func (c *Catalog) refine(ctx context.Context, ph phase.Phase) error {
	R := c.mesh.Structure().EarthRadius()
	for sweep := 1; ; sweep++ {
		var mids []float64
		for i := 0; i+1 < len(c.raypaths); i++ {
			a, b := c.raypaths[i], c.raypaths[i+1]
			if !c.closeEnough(ph, R, a, b) {
				mids = append(mids, (a.RayParameter()+b.RayParameter())/2)
			}
		}
		if len(mids) == 0 {
			return nil
		}
		added, err := c.computeAll(ctx, mids)
		if err != nil {
			return err
		}
		c.raypaths = merge(c.raypaths, added)
		c.cfg.logger.Debug("refinement sweep",
			"phase", ph.Name(),
			"sweep", sweep,
			"inserted", len(added),
			"raypaths", len(c.raypaths))
	}
}

// closeEnough reports whether a and b need no midpoint for ph. Pairs where
// either side lacks the phase are never split.
func (c *Catalog) closeEnough(ph phase.Phase, eventR float64, a, b *raypath.Raypath) bool {
	if b.RayParameter()-a.RayParameter() < c.cfg.minimumDeltaP {
		return true
	}
	d := math.Abs(a.Delta(ph, eventR) - b.Delta(ph, eventR))
	return !(d > c.key.DDelta)
}

// computeAll integrates one raypath per ray parameter on the worker pool,
// preserving order.
func (c *Catalog) computeAll(ctx context.Context, ps []float64) ([]*raypath.Raypath, error) {
	out := make([]*raypath.Raypath, len(ps))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.cfg.workers)
	for i, p := range ps {
		i, p := i, p
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rp, err := raypath.New(p, c.kernel, c.mesh)
			if err != nil {
				return err
			}
			rp.Compute()
			raypathsComputed.Inc()
			out[i] = rp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// merge returns the union of a and b sorted by p, dropping duplicates of an
// already present p.
func merge(a, b []*raypath.Raypath) []*raypath.Raypath {
	all := make([]*raypath.Raypath, 0, len(a)+len(b))
	all = append(all, a...)
	all = append(all, b...)
	sort.SliceStable(all, func(i, j int) bool { return all[i].Less(all[j]) })
	out := all[:0]
	for _, rp := range all {
		if len(out) > 0 && out[len(out)-1].RayParameter() == rp.RayParameter() {
			continue
		}
		out = append(out, rp)
	}
	return out
}

// Key returns the catalog identity.
func (c *Catalog) Key() Key { return c.key }

// DDelta returns the angular resolution (rad).
func (c *Catalog) DDelta() float64 { return c.key.DDelta }

// Structure returns the structure the catalog was built on.
func (c *Catalog) Structure() structure.Structure { return c.mesh.Structure() }

// Mesh returns the integration mesh.
func (c *Catalog) Mesh() *mesh.Mesh { return c.mesh }

// Kernel returns the Woodhouse kernel.
func (c *Catalog) Kernel() *woodhouse.Kernel { return c.kernel }

// Len returns the number of raypaths.
func (c *Catalog) Len() int { return len(c.raypaths) }

// Raypaths returns a copy of the raypaths in ascending p.
func (c *Catalog) Raypaths() []*raypath.Raypath {
	return append([]*raypath.Raypath(nil), c.raypaths...)
}

// Pdiff returns the raypath grazing the CMB as a P wave.
func (c *Catalog) Pdiff() *raypath.Raypath { return c.pdiff }

// SVdiff returns the raypath grazing the CMB as an SV wave.
func (c *Catalog) SVdiff() *raypath.Raypath { return c.svdiff }

// SHdiff returns the raypath grazing the CMB as an SH wave.
func (c *Catalog) SHdiff() *raypath.Raypath { return c.shdiff }

// KLimit returns the raypath of a K wave grazing the ICB.
func (c *Catalog) KLimit() *raypath.Raypath { return c.klimit }

// diffraction returns the grazing raypath for a diffracted phase.
func (c *Catalog) diffraction(ph phase.Phase) *raypath.Raypath {
	d, ok := ph.Diffraction()
	if !ok {
		return nil
	}
	switch d.Wave {
	case phase.WaveP:
		return c.pdiff
	case phase.WaveSV:
		return c.svdiff
	case phase.WaveSH:
		return c.shdiff
	}
	return nil
}
