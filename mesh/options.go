// SPDX-License-Identifier: MIT

package mesh

import "math"

// Defaults.
const (
	// DefaultInterval is the grid spacing (km) of every partition.
	DefaultInterval = 1.0

	// DefaultEps offsets grid endpoints from layer boundaries (km).
	DefaultEps = 1e-7

	// DefaultTurningZoneWidth is the radial width (km) above a turning
	// point integrated with the singularity-removing substitution.
	DefaultTurningZoneWidth = 25.0
)

const (
	panicIntervalInvalid    = "mesh: interval must be finite and positive"
	panicEpsInvalid         = "mesh: WithEps: eps must be finite and positive"
	panicTurningZoneInvalid = "mesh: WithTurningZoneWidth: width must be finite and positive"
)

// Option mutates the mesh configuration.
// Constructors panic on nonsensical values.
type Option func(*options)

type options struct {
	inner, outer, mantle float64
	eps                  float64
	turningZone          float64
}

func defaultOptions() options {
	return options{
		inner:       DefaultInterval,
		outer:       DefaultInterval,
		mantle:      DefaultInterval,
		eps:         DefaultEps,
		turningZone: DefaultTurningZoneWidth,
	}
}

func positive(v float64) bool { return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v) }

// WithInnerCoreInterval sets the inner-core grid spacing in km.
func WithInnerCoreInterval(km float64) Option {
	if !positive(km) {
		panic(panicIntervalInvalid)
	}
	return func(o *options) { o.inner = km }
}

// WithOuterCoreInterval sets the outer-core grid spacing in km.
func WithOuterCoreInterval(km float64) Option {
	if !positive(km) {
		panic(panicIntervalInvalid)
	}
	return func(o *options) { o.outer = km }
}

// WithMantleInterval sets the mantle grid spacing in km.
func WithMantleInterval(km float64) Option {
	if !positive(km) {
		panic(panicIntervalInvalid)
	}
	return func(o *options) { o.mantle = km }
}

// WithInterval sets the same spacing for all three partitions.
func WithInterval(km float64) Option {
	if !positive(km) {
		panic(panicIntervalInvalid)
	}
	return func(o *options) { o.inner, o.outer, o.mantle = km, km, km }
}

// WithEps sets the boundary offset in km.
func WithEps(km float64) Option {
	if !positive(km) {
		panic(panicEpsInvalid)
	}
	return func(o *options) { o.eps = km }
}

// WithTurningZoneWidth sets the width of the turning-point zone in km.
func WithTurningZoneWidth(km float64) Option {
	if !positive(km) {
		panic(panicTurningZoneInvalid)
	}
	return func(o *options) { o.turningZone = km }
}
