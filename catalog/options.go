// SPDX-License-Identifier: MIT

package catalog

import (
	"log/slog"
	"math"
	"runtime"

	"github.com/katalvlaran/raytime/phase"
	"github.com/katalvlaran/raytime/raypath"
)

// Defaults.
const (
	// DefaultDeltaP is the coarse ray-parameter step (s/rad).
	DefaultDeltaP = 5.0

	// DefaultMinimumDeltaP is the smallest gap (s/rad) refinement still
	// splits.
	DefaultMinimumDeltaP = 0.01

	// DefaultDDelta is the default angular resolution Δδ (1°).
	DefaultDDelta = math.Pi / 180
)

// DefaultReferencePhases are the phases refinement bounds by Δδ.
func DefaultReferencePhases() []phase.Phase {
	return []phase.Phase{phase.P, phase.PcP, phase.PKP, phase.PKIKP, phase.S, phase.ScS, phase.SKS, phase.SKIKS}
}

const (
	panicNilLogger     = "catalog: WithLogger(nil)"
	panicWorkers       = "catalog: WithWorkers: n must be positive"
	panicDeltaP        = "catalog: WithDeltaP: step must be finite and positive"
	panicMinimumDeltaP = "catalog: WithMinimumDeltaP: step must be finite and positive"
	panicDegree        = "catalog: WithInterpolationDegree: degree must be 1 or 2"
	panicNoPhases      = "catalog: WithReferencePhases: no phases"
)

// Option configures building, searching and the registry.
// Constructors panic on nonsensical values.
type Option func(*settings)

type settings struct {
	logger        *slog.Logger
	workers       int
	deltaP        float64
	minimumDeltaP float64
	degree        int
	references    []phase.Phase
}

func newSettings(opts []Option) settings {
	s := settings{
		logger:        slog.Default(),
		workers:       runtime.GOMAXPROCS(0),
		deltaP:        DefaultDeltaP,
		minimumDeltaP: DefaultMinimumDeltaP,
		degree:        raypath.DefaultInterpolationDegree,
		references:    DefaultReferencePhases(),
	}
	for _, o := range opts {
		o(&s)
	}
	return s
}

func finitePositive(v float64) bool { return v > 0 && !math.IsInf(v, 0) }

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic(panicNilLogger)
	}
	return func(s *settings) { s.logger = l }
}

// WithWorkers bounds the number of raypaths integrated concurrently.
func WithWorkers(n int) Option {
	if n <= 0 {
		panic(panicWorkers)
	}
	return func(s *settings) { s.workers = n }
}

// WithDeltaP sets the coarse ray-parameter step.
func WithDeltaP(step float64) Option {
	if !finitePositive(step) {
		panic(panicDeltaP)
	}
	return func(s *settings) { s.deltaP = step }
}

// WithMinimumDeltaP sets the gap below which neighbours are never split.
func WithMinimumDeltaP(step float64) Option {
	if !finitePositive(step) {
		panic(panicMinimumDeltaP)
	}
	return func(s *settings) { s.minimumDeltaP = step }
}

// WithInterpolationDegree sets the degree of the three-point p(Δ) fit used
// to place arrivals. Three points support at most a quadratic.
func WithInterpolationDegree(d int) Option {
	if d < 1 || d > 2 {
		panic(panicDegree)
	}
	return func(s *settings) { s.degree = d }
}

// WithReferencePhases replaces the phases refinement bounds by Δδ.
func WithReferencePhases(phases ...phase.Phase) Option {
	if len(phases) == 0 {
		panic(panicNoPhases)
	}
	ps := append([]phase.Phase(nil), phases...)
	return func(s *settings) { s.references = ps }
}
