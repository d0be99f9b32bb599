// SPDX-License-Identifier: MIT

// Package config loads raytime settings from defaults, config files
// (YAML or TOML), RAYTIME_* environment variables and bound CLI flags, and
// validates them before use.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/katalvlaran/raytime/catalog"
	"github.com/katalvlaran/raytime/mesh"
)

// EnvPrefix prefixes every environment variable: RAYTIME_MESH_MANTLE.
const EnvPrefix = "RAYTIME"

// Store kinds.
const (
	StoreDir    = "dir"
	StoreBadger = "badger"
	StoreMemory = "memory"
)

// ErrInvalidConfig is returned when a loaded value fails validation.
var ErrInvalidConfig = errors.New("config: invalid configuration")

var validate = validator.New()

// MeshConfig holds the integration mesh settings in km.
type MeshConfig struct {
	InnerCore   float64 `mapstructure:"inner_core" validate:"gt=0"`
	OuterCore   float64 `mapstructure:"outer_core" validate:"gt=0"`
	Mantle      float64 `mapstructure:"mantle" validate:"gt=0"`
	Eps         float64 `mapstructure:"eps" validate:"gt=0,lt=1"`
	TurningZone float64 `mapstructure:"turning_zone" validate:"gt=0"`
}

// CatalogConfig holds catalog sampling settings.
type CatalogConfig struct {
	// DDelta is the angular resolution in degrees.
	DDelta              float64 `mapstructure:"ddelta" validate:"gt=0,lte=180"`
	DeltaP              float64 `mapstructure:"delta_p" validate:"gt=0"`
	MinimumDeltaP       float64 `mapstructure:"minimum_delta_p" validate:"gt=0,ltefield=DeltaP"`
	InterpolationDegree int     `mapstructure:"interpolation_degree" validate:"min=1,max=2"`
	// Workers bounds concurrent integrations; 0 means GOMAXPROCS.
	Workers int `mapstructure:"workers" validate:"gte=0"`
}

// Config holds all runtime configuration.
type Config struct {
	// Model is a built-in structure name or a model file path.
	Model    string        `mapstructure:"model" validate:"required"`
	CacheDir string        `mapstructure:"cache_dir" validate:"required"`
	Store    string        `mapstructure:"store" validate:"oneof=dir badger memory"`
	LogLevel string        `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	Mesh     MeshConfig    `mapstructure:"mesh"`
	Catalog  CatalogConfig `mapstructure:"catalog"`
}

// DefaultCacheDir returns the per-user cache directory for catalogs.
func DefaultCacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "raytime")
	}
	return ".raytime"
}

// SetDefaults registers every key with its default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("model", "PREM")
	v.SetDefault("cache_dir", DefaultCacheDir())
	v.SetDefault("store", StoreDir)
	v.SetDefault("log_level", "info")
	v.SetDefault("mesh.inner_core", mesh.DefaultInterval)
	v.SetDefault("mesh.outer_core", mesh.DefaultInterval)
	v.SetDefault("mesh.mantle", mesh.DefaultInterval)
	v.SetDefault("mesh.eps", mesh.DefaultEps)
	v.SetDefault("mesh.turning_zone", mesh.DefaultTurningZoneWidth)
	v.SetDefault("catalog.ddelta", 1.0)
	v.SetDefault("catalog.delta_p", catalog.DefaultDeltaP)
	v.SetDefault("catalog.minimum_delta_p", catalog.DefaultMinimumDeltaP)
	v.SetDefault("catalog.interpolation_degree", 2)
	v.SetDefault("catalog.workers", 0)
}

// Load applies defaults and environment bindings to v, decodes it and
// validates the result. Config files must already be read into v.
func Load(v *viper.Viper) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("Load: %w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("Load: %w", err)
	}
	return cfg, nil
}

// ReadFile reads a YAML or TOML config file into v; the format follows the
// extension.
func ReadFile(v *viper.Viper, path string) error {
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("ReadFile(%s): %w", path, err)
	}
	return nil
}

// Validate checks every field.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if 2*c.Mesh.Eps >= math.Min(c.Mesh.InnerCore, math.Min(c.Mesh.OuterCore, c.Mesh.Mantle)) {
		return fmt.Errorf("%w: mesh.eps %g too large for the intervals", ErrInvalidConfig, c.Mesh.Eps)
	}
	return nil
}

// DDelta returns the catalog resolution in radians.
func (c Config) DDelta() float64 { return c.Catalog.DDelta * math.Pi / 180 }

// MeshOptions translates the mesh settings.
func (c Config) MeshOptions() []mesh.Option {
	return []mesh.Option{
		mesh.WithInnerCoreInterval(c.Mesh.InnerCore),
		mesh.WithOuterCoreInterval(c.Mesh.OuterCore),
		mesh.WithMantleInterval(c.Mesh.Mantle),
		mesh.WithEps(c.Mesh.Eps),
		mesh.WithTurningZoneWidth(c.Mesh.TurningZone),
	}
}

// CatalogOptions translates the catalog settings.
func (c Config) CatalogOptions(logger *slog.Logger) []catalog.Option {
	opts := []catalog.Option{
		catalog.WithLogger(logger),
		catalog.WithDeltaP(c.Catalog.DeltaP),
		catalog.WithMinimumDeltaP(c.Catalog.MinimumDeltaP),
		catalog.WithInterpolationDegree(c.Catalog.InterpolationDegree),
	}
	if c.Catalog.Workers > 0 {
		opts = append(opts, catalog.WithWorkers(c.Catalog.Workers))
	}
	return opts
}

// Level returns the slog level of LogLevel.
func (c Config) Level() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// Logger returns a text logger on w at the configured level.
func (c Config) Logger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: c.Level()}))
}

// OpenStore opens the configured catalog store. The returned close
// function is never nil.
func (c Config) OpenStore(logger *slog.Logger) (catalog.Store, func() error, error) {
	noop := func() error { return nil }
	switch c.Store {
	case StoreMemory:
		return catalog.NewMemoryStore(), noop, nil
	case StoreBadger:
		s, err := catalog.OpenBadgerStore(catalog.BadgerConfig{
			Path:   filepath.Join(c.CacheDir, "badger"),
			Logger: logger,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("OpenStore: %w", err)
		}
		return s, s.Close, nil
	case StoreDir:
		s, err := catalog.NewDirStore(c.CacheDir)
		if err != nil {
			return nil, nil, fmt.Errorf("OpenStore: %w", err)
		}
		return s, noop, nil
	}
	return nil, nil, fmt.Errorf("OpenStore: store %q: %w", c.Store, ErrInvalidConfig)
}
