// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/katalvlaran/raytime/catalog"
	"github.com/katalvlaran/raytime/config"
	"github.com/katalvlaran/raytime/mesh"
	"github.com/katalvlaran/raytime/phase"
	"github.com/katalvlaran/raytime/structure"
)

// app carries the loaded configuration into subcommands.
type app struct {
	v      *viper.Viper
	cfg    config.Config
	logger *slog.Logger
}

func newRootCmd(v *viper.Viper) *cobra.Command {
	a := &app{v: v}
	root := &cobra.Command{
		Use:           "raytime",
		Short:         "Seismic travel times in anisotropic Earth models",
		Long:          "raytime computes travel times, ray parameters and raypaths of seismic phases in spherically symmetric, transversely isotropic structures.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "config file (YAML or TOML)")
	pf.String("model", "PREM", "structure name (PREM, iPREM) or model file")
	pf.String("cache-dir", config.DefaultCacheDir(), "catalog cache directory")
	pf.String("store", config.StoreDir, "catalog store: dir, badger or memory")
	pf.Float64("ddelta", 1, "catalog resolution in degrees")
	pf.String("log-level", "info", "log level: debug, info, warn or error")
	for key, flag := range map[string]string{
		"model":          "model",
		"cache_dir":      "cache-dir",
		"store":          "store",
		"catalog.ddelta": "ddelta",
		"log_level":      "log-level",
	} {
		_ = v.BindPFlag(key, pf.Lookup(flag))
	}

	root.AddCommand(
		newTimeCmd(a),
		newPathCmd(a),
		newPhaseCmd(a),
		newCatalogCmd(a),
	)
	return root
}

func (a *app) load(cmd *cobra.Command) error {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		if err := config.ReadFile(a.v, path); err != nil {
			return err
		}
	}
	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = cfg.Logger(cmd.ErrOrStderr())
	return nil
}

func (a *app) mesh() (*mesh.Mesh, error) {
	s, err := structure.Resolve(a.cfg.Model)
	if err != nil {
		return nil, err
	}
	return mesh.New(s, a.cfg.MeshOptions()...)
}

// catalog returns the catalog for the configured model and resolution.
func (a *app) catalog(ctx context.Context) (*catalog.Catalog, error) {
	m, err := a.mesh()
	if err != nil {
		return nil, err
	}
	store, closeStore, err := a.cfg.OpenStore(a.logger)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := closeStore(); err != nil {
			a.logger.Warn("closing catalog store", "error", err)
		}
	}()
	reg := catalog.NewRegistry(store, a.cfg.CatalogOptions(a.logger)...)
	return reg.Get(ctx, m, a.cfg.DDelta())
}

// eventRadius converts a depth (km) into a radius.
func eventRadius(s structure.Structure, depth float64) (float64, error) {
	R := s.EarthRadius()
	if depth < 0 || depth >= R {
		return 0, fmt.Errorf("depth %g km outside [0, %g): %w", depth, R, catalog.ErrInvalidInput)
	}
	return R - depth, nil
}

// parsePhases parses every name, forcing P-SV when psv is set.
func parsePhases(names []string, psv bool) ([]phase.Phase, error) {
	out := make([]phase.Phase, 0, len(names))
	for _, n := range names {
		ph, err := phase.Create(n, psv)
		if err != nil {
			return nil, err
		}
		out = append(out, ph)
	}
	return out, nil
}
