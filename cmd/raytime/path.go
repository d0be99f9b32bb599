// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"math"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/raytime/raypath"
	"github.com/katalvlaran/raytime/woodhouse"
)

func newPathCmd(a *app) *cobra.Command {
	var (
		phases []string
		rayp   float64
		depth  float64
		psv    bool
		route  bool
	)
	cmd := &cobra.Command{
		Use:   "path",
		Short: "Distance and travel time of phases for one ray parameter",
		Example: `  raytime path --phase P,PcP --rayp 8.5
  raytime path --phase ScS --rayp 5 --route`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			phs, err := parsePhases(phases, psv)
			if err != nil {
				return err
			}
			m, err := a.mesh()
			if err != nil {
				return err
			}
			eventR, err := eventRadius(m.Structure(), depth)
			if err != nil {
				return err
			}
			rp, err := raypath.New(rayp*rad2deg, woodhouse.New(m.Structure()), m)
			if err != nil {
				return err
			}
			rp.Compute()

			out := cmd.OutOrStdout()
			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "PHASE\tP(s/deg)\tDELTA(deg)\tT(s)")
			for _, ph := range phs {
				d, t := rp.Delta(ph, eventR), rp.T(ph, eventR)
				if math.IsNaN(d) {
					fmt.Fprintf(w, "%s\t%.4f\t-\t-\n", ph.DisplayName(), rayp)
					continue
				}
				fmt.Fprintf(w, "%s\t%.4f\t%.3f\t%.3f\n", ph.DisplayName(), rayp, d*rad2deg, t)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			if !route {
				return nil
			}
			for _, ph := range phs {
				pts := rp.Route(ph, eventR)
				if len(pts) == 0 {
					continue
				}
				fmt.Fprintf(out, "# %s\n", ph.DisplayName())
				for _, pt := range pts {
					fmt.Fprintf(out, "%.3f %.3f\n", pt.X, pt.Y)
				}
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringSliceVarP(&phases, "phase", "p", []string{"P", "S"}, "phases to evaluate")
	f.Float64Var(&rayp, "rayp", 0, "ray parameter in s/deg")
	f.Float64Var(&depth, "depth", 0, "event depth in km")
	f.BoolVar(&psv, "psv", false, "treat S legs as SV")
	f.BoolVar(&route, "route", false, "print the raypath as x y km samples")
	_ = cmd.MarkFlagRequired("rayp")
	return cmd
}
