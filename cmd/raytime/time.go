// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"math"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

const rad2deg = 180 / math.Pi

func newTimeCmd(a *app) *cobra.Command {
	var (
		phases   []string
		deg      float64
		depth    float64
		relative bool
		psv      bool
	)
	cmd := &cobra.Command{
		Use:   "time",
		Short: "Travel times of phases at an epicentral distance",
		Example: `  raytime time --phase P,S,PKIKP --deg 60
  raytime time --phase ScS --deg 30 --depth 100`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			phs, err := parsePhases(phases, psv)
			if err != nil {
				return err
			}
			c, err := a.catalog(cmd.Context())
			if err != nil {
				return err
			}
			eventR, err := eventRadius(c.Structure(), depth)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "PHASE\tDELTA(deg)\tT(s)\tP(s/deg)")
			found := 0
			for _, ph := range phs {
				paths, err := c.SearchPath(ph, eventR, deg/rad2deg, relative)
				if err != nil {
					return err
				}
				for _, rp := range paths {
					t, err := c.TravelTimeByThreePointInterpolate(ph, eventR, deg/rad2deg, relative, rp)
					if err != nil {
						return err
					}
					if math.IsNaN(t) {
						t = rp.T(ph, eventR)
					}
					fmt.Fprintf(w, "%s\t%.3f\t%.3f\t%.4f\n", ph.DisplayName(), deg, t, rp.RayParameter()/rad2deg)
					found++
				}
			}
			if err := w.Flush(); err != nil {
				return err
			}
			if found == 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), "no arrivals")
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringSliceVarP(&phases, "phase", "p", []string{"P", "S"}, "phases to search")
	f.Float64VarP(&deg, "deg", "d", 0, "epicentral distance in degrees")
	f.Float64Var(&depth, "depth", 0, "event depth in km")
	f.BoolVar(&relative, "relative", false, "fold distances into [0, 180] degrees")
	f.BoolVar(&psv, "psv", false, "treat S legs as SV")
	_ = cmd.MarkFlagRequired("deg")
	return cmd
}
