// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPhaseCmd(_ *app) *cobra.Command {
	var psv bool
	cmd := &cobra.Command{
		Use:   "phase NAME...",
		Short: "Parse phase names and print their legs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			phs, err := parsePhases(args, psv)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, ph := range phs {
				kind := "SH"
				if ph.IsPSV() {
					kind = "P-SV"
				}
				fmt.Fprintf(out, "%s (%s) %s\n", ph.DisplayName(), kind, ph.ExpandedName())
				for _, part := range ph.Parts() {
					fmt.Fprintf(out, "  %s\n", part)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&psv, "psv", false, "treat S legs as SV")
	return cmd
}
