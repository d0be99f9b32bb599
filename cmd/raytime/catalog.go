// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/raytime/catalog"
)

func newCatalogCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage persisted raypath catalogs",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "build",
			Short: "Load or build the catalog for the configured model",
			RunE: func(cmd *cobra.Command, _ []string) error {
				c, err := a.catalog(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d raypaths\n", c.Key(), c.Len())
				return nil
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List persisted catalogs",
			RunE: func(cmd *cobra.Command, _ []string) error {
				store, closeStore, err := a.cfg.OpenStore(a.logger)
				if err != nil {
					return err
				}
				defer closeStore()
				names, err := store.List(cmd.Context())
				if err != nil {
					return err
				}
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "NAME\tSTRUCTURE\tRAYPATHS\tCREATED\tKEY")
				for _, name := range names {
					blob, err := store.Read(cmd.Context(), name)
					if err != nil {
						return err
					}
					h, err := catalog.DecodeHeader(bytes.NewReader(blob))
					if err != nil {
						fmt.Fprintf(w, "%s\t-\t-\t-\t%v\n", name, err)
						continue
					}
					fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n", name, h.Structure, h.Raypaths, h.Created.Format("2006-01-02 15:04"), h.Key)
				}
				return w.Flush()
			},
		},
	)
	return cmd
}
