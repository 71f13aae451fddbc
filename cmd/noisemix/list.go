// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the sounds that can be played",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.player(nil)
			if err != nil {
				return err
			}
			defer p.Close()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tCATEGORY\tNAME\tSOURCE")
			for _, d := range p.Tracks() {
				origin := d.Path()
				if d.Bundled {
					origin = "bundled"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", d.ID, d.Category, d.Name, origin)
			}
			return w.Flush()
		},
	}
}
