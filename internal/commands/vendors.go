package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVendorsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "vendors",
		Short: "List supported statement formats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range a.registry.Names() {
				v := a.registry.Get(name)
				fmt.Fprintf(cmd.OutOrStdout(), "%-8s %-20s year rollover: %s\n", v.Name, v.AccountName, v.Rollover)
			}
			return nil
		},
	}
}
