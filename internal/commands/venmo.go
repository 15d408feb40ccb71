package commands

import (
	"github.com/spf13/cobra"
)

// newVenmoCommand keeps the short "v c SRC DEST" command line working.
func newVenmoCommand(a *app) *cobra.Command {
	venmoCmd := &cobra.Command{
		Use:     "venmo",
		Aliases: []string{"v"},
		Short:   "Venmo utils",
		Long:    "Tools to deal with Venmo statements, etc",
	}

	venmoCmd.AddCommand(&cobra.Command{
		Use:     "convert_statement SRC DEST",
		Aliases: []string{"c"},
		Short:   "Convert Venmo statements (PDF to CSV)",
		Long:    "Read the Venmo monthly statement (a PDF, via SRC) and write the transactions to DEST (a CSV)",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, a, "venmo", args[0], args[1])
		},
	})

	return venmoCmd
}
