package commands

import (
	"github.com/spf13/cobra"

	"github.com/MikeTheGreat/PersonalTool/internal/pdftext"
)

func newTokensCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens SRC",
		Short: "Print the text tokens of a statement",
		Long: "Print the tokens the parser sees, one per line, with a form feed between pages.\n" +
			"The output can be saved as a .txt file and converted like a PDF.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := checkSource(args[0])
			if err != nil {
				return err
			}
			pages, err := pdftext.Load(cmd.Context(), src)
			if err != nil {
				return err
			}
			return pdftext.Dump(cmd.OutOrStdout(), pages)
		},
	}
}
