package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MikeTheGreat/PersonalTool/internal/convert"
	"github.com/MikeTheGreat/PersonalTool/internal/logger"
	"github.com/MikeTheGreat/PersonalTool/internal/model"
	"github.com/MikeTheGreat/PersonalTool/internal/pdftext"
	"github.com/MikeTheGreat/PersonalTool/internal/statement"
)

func newConvertCommand(a *app) *cobra.Command {
	var vendor string

	cmd := &cobra.Command{
		Use:     "convert SRC DEST",
		Aliases: []string{"c"},
		Short:   "Convert a card statement (PDF) to CSV",
		Long: "Read a monthly card statement from SRC (a PDF, a token dump, or a gs:// object)\n" +
			"and write its transactions to DEST as CSV. The statement format is detected\n" +
			"unless --vendor is given.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, a, vendor, args[0], args[1])
		},
	}

	cmd.Flags().StringVar(&vendor, "vendor", "", "statement format (see 'personaltool vendors')")

	return cmd
}

func runConvert(cmd *cobra.Command, a *app, vendorName, src, dst string) error {
	src, err := checkSource(src)
	if err != nil {
		return err
	}
	dst, err = filepath.Abs(dst)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}

	v, err := lookupVendor(a.registry, vendorName)
	if err != nil {
		return err
	}

	conv := &convert.Converter{
		Vendor:   v,
		Registry: a.registry,
		Log:      logger.FromContext(cmd.Context()),
	}
	s, err := conv.Convert(cmd.Context(), src, dst)
	if err != nil {
		return err
	}

	printSummary(cmd.OutOrStdout(), s, a.verbose)
	return nil
}

// checkSource requires a local source to be an existing regular file and
// returns its absolute path.
func checkSource(src string) (string, error) {
	if pdftext.IsRemote(src) {
		return src, nil
	}
	abs, err := filepath.Abs(src)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("SRC: %w", err)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("SRC %s must be a file but isn't", abs)
	}
	return abs, nil
}

// lookupVendor returns nil for an empty name, meaning "detect".
func lookupVendor(reg *statement.Registry, name string) (*statement.Vendor, error) {
	if name == "" {
		return nil, nil
	}
	v := reg.Get(name)
	if v != nil {
		return v, nil
	}
	msg := fmt.Sprintf("unknown vendor %q", name)
	if s := reg.Suggest(name); len(s) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(s, " or "))
	}
	return nil, fmt.Errorf("%s; known vendors: %s", msg, strings.Join(reg.Names(), ", "))
}

func printSummary(w io.Writer, s *convert.Summary, verbose bool) {
	fmt.Fprintf(w, "Converted %s statement %s\n", s.Account, s.Source)
	fmt.Fprintf(w, "Statement date: %s\n", s.StatementDate.Format("01/02/2006"))
	if verbose {
		for _, txn := range s.Transactions {
			fmt.Fprintf(w, "\t%s  %-12s %-40s %10s\n",
				txn.Date.Format("01/02/2006"), txn.Reference, txn.Description, txn.Amount.StringFixed(2))
		}
	}
	for _, c := range model.Categories {
		fmt.Fprintf(w, "Sum of %s: %s\n", c, s.Sums[c].StringFixed(2))
	}
	fmt.Fprintf(w, "Wrote %d transactions to %s\n", s.Rows(), s.Destination)
}
