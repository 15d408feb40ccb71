package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/MikeTheGreat/PersonalTool/internal/importer"
	"github.com/MikeTheGreat/PersonalTool/internal/logger"
)

func newBatchCommand(a *app) *cobra.Command {
	var vendor string
	var outDir string
	var keep bool

	cmd := &cobra.Command{
		Use:   "batch [directory]",
		Short: "Convert every statement in a directory",
		Long: "Convert each .pdf and .txt statement in the directory (default ./import) to a\n" +
			"CSV of the same name, then move the statement into processed/.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "import"
			if len(args) > 0 {
				dir = args[0]
			}
			if outDir == "" {
				outDir = a.cfg.Output.Dir
			}
			return runBatch(cmd, a, dir, outDir, vendor, keep)
		},
	}

	cmd.Flags().StringVar(&vendor, "vendor", "", "statement format for every file (default: detect per file)")
	cmd.Flags().StringVar(&outDir, "out", "", "directory for CSV files (default: output.dir from config, else the statement directory)")
	cmd.Flags().BoolVar(&keep, "keep", false, "leave converted statements in place")

	return cmd
}

func runBatch(cmd *cobra.Command, a *app, dir, outDir, vendor string, keep bool) error {
	log := logger.FromContext(cmd.Context())

	files, err := importer.Scan(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No statements found in %s\n", dir)
		return nil
	}

	if outDir == "" {
		outDir = dir
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	failed := 0
	for _, f := range files {
		dst := filepath.Join(outDir, f.OutputName())
		log.Debug().Str("file", f.Name).Int64("size", f.Size).Msg("converting statement")
		if err := runConvert(cmd, a, vendor, f.Path, dst); err != nil {
			failed++
			log.Error().Err(err).Str("file", f.Name).Msg("conversion failed")
			fmt.Fprintf(cmd.OutOrStdout(), "FAILED %s: %v\n", f.Name, err)
			continue
		}
		if keep {
			continue
		}
		if err := importer.MarkProcessed(dir, f.Name); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d statements failed", failed, len(files))
	}
	return nil
}
