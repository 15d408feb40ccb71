package commands

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/MikeTheGreat/PersonalTool/internal/buildinfo"
	"github.com/MikeTheGreat/PersonalTool/internal/config"
	"github.com/MikeTheGreat/PersonalTool/internal/logger"
	"github.com/MikeTheGreat/PersonalTool/internal/statement"
)

// app is the state shared by all subcommands, filled in before any of
// them run.
type app struct {
	configPath string
	verbose    bool

	cfg      *config.Config
	registry *statement.Registry
	log      zerolog.Logger
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.LoadOrDefault(a.configPath)
	if err != nil {
		return err
	}
	reg, err := cfg.Apply(statement.DefaultRegistry())
	if err != nil {
		return fmt.Errorf("applying config %s: %w", a.configPath, err)
	}

	a.verbose = a.verbose || cfg.Log.Verbose
	a.cfg = cfg
	a.registry = reg
	a.log = logger.New(cmd.ErrOrStderr(), a.verbose)
	cmd.SetContext(logger.WithContext(cmd.Context(), a.log))
	return nil
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:     "personaltool",
		Short:   "Automate tasks for my personal life",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", config.FileName, "config file")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "for additional, more detailed output")

	rootCmd.AddCommand(newConvertCommand(a))
	rootCmd.AddCommand(newVenmoCommand(a))
	rootCmd.AddCommand(newBatchCommand(a))
	rootCmd.AddCommand(newTokensCommand())
	rootCmd.AddCommand(newVendorsCommand(a))
	rootCmd.AddCommand(newInitCommand())

	return rootCmd
}
