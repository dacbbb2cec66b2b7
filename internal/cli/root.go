package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfg *Config

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "matchthree",
		Short: "Terminal match-3 gem game",
		Long: `matchthree is a match-3 gem game for the terminal.

Swap two neighbouring gems to line up three or more of a kind. Matched gems
are destroyed, the gems above fall down and new gems drop in from the top,
which may set off further matches.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return cfg.Validate()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().IntVar(&cfg.Height, "height", cfg.Height, "Grid height (env: MATCHTHREE_HEIGHT)")
	rootCmd.PersistentFlags().IntVar(&cfg.Width, "width", cfg.Width, "Grid width (env: MATCHTHREE_WIDTH)")
	rootCmd.PersistentFlags().DurationVar(&cfg.Pause, "pause", cfg.Pause, "Pause between cascade steps (env: MATCHTHREE_PAUSE)")
	rootCmd.PersistentFlags().StringVar(&cfg.Seed, "seed", cfg.Seed, "Random seed for reproducible games (env: MATCHTHREE_SEED)")
	rootCmd.PersistentFlags().StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "Write JSON logs to this file (env: MATCHTHREE_LOG_FILE)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newPlayCmd())
	rootCmd.AddCommand(newAutoplayCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	envFile := os.Getenv("MATCHTHREE_ENV_FILE")
	if envFile == "" {
		envFile = DefaultEnvFile
	}
	if err := LoadEnvFile(envFile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		NewOutput(cfg.Output, rootCmd.OutOrStdout(), rootCmd.ErrOrStderr()).PrintError(err)
		os.Exit(1)
	}
}
