package cli

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()
	client = nil

	rootCmd := &cobra.Command{
		Use:   "edgepuzzle",
		Short: "CLI tool for the edge-matching puzzle",
		Long: `edgepuzzle drives edge-matching puzzle sessions over the JSON API.

A puzzle is a grid of square tiles. Every side of a tile carries a suit
(clubs, diamonds, hearts or spades) pointing in or out, written C+ or H-.
Neighbouring tiles fit when their touching sides are the same suit in
opposite directions.

Use "offline" to run the solver locally without a server.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger := slog.New(slog.NewTextHandler(io.Discard, nil))
			if cfg.Verbose {
				logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug}))
			}

			// Create HTTP client
			client = NewClient(cfg.ServerURL, cfg.Timeout, logger)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: EDGEPUZZLE_SERVER)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Log HTTP requests to stderr")
	rootCmd.PersistentFlags().DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "HTTP request timeout (0 for none)")

	// Add subcommands
	rootCmd.AddCommand(newPuzzleCmd())
	rootCmd.AddCommand(newEventsCmd())
	rootCmd.AddCommand(newHealthCmd())
	rootCmd.AddCommand(newOfflineCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
