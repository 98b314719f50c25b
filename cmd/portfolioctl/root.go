package main

import (
	"fmt"
	"os"

	"github.com/akolanti/portfolio/internal/app"
	"github.com/akolanti/portfolio/internal/config"
	"github.com/akolanti/portfolio/pkg/logger_i"
	"github.com/spf13/cobra"
)

// components is built once per invocation before any subcommand runs. Tests replace it.
var components *app.Components

var rootCmd = &cobra.Command{
	Use:   "portfolioctl",
	Short: "Inspect and query the portfolio assistant",
	Long: `Operator tool for the portfolio chat service.

Reads the same environment (and .env file) as the API server, so the corpus,
retrieval and answers match what the site serves.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if components != nil {
			return nil
		}
		cfg := config.Load()
		// stdout belongs to command output and the MCP stdio transport
		logger_i.InitWriter(cfg, os.Stderr)
		c, err := app.Build(cmd.Context(), cfg)
		if err != nil {
			return fmt.Errorf("building services: %w", err)
		}
		components = c
		return nil
	},
}
