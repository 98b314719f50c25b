package main

import (
	"github.com/akolanti/portfolio/internal/mcpserver"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the portfolio tools over MCP stdio",
	Long: `Starts a Model Context Protocol server on stdin/stdout exposing
ask_portfolio and search_portfolio.

Client configuration:
  {
    "mcpServers": {
      "portfolio": {
        "command": "/path/to/portfolioctl",
        "args": ["mcp"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return mcpserver.NewServer(components.Chat).Run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
