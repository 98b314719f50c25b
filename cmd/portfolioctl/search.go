package main

import (
	"fmt"

	"github.com/akolanti/portfolio/internal/config"
	"github.com/spf13/cobra"
)

var searchLimit int

var searchCmd = &cobra.Command{
	Use:   "search [question]",
	Short: "Show which documents a question retrieves",
	Long: `Expands the question with technology synonyms, scores every corpus document
and prints the ones that would be sent to the model, best first.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", config.MaxContextDocuments, "maximum number of documents")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	results := components.Chat.Search(cmd.Context(), args[0], searchLimit)
	if len(results) == 0 {
		fmt.Fprintln(out, "No matching documents.")
		return nil
	}
	for i, r := range results {
		fmt.Fprintf(out, "[%d] %s (score %d)\n    %s\n", i+1, r.Doc.Source, r.Score, r.Doc.URL)
	}
	return nil
}
