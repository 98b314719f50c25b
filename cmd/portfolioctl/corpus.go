package main

import (
	"encoding/json"
	"fmt"

	"github.com/akolanti/portfolio/internal/domain/portfolio"
	"github.com/akolanti/portfolio/internal/rag/corpus"
	"github.com/spf13/cobra"
)

var corpusJSON bool

var corpusCmd = &cobra.Command{
	Use:   "corpus",
	Short: "Print the documents the assistant retrieves from",
	Long: `Builds the corpus from the profile, public repositories and résumé exactly
as a chat request would, and prints one line per document.`,
	Args: cobra.NoArgs,
	RunE: runCorpus,
}

func init() {
	corpusCmd.Flags().BoolVar(&corpusJSON, "json", false, "output documents as JSON")
	rootCmd.AddCommand(corpusCmd)
}

func runCorpus(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	var repos []portfolio.Repo
	if components.GitHub != nil {
		res := components.GitHub.FetchRepos(cmd.Context())
		if res.Err != nil {
			cmd.PrintErrln("warning: repositories unavailable:", res.Err)
		}
		repos = res.Repos
	}
	docs := corpus.Build(components.Profile.Current(), repos, components.Extras...)

	if corpusJSON {
		data, err := json.MarshalIndent(docs, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal corpus: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	for _, d := range docs {
		fmt.Fprintf(out, "%-32s %-40s %s\n", d.Id, d.Source, d.URL)
	}
	fmt.Fprintf(out, "\n%d documents\n", len(docs))
	return nil
}
