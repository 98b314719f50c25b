package main

import (
	"errors"
	"fmt"

	"github.com/akolanti/portfolio/internal/domain/chatModel"
	"github.com/akolanti/portfolio/internal/rag"
	"github.com/spf13/cobra"
)

const cliClientID = "cli"

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask the assistant a question",
	Args:  cobra.ExactArgs(1),
	RunE:  runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	result, err := components.Chat.AnswerQuestion(cmd.Context(), chatModel.ChatInput{
		ClientID: cliClientID,
		Message:  args[0],
	})
	if err != nil {
		var synthErr *rag.SynthesizerError
		if errors.As(err, &synthErr) {
			return fmt.Errorf("%s: %w", synthErr.Hint(), err)
		}
		return err
	}

	fmt.Fprintln(out, result.Answer.Answer)
	if len(result.Answer.Citations) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Sources:")
		for _, c := range result.Answer.Citations {
			fmt.Fprintf(out, "  - %s (%s)\n", c.Source, c.URL)
		}
	}
	if result.Cached {
		fmt.Fprintln(out, "(cached)")
	}
	return nil
}
