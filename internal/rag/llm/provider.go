package llm

import "context"

// Prompt is one completion request: a fixed instruction plus the user turn carrying context and question.
type Prompt struct {
	System string
	User   string
}

type Provider interface {
	Generate(ctx context.Context, prompt Prompt) (string, error)
}
