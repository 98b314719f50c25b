package mcpserver

import (
	"context"
	"errors"

	"github.com/akolanti/portfolio/internal/config"
	"github.com/akolanti/portfolio/internal/domain/chatModel"
	"github.com/akolanti/portfolio/internal/rag"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const defaultSearchLimit = config.MaxContextDocuments

type AskInput struct {
	Question string `json:"question" jsonschema:"the question about the portfolio owner"`
}

type AskOutput struct {
	Answer    string           `json:"answer"`
	Citations []CitationOutput `json:"citations"`
	Cached    bool             `json:"cached"`
}

type CitationOutput struct {
	Source string `json:"source"`
	URL    string `json:"url"`
}

type SearchInput struct {
	Query string `json:"query" jsonschema:"free text to match against the portfolio"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of documents to return (default 8)"`
}

type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

type SearchResultOutput struct {
	Id     string `json:"id"`
	Source string `json:"source"`
	URL    string `json:"url"`
	Score  int    `json:"score"`
	Text   string `json:"text"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask_portfolio",
		Description: "Answer a question about the portfolio owner's experience, projects and skills, with citations",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_portfolio",
		Description: "List the portfolio documents that best match a query, with their relevance scores",
	}, s.handleSearch)
}

func (s *Server) handleAsk(ctx context.Context, _ *mcp.CallToolRequest, input AskInput) (*mcp.CallToolResult, AskOutput, error) {
	result, err := s.chat.AnswerQuestion(ctx, chatModel.ChatInput{ClientID: ClientID, Message: input.Question})
	if err != nil {
		s.logger.FromContext(ctx).Warn("ask_portfolio failed", "error", err)
		var synthErr *rag.SynthesizerError
		if errors.As(err, &synthErr) {
			return nil, AskOutput{}, errors.New(synthErr.Hint())
		}
		return nil, AskOutput{}, err
	}

	output := AskOutput{
		Answer:    result.Answer.Answer,
		Citations: make([]CitationOutput, 0, len(result.Answer.Citations)),
		Cached:    result.Cached,
	}
	for _, c := range result.Answer.Citations {
		output.Citations = append(output.Citations, CitationOutput{Source: c.Source, URL: c.URL})
	}
	return nil, output, nil
}

func (s *Server) handleSearch(ctx context.Context, _ *mcp.CallToolRequest, input SearchInput) (*mcp.CallToolResult, SearchOutput, error) {
	if input.Query == "" {
		return nil, SearchOutput{}, rag.ErrEmptyQuestion
	}
	limit := input.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	results := s.chat.Search(ctx, input.Query, limit)
	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}
	for i, r := range results {
		output.Results[i] = SearchResultOutput{
			Id:     r.Doc.Id,
			Source: r.Doc.Source,
			URL:    r.Doc.URL,
			Score:  r.Score,
			Text:   r.Doc.Text,
		}
	}
	return nil, output, nil
}
