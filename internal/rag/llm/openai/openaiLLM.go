package openai

import (
	"context"
	"errors"

	"github.com/akolanti/portfolio/internal/config"
	"github.com/akolanti/portfolio/internal/customHttpClient"
	"github.com/akolanti/portfolio/internal/rag/llm"
	"github.com/akolanti/portfolio/pkg/logger_i"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type llmClient struct {
	client    openai.Client
	modelName string
	logger    *logger_i.Logger
}

var errNoChoices = errors.New("openai returned no choices")

// NewClient builds a chat completions provider. baseURL may point at any OpenAI compatible endpoint.
func NewClient(apiKey, baseURL, modelName string) llm.Provider {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(customHttpClient.Client(config.LLMTimeout)),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if modelName == "" {
		modelName = config.OpenAIModelName
	}
	return &llmClient{
		client:    openai.NewClient(opts...),
		modelName: modelName,
		logger:    logger_i.NewLogger("llm_openai"),
	}
}

func (c *llmClient) Generate(ctx context.Context, prompt llm.Prompt) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: c.modelName,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(prompt.System),
			openai.UserMessage(prompt.User),
		},
		MaxTokens:   openai.Int(config.ModelMaxTokens),
		Temperature: openai.Float(config.ModelTemperature),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{},
		},
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errNoChoices
	}
	c.logger.FromContext(ctx).Debug("OpenAI completion done",
		"model", c.modelName,
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens)
	return resp.Choices[0].Message.Content, nil
}
