package gemini

import (
	"context"
	"errors"
	"sync"

	"github.com/akolanti/portfolio/internal/config"
	"github.com/akolanti/portfolio/internal/customHttpClient"
	"github.com/akolanti/portfolio/internal/rag/llm"
	"github.com/akolanti/portfolio/pkg/logger_i"
	"google.golang.org/genai"
)

type llmClient struct {
	client    *genai.Client
	modelName string
}

var logger *logger_i.Logger
var geminiClient *llmClient
var once sync.Once

var errEmptyResponse = errors.New("gemini returned no candidates")

// GetGeminiClient builds the process wide client once. It returns nil when the client cannot be created.
func GetGeminiClient(ctx context.Context, apiKey string, modelName string) llm.Provider {
	once.Do(func() {
		logger = logger_i.NewLogger("llm_gemini")
		newGeminiClient(ctx, apiKey, modelName)
	})

	if geminiClient == nil {
		return nil
	}
	return geminiClient
}

func newGeminiClient(ctx context.Context, apiKey string, modelName string) {
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: customHttpClient.Client(config.LLMTimeout),
	})
	if err != nil {
		logger.Error("Error creating Gemini client", "error", err)
		return
	}
	geminiClient = &llmClient{client: c, modelName: modelName}
	logger.Info("Gemini client created", "model", modelName)
}

func (c *llmClient) Generate(ctx context.Context, prompt llm.Prompt) (string, error) {
	contentConfig := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: prompt.System}},
		},
		ResponseMIMEType: "application/json",
		Temperature:      genai.Ptr[float32](config.ModelTemperature),
		MaxOutputTokens:  config.ModelMaxTokens,
	}

	result, err := c.client.Models.GenerateContent(ctx, c.modelName, genai.Text(prompt.User), contentConfig)
	if err != nil {
		return "", err
	}
	if result == nil || len(result.Candidates) == 0 {
		return "", errEmptyResponse
	}
	logger.FromContext(ctx).Debug("Gemini generation complete", "model", c.modelName)
	return result.Text(), nil
}
