package openai

import (
	"context"
	"fmt"
	"strings"

	"github.com/mikey/llm-bid-scout/internal/core"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// OpenAIClient is an implementation of the InferenceClient interface for
// OpenAI-compatible endpoints. With a local base URL it serves LM Studio,
// llama.cpp server and Ollama's /v1 API.
type OpenAIClient struct {
	client      *openai.Client
	modelName   string
	maxTokens   int
	temperature float32
	topP        float32
	logger      *zap.Logger
}

var _ core.InferenceClient = (*OpenAIClient)(nil)

// NewOpenAIClient creates a new client. An empty baseURL falls back to
// the public OpenAI endpoint; local servers accept any API key.
func NewOpenAIClient(
	baseURL string,
	apiKey string,
	modelName string,
	maxTokens int,
	temperature float32,
	topP float32,
	logger *zap.Logger,
) *OpenAIClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	client := openai.NewClientWithConfig(cfg)

	return &OpenAIClient{
		client:      client,
		modelName:   modelName,
		maxTokens:   maxTokens,
		temperature: temperature,
		topP:        topP,
		logger:      logger,
	}
}

// Chat sends prompt as a single user message and returns the model's
// reply with surrounding whitespace trimmed.
func (c *OpenAIClient) Chat(ctx context.Context, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.modelName,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
		TopP:        c.topP,
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from endpoint")
	}

	reply := strings.TrimSpace(resp.Choices[0].Message.Content)
	if reply == "" {
		return "", fmt.Errorf("model returned an empty reply")
	}

	c.logger.Debug("Chat completion finished",
		zap.String("model", c.modelName),
		zap.String("completion_id", resp.ID),
		zap.Int("reply_len", len(reply)))

	return reply, nil
}

// ModelName reports the configured model identifier.
func (c *OpenAIClient) ModelName() string {
	return c.modelName
}
