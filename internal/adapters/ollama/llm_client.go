package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mikey/llm-bid-scout/internal/core"
	"go.uber.org/zap"
)

// OllamaClient implements core.InferenceClient against the native Ollama
// chat API.
type OllamaClient struct {
	host       string
	model      string
	httpClient *http.Client
	logger     *zap.Logger
}

var _ core.InferenceClient = (*OllamaClient)(nil)

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Message chatMessage `json:"message"`
}

// NewOllamaClient creates a new client for an Ollama endpoint.
func NewOllamaClient(host, model string, timeout time.Duration, logger *zap.Logger) *OllamaClient {
	return &OllamaClient{
		host:  strings.TrimRight(host, "/"),
		model: model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Chat sends prompt as a single user message and returns the model's
// reply with surrounding whitespace trimmed.
func (c *OllamaClient) Chat(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.host+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("ollama request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("ollama error %s: %s", resp.Status, strings.TrimSpace(string(detail)))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}

	reply := strings.TrimSpace(parsed.Message.Content)
	if reply == "" {
		return "", fmt.Errorf("model returned an empty reply")
	}

	c.logger.Debug("Ollama chat completed",
		zap.String("model", c.model),
		zap.Duration("elapsed", time.Since(started)),
		zap.Int("reply_len", len(reply)))

	return reply, nil
}

// ModelName reports the configured model identifier.
func (c *OllamaClient) ModelName() string {
	return c.model
}
