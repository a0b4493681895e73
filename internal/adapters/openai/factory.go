package openai

import (
	"github.com/mikey/llm-bid-scout/internal/config"
	"github.com/mikey/llm-bid-scout/internal/core"
	"go.uber.org/zap"
)

// Factory creates new instances of OpenAIClient
type Factory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewFactory creates a new factory for OpenAIClient instances
func NewFactory(cfg *config.Config, logger *zap.Logger) *Factory {
	return &Factory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateClient creates a new OpenAIClient pointed at the configured
// endpoint
func (f *Factory) CreateClient() (core.InferenceClient, error) {
	openaiCfg := f.cfg.GetOpenAI()

	f.logger.Info("Creating OpenAI-compatible client",
		zap.String("base_url", openaiCfg.BaseURL),
		zap.String("model", openaiCfg.ModelName))

	return NewOpenAIClient(
		openaiCfg.BaseURL,
		openaiCfg.APIKey,
		openaiCfg.ModelName,
		openaiCfg.MaxTokens,
		openaiCfg.Temperature,
		openaiCfg.TopP,
		f.logger,
	), nil
}
