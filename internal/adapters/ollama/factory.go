package ollama

import (
	"fmt"

	"github.com/mikey/llm-bid-scout/internal/config"
	"github.com/mikey/llm-bid-scout/internal/core"
	"go.uber.org/zap"
)

// Factory creates Ollama clients from configuration
type Factory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewFactory creates a new Ollama client factory
func NewFactory(cfg *config.Config, logger *zap.Logger) *Factory {
	return &Factory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateClient creates a new Ollama client from the configuration
func (f *Factory) CreateClient() (core.InferenceClient, error) {
	ollamaCfg := f.cfg.GetOllama()
	timeout, err := f.cfg.GetDuration("ollama.timeout")
	if err != nil {
		return nil, fmt.Errorf("invalid ollama timeout: %w", err)
	}

	f.logger.Info("Creating Ollama client",
		zap.String("host", ollamaCfg.Host),
		zap.String("model", ollamaCfg.Model),
		zap.Duration("timeout", timeout))

	return NewOllamaClient(ollamaCfg.Host, ollamaCfg.Model, timeout, f.logger), nil
}
