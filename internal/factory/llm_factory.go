package factory

import (
	"fmt"

	"github.com/mikey/llm-bid-scout/internal/adapters/ollama"
	"github.com/mikey/llm-bid-scout/internal/adapters/openai"
	"github.com/mikey/llm-bid-scout/internal/config"
	"github.com/mikey/llm-bid-scout/internal/core"
	"go.uber.org/zap"
)

// LLMFactory creates inference clients
type LLMFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewLLMFactory creates a new LLM factory
func NewLLMFactory(cfg *config.Config, logger *zap.Logger) *LLMFactory {
	return &LLMFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateInferenceClient creates a new inference client based on the
// configuration
func (f *LLMFactory) CreateInferenceClient() (core.InferenceClient, error) {
	llmConfig := f.cfg.GetLLM()

	switch llmConfig.Provider {
	case "ollama":
		factory := ollama.NewFactory(f.cfg, f.logger)
		return factory.CreateClient()
	case "openai":
		factory := openai.NewFactory(f.cfg, f.logger)
		return factory.CreateClient()
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", llmConfig.Provider)
	}
}
