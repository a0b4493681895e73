package di

import (
	"os"
	"time"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/llm-bid-scout/internal/adapters/display"
	"github.com/mikey/llm-bid-scout/internal/adapters/render"
	"github.com/mikey/llm-bid-scout/internal/adapters/store"
	"github.com/mikey/llm-bid-scout/internal/config"
	"github.com/mikey/llm-bid-scout/internal/core"
	"github.com/mikey/llm-bid-scout/internal/factory"
	"github.com/mikey/llm-bid-scout/internal/logging"
	"github.com/mikey/llm-bid-scout/internal/ports"
	"github.com/mikey/llm-bid-scout/internal/utils"
)

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewLLMFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewCacheFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewSourceFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewTextProcessorFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewFrontendFactory); err != nil {
		return nil, err
	}

	// Register text processor
	if err := container.Provide(func(f *factory.TextProcessorFactory) *utils.TextProcessor {
		return f.CreateTextProcessor()
	}); err != nil {
		return nil, err
	}

	// Register inference client
	if err := container.Provide(func(f *factory.LLMFactory) (core.InferenceClient, error) {
		return f.CreateInferenceClient()
	}); err != nil {
		return nil, err
	}

	// Register answer cache
	if err := container.Provide(func(f *factory.CacheFactory) (core.AnswerCache, error) {
		return f.CreateAnswerCache()
	}); err != nil {
		return nil, err
	}

	// Register mailbox source
	if err := container.Provide(func(f *factory.SourceFactory) (core.MailboxSource, error) {
		return f.CreateMailboxSource()
	}); err != nil {
		return nil, err
	}

	// Register renderer
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) core.Renderer {
		delay := time.Duration(cfg.GetRender().DOMDelayMS) * time.Millisecond
		return render.NewGoqueryRenderer(delay, logger)
	}); err != nil {
		return nil, err
	}

	// Register link ranker
	if err := container.Provide(func(cfg *config.Config) *core.Ranker {
		return core.NewRanker(core.NewLinkScorer(ScoringFromConfig(cfg)))
	}); err != nil {
		return nil, err
	}

	// Register extraction store
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) core.ExtractionStore {
		return store.NewJSONStore(cfg.GetStore().Path, logger)
	}); err != nil {
		return nil, err
	}

	// Register console display
	if err := container.Provide(func(proc *utils.TextProcessor, logger *zap.Logger) *display.Console {
		return display.NewConsole(os.Stdout, proc, logger)
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(c *display.Console) core.DisplaySink {
		return c
	}); err != nil {
		return nil, err
	}

	// Register query dispatcher
	if err := container.Provide(func(
		llm core.InferenceClient,
		answerCache core.AnswerCache,
		cacheFactory *factory.CacheFactory,
		cfg *config.Config,
		logger *zap.Logger,
	) (*core.QueryDispatcher, error) {
		dispatcherCfg := cfg.GetDispatcher()
		queryTimeout, err := cfg.GetDuration("dispatcher.query_timeout")
		if err != nil {
			return nil, err
		}
		cacheTTL, err := cacheFactory.GetCacheTTL()
		if err != nil {
			return nil, err
		}
		return core.NewQueryDispatcher(
			llm,
			answerCache,
			logger,
			dispatcherCfg.Workers,
			dispatcherCfg.QueueSize,
			queryTimeout,
			cacheFactory.IsCacheEnabled(),
			cacheTTL,
		), nil
	}); err != nil {
		return nil, err
	}

	// Register session
	if err := container.Provide(func(cfg *config.Config) core.SessionConfig {
		chatCfg := cfg.GetChat()
		return core.SessionConfig{
			Serialize:     chatCfg.Serialize,
			IncludeHeader: chatCfg.IncludeHeader,
			IncludeBody:   chatCfg.IncludeBody,
			IncludeLinks:  chatCfg.IncludeLinks,
		}
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(core.NewSession); err != nil {
		return nil, err
	}

	// Register frontend
	if err := container.Provide(func(f *factory.FrontendFactory) (ports.Frontend, error) {
		return f.CreateFrontend()
	}); err != nil {
		return nil, err
	}

	return container, nil
}

// ScoringFromConfig maps the scoring keys onto the domain configuration.
func ScoringFromConfig(cfg *config.Config) core.ScoringConfig {
	sc := cfg.GetScoring()
	return core.ScoringConfig{
		TrustedDomains:   sc.TrustedDomains,
		IntentPhrases:    sc.IntentPhrases,
		StructuralHints:  sc.StructuralHints,
		NegativeHints:    sc.NegativeHints,
		TrustedWeight:    sc.TrustedWeight,
		IntentWeight:     sc.IntentWeight,
		DepthWeight:      sc.DepthWeight,
		StructuralWeight: sc.StructuralWeight,
		NegativeWeight:   sc.NegativeWeight,
		PrimaryThreshold: sc.PrimaryThreshold,
		AuxiliaryLimit:   sc.AuxiliaryLimit,
	}
}
