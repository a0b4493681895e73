package factory

import (
	"fmt"
	"os"

	"github.com/mikey/llm-bid-scout/internal/adapters/display"
	"github.com/mikey/llm-bid-scout/internal/config"
	"github.com/mikey/llm-bid-scout/internal/core"
	"github.com/mikey/llm-bid-scout/internal/ports"
	"go.uber.org/zap"
)

// FrontendFactory creates frontends based on configuration
type FrontendFactory struct {
	cfg     *config.Config
	logger  *zap.Logger
	session *core.Session
	console *display.Console
}

// NewFrontendFactory creates a new frontend factory
func NewFrontendFactory(
	cfg *config.Config,
	logger *zap.Logger,
	session *core.Session,
	console *display.Console,
) *FrontendFactory {
	return &FrontendFactory{
		cfg:     cfg,
		logger:  logger,
		session: session,
		console: console,
	}
}

// CreateFrontend creates a frontend based on the configuration
func (f *FrontendFactory) CreateFrontend() (ports.Frontend, error) {
	frontendType := f.cfg.GetString("frontend.type")

	switch frontendType {
	case "console":
		return display.NewREPL(f.session, f.console, os.Stdin, f.logger), nil
	default:
		return nil, fmt.Errorf("unsupported frontend type: %s", frontendType)
	}
}
