package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mikey/llm-bid-scout/internal/core"
	"github.com/mikey/llm-bid-scout/internal/di"
	"github.com/mikey/llm-bid-scout/internal/ports"
	"go.uber.org/zap"
)

const startupTimeout = 2 * time.Minute

func main() {
	// Build the dependency injection container
	container, err := di.BuildContainer()
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	// Run the application
	if err := container.Invoke(run); err != nil {
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}

// run is the main application function that gets all dependencies injected
func run(
	logger *zap.Logger,
	session *core.Session,
	frontend ports.Frontend,
	answerCache core.AnswerCache,
) error {
	defer logger.Sync()

	// Load the newest matching message before taking questions. A failed
	// extraction is already on screen and :reload can retry it; a failed
	// retrieval means there is nothing to run against.
	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	err := session.Load(ctx)
	cancel()
	if err != nil {
		var exErr *core.ExtractionError
		if !errors.As(err, &exErr) {
			logger.Error("Failed to load message", zap.Error(err))
			return err
		}
		logger.Warn("Starting without an extraction", zap.Error(err))
	}

	// Start the frontend
	if err := frontend.Start(); err != nil {
		logger.Error("Failed to start frontend", zap.Error(err))
		return err
	}

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
		logger.Info("Shutting down...")
	case <-frontendDone(frontend):
		logger.Info("Frontend closed")
	}

	// Stop the frontend
	if err := frontend.Stop(); err != nil {
		logger.Error("Failed to stop frontend", zap.Error(err))
	}

	// Close the session, waiting for in-flight queries
	if err := session.Close(); err != nil {
		logger.Error("Failed to close session", zap.Error(err))
	}

	// Stop the cache if needed
	if stopper, ok := answerCache.(interface{ Stop() }); ok {
		stopper.Stop()
	}

	logger.Info("Shutdown complete")
	return nil
}

// frontendDone returns the frontend's completion channel when it has one,
// or a channel that never closes.
func frontendDone(frontend ports.Frontend) <-chan struct{} {
	if waiter, ok := frontend.(interface{ Done() <-chan struct{} }); ok {
		return waiter.Done()
	}
	return make(chan struct{})
}
