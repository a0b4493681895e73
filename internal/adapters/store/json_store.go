package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mikey/llm-bid-scout/internal/core"
	"go.uber.org/zap"
)

// JSONStore persists extraction records as a single JSON document on
// disk. Every save overwrites the previous record wholesale, so the file
// always holds the latest extraction.
type JSONStore struct {
	path   string
	logger *zap.Logger
}

var _ core.ExtractionStore = (*JSONStore)(nil)

// NewJSONStore creates a store writing to path.
func NewJSONStore(path string, logger *zap.Logger) *JSONStore {
	return &JSONStore{
		path:   path,
		logger: logger,
	}
}

// Save encodes the record and replaces the file contents.
func (s *JSONStore) Save(_ context.Context, rec *core.ExtractionRecord) error {
	data, err := core.EncodeRecord(rec)
	if err != nil {
		return fmt.Errorf("failed to encode extraction record: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create store directory: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write extraction record: %w", err)
	}

	s.logger.Info("Saved extraction record",
		zap.String("path", s.path),
		zap.Int("bytes", len(data)))
	return nil
}
