package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mikey/llm-bid-scout/internal/core"
	"go.uber.org/zap"
)

func newTestEntry(key string, ttl time.Duration) *core.CachedAnswer {
	now := time.Now()
	return &core.CachedAnswer{
		Key:       key,
		Model:     "gemma2:9b-instruct-q4",
		Answer:    "the due date is Friday",
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

func TestMemoryCacheSetGet(t *testing.T) {
	c := NewMemoryCache(zap.NewNop(), time.Hour)
	defer c.Stop()
	ctx := context.Background()

	entry := newTestEntry("k1", time.Hour)
	if err := c.Set(ctx, entry); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, err := c.Get(ctx, "k1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Answer != entry.Answer || got.Model != entry.Model {
		t.Fatalf("got %+v, want %+v", got, entry)
	}
}

func TestMemoryCacheMiss(t *testing.T) {
	c := NewMemoryCache(zap.NewNop(), time.Hour)
	defer c.Stop()

	if _, err := c.Get(context.Background(), "absent"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get absent = %v, want ErrNotFound", err)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache(zap.NewNop(), time.Hour)
	defer c.Stop()
	ctx := context.Background()

	if err := c.Set(ctx, newTestEntry("k1", -time.Minute)); err != nil {
		t.Fatalf("set: %v", err)
	}

	if _, err := c.Get(ctx, "k1"); !errors.Is(err, ErrExpired) {
		t.Fatalf("get expired = %v, want ErrExpired", err)
	}

	// Cleanup drops it; afterwards the key is simply gone.
	if err := c.Cleanup(ctx); err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	if _, err := c.Get(ctx, "k1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get after cleanup = %v, want ErrNotFound", err)
	}
}

func TestMemoryCacheDelete(t *testing.T) {
	c := NewMemoryCache(zap.NewNop(), time.Hour)
	defer c.Stop()
	ctx := context.Background()

	if err := c.Set(ctx, newTestEntry("k1", time.Hour)); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := c.Delete(ctx, "k1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := c.Get(ctx, "k1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get after delete = %v, want ErrNotFound", err)
	}
}
