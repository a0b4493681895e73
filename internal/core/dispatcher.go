package core

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"go.uber.org/zap"
)

// QueryDispatcher runs model queries on a bounded worker pool so the
// session loop never blocks on the network. Jobs are taken in FIFO order;
// each submitted query produces exactly one completion callback, including
// during shutdown, when queued jobs complete with a cancellation error.
type QueryDispatcher struct {
	llm          InferenceClient
	cache        AnswerCache
	logger       *zap.Logger
	cacheEnabled bool
	cacheTTL     time.Duration
	queryTimeout time.Duration

	jobs   chan queryJob
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

type queryJob struct {
	prompt string
	done   func(QueryResult)
}

// NewQueryDispatcher creates a dispatcher and starts its workers.
func NewQueryDispatcher(
	llm InferenceClient,
	cache AnswerCache,
	logger *zap.Logger,
	workers int,
	queueSize int,
	queryTimeout time.Duration,
	cacheEnabled bool,
	cacheTTL time.Duration,
) *QueryDispatcher {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	d := &QueryDispatcher{
		llm:          llm,
		cache:        cache,
		logger:       logger,
		cacheEnabled: cacheEnabled,
		cacheTTL:     cacheTTL,
		queryTimeout: queryTimeout,
		jobs:         make(chan queryJob, queueSize),
		ctx:          ctx,
		cancel:       cancel,
	}
	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
	return d
}

// Submit enqueues a query. It never blocks: a full queue returns
// ErrQueueFull immediately. done is invoked exactly once from a worker
// goroutine with the query's result.
func (d *QueryDispatcher) Submit(prompt string, done func(QueryResult)) error {
	if done == nil {
		done = func(QueryResult) {}
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrDispatcherClosed
	}
	select {
	case d.jobs <- queryJob{prompt: prompt, done: done}:
		return nil
	default:
		return ErrQueueFull
	}
}

// Close cancels in-flight calls and waits for the workers to drain the
// queue. Queued jobs still receive their completion callback, carrying
// the cancellation error. Close is idempotent.
func (d *QueryDispatcher) Close() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	d.mu.Unlock()

	d.cancel()
	close(d.jobs)
	d.wg.Wait()
	return nil
}

func (d *QueryDispatcher) worker() {
	defer d.wg.Done()
	for job := range d.jobs {
		job.done(d.run(job.prompt))
	}
}

// run executes one query: answer cache first, then the model, then the
// cache fill. Transport and endpoint failures become the result's Err.
func (d *QueryDispatcher) run(prompt string) QueryResult {
	key := answerKey(d.llm.ModelName(), prompt)

	if d.cacheEnabled && d.cache != nil {
		if entry, err := d.cache.Get(d.ctx, key); err == nil {
			d.logger.Debug("Answer cache hit", zap.String("key", key))
			return QueryResult{Text: entry.Answer}
		}
	}

	ctx, cancel := context.WithTimeout(d.ctx, d.queryTimeout)
	defer cancel()

	started := time.Now()
	text, err := d.llm.Chat(ctx, prompt)
	if err != nil {
		d.logger.Warn("Model query failed",
			zap.String("model", d.llm.ModelName()),
			zap.Duration("elapsed", time.Since(started)),
			zap.Error(err))
		return QueryResult{Err: err}
	}
	d.logger.Debug("Model query completed",
		zap.String("model", d.llm.ModelName()),
		zap.Duration("elapsed", time.Since(started)))

	if d.cacheEnabled && d.cache != nil {
		entry := &CachedAnswer{
			Key:       key,
			Model:     d.llm.ModelName(),
			Answer:    text,
			CreatedAt: time.Now(),
			ExpiresAt: time.Now().Add(d.cacheTTL),
		}
		if err := d.cache.Set(d.ctx, entry); err != nil {
			d.logger.Error("Failed to update answer cache", zap.Error(err))
		}
	}

	return QueryResult{Text: text}
}

// answerKey derives the cache key for a model and prompt pair.
func answerKey(model, prompt string) string {
	sum := sha256.Sum256([]byte(model + "\x00" + prompt))
	return hex.EncodeToString(sum[:])
}
