package core

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// SessionConfig carries the chat-side knobs of a session.
type SessionConfig struct {
	// Serialize keeps one query in flight per session; further questions
	// wait in a FIFO queue so the chat log order matches submission order.
	// When false, questions fan out to the dispatcher pool and answers
	// append as they arrive.
	Serialize     bool
	IncludeHeader bool
	IncludeBody   bool
	IncludeLinks  bool
}

// Session owns one loaded message: the published extraction record, the
// include flags and the conversation with the model. The record pointer
// is swapped atomically so chat and reload never observe a half-built
// record.
type Session struct {
	source     MailboxSource
	renderer   Renderer
	ranker     *Ranker
	store      ExtractionStore
	display    DisplaySink
	dispatcher *QueryDispatcher
	logger     *zap.Logger

	record atomic.Pointer[ExtractionRecord]

	mu            sync.Mutex
	includeHeader bool
	includeBody   bool
	includeLinks  bool
	serialize     bool
	busy          bool
	pending       []string
}

// NewSession creates a session. Call Load before Ask.
func NewSession(
	source MailboxSource,
	renderer Renderer,
	ranker *Ranker,
	store ExtractionStore,
	display DisplaySink,
	dispatcher *QueryDispatcher,
	logger *zap.Logger,
	cfg SessionConfig,
) *Session {
	return &Session{
		source:        source,
		renderer:      renderer,
		ranker:        ranker,
		store:         store,
		display:       display,
		dispatcher:    dispatcher,
		logger:        logger,
		includeHeader: cfg.IncludeHeader,
		includeBody:   cfg.IncludeBody,
		includeLinks:  cfg.IncludeLinks,
		serialize:     cfg.Serialize,
	}
}

// Load retrieves the newest matching message, extracts it and publishes a
// fresh record. Retrieval failures are returned as-is; failures after
// retrieval are reported to the display and returned as *ExtractionError,
// leaving any previously published record in place.
func (s *Session) Load(ctx context.Context) error {
	ptr, raw, err := s.source.Newest(ctx)
	if err != nil {
		return fmt.Errorf("retrieving message: %w", err)
	}
	s.logger.Info("Retrieved message",
		zap.String("mailbox", ptr.Mailbox),
		zap.String("from", ptr.From),
		zap.String("subject", ptr.Subject))

	doc, err := s.renderer.Render(ctx, raw)
	if err != nil {
		exErr := &ExtractionError{Stage: "render", Err: err}
		s.display.ShowError(exErr.Error())
		return exErr
	}

	rec := Assemble(ptr, doc, s.ranker)
	s.record.Store(rec)
	s.logger.Info("Published extraction record",
		zap.Int("links", len(rec.Links)),
		zap.String("primary", rec.Ranked.Primary))

	if err := s.store.Save(ctx, rec); err != nil {
		s.logger.Error("Failed to persist extraction record", zap.Error(err))
		s.display.ShowError("could not write extraction file: " + err.Error())
	}

	s.display.ShowDetails(rec.Pointer, rec.Ranked.Primary)
	s.display.ShowBody(rec.VisibleText)
	s.display.ShowLinks(rec.Links)
	return nil
}

// Ask appends the question to the chat log and dispatches it with the
// currently selected context sections. It returns ErrNoRecord before the
// first successful Load and nil otherwise; dispatch and inference
// failures surface inline in the chat log, never as an Ask error.
func (s *Session) Ask(question string) error {
	rec := s.record.Load()
	if rec == nil {
		return ErrNoRecord
	}
	question = strings.TrimSpace(question)
	if question == "" {
		return nil
	}

	s.display.AppendChat("You: " + question)
	s.display.AppendChat("Model: …")

	prompt := BuildPrompt(s.composeContext(rec), question)

	s.mu.Lock()
	if s.serialize && s.busy {
		s.pending = append(s.pending, prompt)
		s.mu.Unlock()
		return nil
	}
	s.busy = true
	s.mu.Unlock()

	s.submit(prompt)
	return nil
}

// submit hands prompts to the dispatcher, reporting enqueue failures
// inline and moving on to the next queued question so the queue never
// stalls on a rejected submission.
func (s *Session) submit(prompt string) {
	for {
		err := s.dispatcher.Submit(prompt, s.onQueryDone)
		if err == nil {
			return
		}
		s.logger.Warn("Query submission rejected", zap.Error(err))
		s.display.AppendChat("Model: [ERROR] " + err.Error())

		s.mu.Lock()
		if len(s.pending) == 0 {
			s.busy = false
			s.mu.Unlock()
			return
		}
		prompt = s.pending[0]
		s.pending = s.pending[1:]
		s.mu.Unlock()
	}
}

// onQueryDone runs on a dispatcher worker. It appends the answer and, in
// serialized mode, releases the next queued question.
func (s *Session) onQueryDone(res QueryResult) {
	if res.Err != nil {
		s.display.AppendChat("Model: [ERROR] " + res.Err.Error())
	} else {
		s.display.AppendChat("Model: " + res.Text)
	}

	s.mu.Lock()
	if len(s.pending) > 0 {
		next := s.pending[0]
		s.pending = s.pending[1:]
		s.mu.Unlock()
		s.submit(next)
		return
	}
	s.busy = false
	s.mu.Unlock()
}

// SetInclude toggles one context section: "header", "body" or "links".
func (s *Session) SetInclude(section string, on bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch strings.ToLower(section) {
	case "header":
		s.includeHeader = on
	case "body":
		s.includeBody = on
	case "links":
		s.includeLinks = on
	default:
		return fmt.Errorf("unknown section %q", section)
	}
	return nil
}

// Includes reports the current include flags in header, body, links order.
func (s *Session) Includes() (bool, bool, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.includeHeader, s.includeBody, s.includeLinks
}

// Record returns the currently published record, or nil before the first
// successful Load.
func (s *Session) Record() *ExtractionRecord {
	return s.record.Load()
}

// RecordJSON renders the published record in the dump shape.
func (s *Session) RecordJSON() ([]byte, error) {
	rec := s.record.Load()
	if rec == nil {
		return nil, ErrNoRecord
	}
	return EncodeRecord(rec)
}

// Mailboxes lists the mailboxes visible to the configured account.
func (s *Session) Mailboxes(ctx context.Context) ([]string, error) {
	return s.source.Mailboxes(ctx)
}

// Close tears the session down, cancelling any in-flight queries.
func (s *Session) Close() error {
	return s.dispatcher.Close()
}

// composeContext snapshots the include flags and composes the context
// block for rec.
func (s *Session) composeContext(rec *ExtractionRecord) string {
	s.mu.Lock()
	h, b, l := s.includeHeader, s.includeBody, s.includeLinks
	s.mu.Unlock()
	return ComposeContext(rec, h, b, l)
}
