package core

import (
	"context"
)

// MailboxSource retrieves messages from a mail store.
type MailboxSource interface {
	// Newest returns the pointer and raw HTML (or plain text) body of the
	// newest message matching the configured sender rules.
	Newest(ctx context.Context) (EmailPointer, string, error)

	// Mailboxes lists the mailboxes visible to the configured account.
	Mailboxes(ctx context.Context) ([]string, error)
}

// Renderer materializes a raw message body into a queryable document.
type Renderer interface {
	// Render parses raw HTML and extracts visible text and hyperlinks.
	Render(ctx context.Context, raw string) (*RenderedDoc, error)
}

// InferenceClient sends a single prompt to a model endpoint.
type InferenceClient interface {
	// Chat returns the model's reply to the prompt.
	Chat(ctx context.Context, prompt string) (string, error)

	// ModelName reports the configured model identifier.
	ModelName() string
}

// AnswerCache stores model answers keyed by prompt digest.
type AnswerCache interface {
	// Get retrieves a cached answer by key.
	Get(ctx context.Context, key string) (*CachedAnswer, error)

	// Set stores an answer.
	Set(ctx context.Context, entry *CachedAnswer) error

	// Delete removes an answer.
	Delete(ctx context.Context, key string) error

	// Cleanup removes expired answers.
	Cleanup(ctx context.Context) error
}

// ExtractionStore persists extraction records for downstream tools.
type ExtractionStore interface {
	// Save overwrites the stored record with rec.
	Save(ctx context.Context, rec *ExtractionRecord) error
}

// DisplaySink receives extraction results and chat lines for presentation.
type DisplaySink interface {
	ShowDetails(ptr EmailPointer, primary string)
	ShowBody(text string)
	ShowLinks(links []LinkCandidate)
	AppendChat(line string)
	ShowError(msg string)
}
