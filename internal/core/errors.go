package core

import (
	"errors"
	"fmt"
)

var (
	// ErrSourceUnavailable indicates the mail store could not be reached
	// or authenticated against.
	ErrSourceUnavailable = errors.New("mailbox source unavailable")

	// ErrNoMatchingMessage indicates the scan finished without any message
	// satisfying the sender rules.
	ErrNoMatchingMessage = errors.New("no matching message found")

	// ErrNoRecord indicates no extraction record has been loaded yet.
	ErrNoRecord = errors.New("no extraction record loaded")

	// ErrQueueFull indicates the dispatcher queue rejected a submission.
	ErrQueueFull = errors.New("query queue is full")

	// ErrDispatcherClosed indicates a submission after Close.
	ErrDispatcherClosed = errors.New("query dispatcher is closed")
)

// ExtractionError wraps failures between retrieval and record assembly.
// Callers use errors.As to tell these from source failures; an extraction
// failure leaves the session open.
type ExtractionError struct {
	Stage string
	Err   error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed at %s: %v", e.Stage, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}
