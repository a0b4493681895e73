package core

import (
	"time"
)

// EmailPointer identifies a retrieved message within its account and
// mailbox. From holds the sender's SMTP address, lower-cased by the source.
type EmailPointer struct {
	Account   string `json:"account"`
	Mailbox   string `json:"mailbox"`
	MessageID string `json:"message_id"`
	Subject   string `json:"subject"`
	From      string `json:"from"`
}

// LinkCandidate is a hyperlink lifted from the rendered document.
type LinkCandidate struct {
	Text string `json:"text"`
	Href string `json:"href"`
}

// ScoredLink pairs a candidate with its relevance score.
type ScoredLink struct {
	LinkCandidate
	Score float64
}

// RankedLinks is the outcome of ranking every extracted link. Primary is
// empty when no link cleared the acceptance threshold. Auxiliary holds the
// next candidates by rank, capped, regardless of score sign. AllScored
// keeps every candidate with its score in rank order.
type RankedLinks struct {
	Primary   string
	Auxiliary []LinkCandidate
	AllScored []ScoredLink
}

// RenderedDoc is the queryable result of rendering a message body.
type RenderedDoc struct {
	VisibleText string
	Links       []LinkCandidate
}

// ExtractionRecord aggregates everything extracted from one message. It is
// built once per load and never mutated afterwards; reloads publish a
// fresh record wholesale.
type ExtractionRecord struct {
	Pointer     EmailPointer
	VisibleText string
	Links       []LinkCandidate
	Ranked      RankedLinks
}

// QueryResult carries the outcome of one dispatched model query. Exactly
// one of Text or Err is meaningful.
type QueryResult struct {
	Text string
	Err  error
}

type CachedAnswer struct {
	Key       string
	Model     string
	Answer    string
	CreatedAt time.Time
	ExpiresAt time.Time
}
