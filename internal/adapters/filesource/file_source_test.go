package filesource

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mikey/llm-bid-scout/internal/core"
	"github.com/mikey/llm-bid-scout/internal/senders"
	"go.uber.org/zap"
)

const multipartMessage = `From: Invites <Invites@PlanHub.com>
To: estimator@example.com
Subject: Invitation to Bid
Message-ID: <abc123@planhub.com>
MIME-Version: 1.0
Content-Type: multipart/alternative; boundary=frontier

--frontier
Content-Type: text/plain; charset=utf-8

Plain fallback.
--frontier
Content-Type: text/html; charset=utf-8

<html><body><p>You are invited</p></body></html>
--frontier--
`

const plainMessage = `From: invites@planhub.com
To: estimator@example.com
Subject: Plain invite

Just the text body.
`

func writeEML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "message.eml")
	crlf := strings.ReplaceAll(content, "\n", "\r\n")
	if err := os.WriteFile(path, []byte(crlf), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func domainMatcher(domain string) *senders.Matcher {
	return senders.NewMatcher(nil, domain, zap.NewNop())
}

func TestFileSourceNewestPrefersHTML(t *testing.T) {
	path := writeEML(t, multipartMessage)
	src := NewFileSource(path, "Estimating", domainMatcher("planhub.com"), zap.NewNop())

	ptr, body, err := src.Newest(context.Background())
	if err != nil {
		t.Fatalf("Newest() error = %v", err)
	}

	if ptr.Account != "Estimating" {
		t.Errorf("Account = %q", ptr.Account)
	}
	if ptr.Mailbox != "message.eml" {
		t.Errorf("Mailbox = %q, want file base name", ptr.Mailbox)
	}
	if ptr.From != "invites@planhub.com" {
		t.Errorf("From = %q, want lowercased address", ptr.From)
	}
	if ptr.Subject != "Invitation to Bid" {
		t.Errorf("Subject = %q", ptr.Subject)
	}
	if ptr.MessageID == "" {
		t.Error("MessageID is empty")
	}
	if !strings.Contains(body, "You are invited") {
		t.Errorf("body = %q, want the HTML part", body)
	}
	if strings.Contains(body, "Plain fallback") {
		t.Errorf("body should not be the plain part: %q", body)
	}
}

func TestFileSourceNewestPlainFallback(t *testing.T) {
	path := writeEML(t, plainMessage)
	src := NewFileSource(path, "Estimating", domainMatcher("planhub.com"), zap.NewNop())

	_, body, err := src.Newest(context.Background())
	if err != nil {
		t.Fatalf("Newest() error = %v", err)
	}
	if !strings.Contains(body, "Just the text body") {
		t.Errorf("body = %q", body)
	}
}

func TestFileSourceNewestSenderRejected(t *testing.T) {
	path := writeEML(t, plainMessage)
	src := NewFileSource(path, "Estimating", domainMatcher("buildingconnected.com"), zap.NewNop())

	_, _, err := src.Newest(context.Background())
	if !errors.Is(err, core.ErrNoMatchingMessage) {
		t.Errorf("Newest() error = %v, want ErrNoMatchingMessage", err)
	}
}

func TestFileSourceNewestMissingFile(t *testing.T) {
	src := NewFileSource(
		filepath.Join(t.TempDir(), "nope.eml"),
		"Estimating", domainMatcher("planhub.com"), zap.NewNop())

	_, _, err := src.Newest(context.Background())
	if !errors.Is(err, core.ErrSourceUnavailable) {
		t.Errorf("Newest() error = %v, want ErrSourceUnavailable", err)
	}
}

func TestFileSourceMailboxes(t *testing.T) {
	path := writeEML(t, plainMessage)
	src := NewFileSource(path, "Estimating", domainMatcher("planhub.com"), zap.NewNop())

	boxes, err := src.Mailboxes(context.Background())
	if err != nil {
		t.Fatalf("Mailboxes() error = %v", err)
	}
	if len(boxes) != 1 || boxes[0] != "message.eml" {
		t.Errorf("Mailboxes() = %v", boxes)
	}
}
