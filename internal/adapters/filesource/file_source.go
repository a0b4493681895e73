package filesource

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/emersion/go-message/mail"
	"github.com/mikey/llm-bid-scout/internal/core"
	"github.com/mikey/llm-bid-scout/internal/senders"
	"go.uber.org/zap"
)

// FileSource implements core.MailboxSource over a single .eml file on
// disk. It exists so extraction can be exercised against saved messages
// without a live IMAP account. The sender rules still apply.
type FileSource struct {
	path    string
	account string
	matcher *senders.Matcher
	logger  *zap.Logger
}

var _ core.MailboxSource = (*FileSource)(nil)

// NewFileSource creates a file-backed source for the message at path.
func NewFileSource(path, account string, matcher *senders.Matcher, logger *zap.Logger) *FileSource {
	return &FileSource{
		path:    path,
		account: account,
		matcher: matcher,
		logger:  logger,
	}
}

// Newest parses the configured file and returns its pointer and body.
// The file's sender must pass the matcher, same as a live mailbox scan.
func (s *FileSource) Newest(_ context.Context) (core.EmailPointer, string, error) {
	var ptr core.EmailPointer

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return ptr, "", fmt.Errorf("%w: read %s: %v", core.ErrSourceUnavailable, s.path, err)
	}

	mr, err := mail.CreateReader(bytes.NewReader(raw))
	if err != nil {
		return ptr, "", fmt.Errorf("%w: parse %s: %v", core.ErrSourceUnavailable, s.path, err)
	}
	defer mr.Close()

	from := ""
	if addrs, err := mr.Header.AddressList("From"); err == nil && len(addrs) > 0 {
		from = strings.ToLower(addrs[0].Address)
	}
	if !s.matcher.Matches(from) {
		return ptr, "", fmt.Errorf("%w: sender %q does not match in %s",
			core.ErrNoMatchingMessage, from, s.path)
	}

	subject, _ := mr.Header.Subject()
	messageID, _ := mr.Header.MessageID()
	body, contentType := preferredPart(mr)

	ptr = core.EmailPointer{
		Account:   s.account,
		Mailbox:   filepath.Base(s.path),
		MessageID: messageID,
		Subject:   subject,
		From:      from,
	}
	s.logger.Info("Loaded message from file",
		zap.String("path", s.path),
		zap.String("from", from),
		zap.String("content_type", contentType))
	return ptr, body, nil
}

// Mailboxes reports the single pseudo-mailbox this source serves.
func (s *FileSource) Mailboxes(_ context.Context) ([]string, error) {
	if _, err := os.Stat(s.path); err != nil {
		return nil, fmt.Errorf("%w: stat %s: %v", core.ErrSourceUnavailable, s.path, err)
	}
	return []string{filepath.Base(s.path)}, nil
}

// preferredPart walks the message parts and returns the one best suited
// for rendering, preferring text/html over text/plain.
func preferredPart(mr *mail.Reader) (string, string) {
	var plain, html string
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			break
		}

		header, ok := part.Header.(*mail.InlineHeader)
		if !ok {
			continue
		}
		contentType, _, _ := header.ContentType()
		body, readErr := io.ReadAll(part.Body)
		if readErr != nil {
			continue
		}

		switch {
		case strings.HasPrefix(contentType, "text/html"):
			html = string(body)
		case strings.HasPrefix(contentType, "text/plain"):
			plain = string(body)
		}
	}

	if html != "" {
		return html, "text/html"
	}
	return plain, "text/plain"
}
