package imapsource

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"
	"github.com/emersion/go-message/mail"
	"github.com/mikey/llm-bid-scout/internal/core"
	"github.com/mikey/llm-bid-scout/internal/senders"
	"go.uber.org/zap"
)

// IMAPSource implements core.MailboxSource against an IMAP server using
// go-imap v2. Each call opens a fresh connection and logs out when done,
// so the adapter holds no connection state between calls.
type IMAPSource struct {
	addr      string
	username  string
	password  string
	useTLS    bool
	account   string
	mailbox   string
	scanLimit int
	matcher   *senders.Matcher
	logger    *zap.Logger
}

var _ core.MailboxSource = (*IMAPSource)(nil)

// NewIMAPSource creates an IMAP-backed mailbox source. account is the
// display name recorded on extracted pointers, not the login name.
func NewIMAPSource(
	host string,
	port int,
	username, password string,
	useTLS bool,
	account, mailbox string,
	scanLimit int,
	matcher *senders.Matcher,
	logger *zap.Logger,
) *IMAPSource {
	return &IMAPSource{
		addr:      fmt.Sprintf("%s:%d", host, port),
		username:  username,
		password:  password,
		useTLS:    useTLS,
		account:   account,
		mailbox:   mailbox,
		scanLimit: scanLimit,
		matcher:   matcher,
		logger:    logger,
	}
}

func (s *IMAPSource) connect(_ context.Context) (*imapclient.Client, error) {
	var client *imapclient.Client
	var err error
	if s.useTLS {
		client, err = imapclient.DialTLS(s.addr, nil)
	} else {
		client, err = imapclient.DialStartTLS(s.addr, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: dial %s: %v", core.ErrSourceUnavailable, s.addr, err)
	}

	if err := client.Login(s.username, s.password).Wait(); err != nil {
		_ = client.Logout().Wait()
		return nil, fmt.Errorf("%w: login as %s: %v", core.ErrSourceUnavailable, s.username, err)
	}
	return client, nil
}

// Newest scans the most recent messages in the configured mailbox, newest
// first, and returns the pointer and raw body of the first one whose
// sender passes the matcher. HTML parts are preferred over plain text.
func (s *IMAPSource) Newest(ctx context.Context) (core.EmailPointer, string, error) {
	var ptr core.EmailPointer

	client, err := s.connect(ctx)
	if err != nil {
		return ptr, "", err
	}
	defer func() { _ = client.Logout().Wait() }()

	selData, err := client.Select(s.mailbox, nil).Wait()
	if err != nil {
		return ptr, "", fmt.Errorf("%w: select %s: %v", core.ErrSourceUnavailable, s.mailbox, err)
	}
	total := selData.NumMessages
	if total == 0 {
		return ptr, "", fmt.Errorf("%w: mailbox %s is empty", core.ErrNoMatchingMessage, s.mailbox)
	}

	start := uint32(1)
	if s.scanLimit > 0 && total > uint32(s.scanLimit) {
		start = total - uint32(s.scanLimit) + 1
	}

	buffers, err := s.fetchEnvelopes(client, start, total)
	if err != nil {
		return ptr, "", err
	}

	// Highest sequence number is the newest arrival.
	sort.Slice(buffers, func(i, j int) bool {
		return buffers[i].SeqNum > buffers[j].SeqNum
	})

	for _, buf := range buffers {
		env := buf.Envelope
		if env == nil || len(env.From) == 0 {
			continue
		}
		from := strings.ToLower(env.From[0].Addr())
		if !s.matcher.Matches(from) {
			continue
		}

		body, contentType, err := s.fetchBody(client, buf.UID)
		if err != nil {
			return ptr, "", err
		}

		ptr = core.EmailPointer{
			Account:   s.account,
			Mailbox:   s.mailbox,
			MessageID: env.MessageID,
			Subject:   env.Subject,
			From:      from,
		}
		s.logger.Info("Selected newest matching message",
			zap.String("subject", ptr.Subject),
			zap.String("from", ptr.From),
			zap.Uint32("seq", buf.SeqNum),
			zap.String("content_type", contentType))
		return ptr, body, nil
	}

	return ptr, "", fmt.Errorf("%w: scanned %d messages in %s",
		core.ErrNoMatchingMessage, len(buffers), s.mailbox)
}

// Mailboxes lists the mailbox names visible to the account, sorted.
func (s *IMAPSource) Mailboxes(ctx context.Context) ([]string, error) {
	client, err := s.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = client.Logout().Wait() }()

	listCmd := client.List("", "*", nil)
	var names []string
	for {
		mbox := listCmd.Next()
		if mbox == nil {
			break
		}
		names = append(names, mbox.Mailbox)
	}
	if err := listCmd.Close(); err != nil {
		return names, fmt.Errorf("%w: listing mailboxes: %v", core.ErrSourceUnavailable, err)
	}

	sort.Strings(names)
	return names, nil
}

func (s *IMAPSource) fetchEnvelopes(
	client *imapclient.Client, start, stop uint32,
) ([]*imapclient.FetchMessageBuffer, error) {
	seqSet := imap.SeqSet{}
	seqSet.AddRange(start, stop)

	fetchCmd := client.Fetch(seqSet, &imap.FetchOptions{
		Envelope: true,
		UID:      true,
	})
	defer fetchCmd.Close()

	var buffers []*imapclient.FetchMessageBuffer
	for {
		msg := fetchCmd.Next()
		if msg == nil {
			break
		}
		buf, err := msg.Collect()
		if err != nil {
			continue
		}
		buffers = append(buffers, buf)
	}
	if err := fetchCmd.Close(); err != nil {
		return nil, fmt.Errorf("%w: fetching envelopes: %v", core.ErrSourceUnavailable, err)
	}
	return buffers, nil
}

func (s *IMAPSource) fetchBody(client *imapclient.Client, uid imap.UID) (string, string, error) {
	section := &imap.FetchItemBodySection{Peek: true}
	fetchCmd := client.Fetch(imap.UIDSetNum(uid), &imap.FetchOptions{
		UID:         true,
		BodySection: []*imap.FetchItemBodySection{section},
	})
	defer fetchCmd.Close()

	msg := fetchCmd.Next()
	if msg == nil {
		return "", "", fmt.Errorf("%w: message UID %d disappeared", core.ErrSourceUnavailable, uid)
	}
	buf, err := msg.Collect()
	if err != nil {
		return "", "", fmt.Errorf("%w: collecting message: %v", core.ErrSourceUnavailable, err)
	}
	if err := fetchCmd.Close(); err != nil {
		return "", "", fmt.Errorf("%w: fetching body: %v", core.ErrSourceUnavailable, err)
	}

	raw := buf.FindBodySection(section)
	if raw == nil {
		return "", "", fmt.Errorf("%w: message UID %d has no body section", core.ErrSourceUnavailable, uid)
	}
	body, contentType := PreferredBody(raw)
	return body, contentType, nil
}

// PreferredBody parses a raw RFC 5322 message and returns the part best
// suited for rendering: text/html when present, text/plain otherwise. A
// message that cannot be parsed is returned as-is.
func PreferredBody(raw []byte) (string, string) {
	mr, err := mail.CreateReader(bytes.NewReader(raw))
	if err != nil {
		return string(raw), "raw"
	}
	defer mr.Close()

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
