package factory

import (
	"fmt"

	"github.com/mikey/llm-bid-scout/internal/adapters/filesource"
	"github.com/mikey/llm-bid-scout/internal/adapters/imapsource"
	"github.com/mikey/llm-bid-scout/internal/config"
	"github.com/mikey/llm-bid-scout/internal/core"
	"github.com/mikey/llm-bid-scout/internal/senders"
	"go.uber.org/zap"
)

// SourceFactory creates mailbox sources based on configuration
type SourceFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewSourceFactory creates a new source factory
func NewSourceFactory(cfg *config.Config, logger *zap.Logger) *SourceFactory {
	return &SourceFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateMailboxSource creates a mailbox source based on the configuration
func (f *SourceFactory) CreateMailboxSource() (core.MailboxSource, error) {
	mailboxCfg := f.cfg.GetMailbox()
	matcher := senders.NewMatcher(mailboxCfg.Senders, mailboxCfg.SenderDomain, f.logger)

	switch mailboxCfg.SourceType {
	case "imap":
		return imapsource.NewIMAPSource(
			mailboxCfg.IMAP.Host,
			mailboxCfg.IMAP.Port,
			mailboxCfg.IMAP.Username,
			mailboxCfg.IMAP.Password,
			mailboxCfg.IMAP.TLS,
			mailboxCfg.Account,
			mailboxCfg.Name,
			mailboxCfg.ScanLimit,
			matcher,
			f.logger,
		), nil
	case "file":
		if mailboxCfg.FilePath == "" {
			return nil, fmt.Errorf("mailbox.file.path is required for the file source")
		}
		return filesource.NewFileSource(
			mailboxCfg.FilePath,
			mailboxCfg.Account,
			matcher,
			f.logger,
		), nil
	default:
		return nil, fmt.Errorf("unsupported mailbox source type: %s", mailboxCfg.SourceType)
	}
}
