package di

import (
	"flag"
	"strings"
	"time"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/llm-bid-scout/internal/adapters/render"
	"github.com/mikey/llm-bid-scout/internal/adapters/store"
	"github.com/mikey/llm-bid-scout/internal/config"
	"github.com/mikey/llm-bid-scout/internal/core"
	"github.com/mikey/llm-bid-scout/internal/factory"
	"github.com/mikey/llm-bid-scout/internal/logging"
)

// CLIFlags contains all command line flags for the extractor
type CLIFlags struct {
	// Mailbox flags
	EMLFile      string
	Account      string
	Mailbox      string
	SenderDomain string
	Senders      string
	ScanLimit    int

	// IMAP flags
	IMAPHost     string
	IMAPPort     int
	IMAPUsername string
	IMAPPassword string
	IMAPTLS      bool

	// LLM flags
	Provider    string
	OllamaHost  string
	OllamaModel string

	// Output flags
	Ask           string
	ListMailboxes bool
	JSONOutput    bool
	OutputPath    string
	Verbose       bool
	JSONLog       bool
	ConfigFile    string
}

// ParseFlags parses command line flags and returns a CLIFlags struct
func ParseFlags() *CLIFlags {
	flags := &CLIFlags{}

	// Mailbox flags
	flag.StringVar(&flags.EMLFile, "eml", "", "Extract from a saved .eml file instead of IMAP")
	flag.StringVar(&flags.Account, "account", "Commercial Estimator", "Account label recorded on the extraction")
	flag.StringVar(&flags.Mailbox, "mailbox", "INBOX", "Mailbox to scan")
	flag.StringVar(&flags.SenderDomain, "sender-domain", "planhub.com", "Sender domain substring to match")
	flag.StringVar(&flags.Senders, "senders", "", "Comma-separated sender allow-list")
	flag.IntVar(&flags.ScanLimit, "scan-limit", 100, "Maximum messages to scan, newest first")

	// IMAP flags
	flag.StringVar(&flags.IMAPHost, "imap-host", "", "IMAP server host")
	flag.IntVar(&flags.IMAPPort, "imap-port", 993, "IMAP server port")
	flag.StringVar(&flags.IMAPUsername, "imap-username", "", "IMAP login")
	flag.StringVar(&flags.IMAPPassword, "imap-password", "", "IMAP password")
	flag.BoolVar(&flags.IMAPTLS, "imap-tls", true, "Use implicit TLS for IMAP")

	// LLM flags
	flag.StringVar(&flags.Provider, "provider", "ollama", "LLM provider (ollama, openai)")
	flag.StringVar(&flags.OllamaHost, "ollama-host", "http://localhost:11434", "Ollama endpoint")
	flag.StringVar(&flags.OllamaModel, "ollama-model", "gemma2:9b-instruct-q4", "Ollama model")

	// Output flags
	flag.StringVar(&flags.Ask, "ask", "", "Ask the model one question about the extracted message")
	flag.BoolVar(&flags.ListMailboxes, "list-mailboxes", false, "List visible mailboxes and exit")
	flag.BoolVar(&flags.JSONOutput, "json", false, "Print the extraction record as JSON instead of panels")
	flag.StringVar(&flags.OutputPath, "output", "email_output.json", "Path the extraction record is written to")
	flag.BoolVar(&flags.Verbose, "verbose", false, "Enable verbose logging")
	flag.BoolVar(&flags.JSONLog, "json-log", false, "Output logs in JSON format")
	flag.StringVar(&flags.ConfigFile, "config", "", "Path to config file (overrides command line flags)")

	flag.Parse()
	return flags
}

// BuildCLIContainer creates and configures a dependency injection
// container for the one-shot extractor
func BuildCLIContainer(flags *CLIFlags) (*dig.Container, error) {
	container := dig.New()

	// Register flags
	if err := container.Provide(func() *CLIFlags { return flags }); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(func(flags *CLIFlags) (*zap.Logger, error) {
		return logging.InitConsoleLogger(flags.Verbose, flags.JSONLog)
	}); err != nil {
		return nil, err
	}

	// Register configuration
	if err := container.Provide(func(flags *CLIFlags, logger *zap.Logger) (*config.Config, error) {
		if flags.ConfigFile != "" {
			cfg, err := config.New()
			if err != nil {
				return nil, err
			}
			logger.Info("Loaded configuration from file", zap.String("file", cfg.GetViper().ConfigFileUsed()))
			return cfg, nil
		}

		// Create config from command line flags
		return createConfigFromFlags(flags), nil
	}); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewSourceFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewLLMFactory); err != nil {
		return nil, err
	}

	// Register mailbox source
	if err := container.Provide(func(f *factory.SourceFactory) (core.MailboxSource, error) {
		return f.CreateMailboxSource()
	}); err != nil {
		return nil, err
	}

	// Register inference client
	if err := container.Provide(func(f *factory.LLMFactory) (core.InferenceClient, error) {
		return f.CreateInferenceClient()
	}); err != nil {
		return nil, err
	}

	// Register renderer
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) core.Renderer {
		delay := time.Duration(cfg.GetRender().DOMDelayMS) * time.Millisecond
		return render.NewGoqueryRenderer(delay, logger)
	}); err != nil {
		return nil, err
	}

	// Register link ranker
	if err := container.Provide(func(cfg *config.Config) *core.Ranker {
		return core.NewRanker(core.NewLinkScorer(ScoringFromConfig(cfg)))
	}); err != nil {
		return nil, err
	}

	// Register extraction store
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) core.ExtractionStore {
		return store.NewJSONStore(cfg.GetStore().Path, logger)
	}); err != nil {
		return nil, err
	}

	return container, nil
}

// createConfigFromFlags creates a configuration from command line flags
func createConfigFromFlags(flags *CLIFlags) *config.Config {
	v := config.NewEmptyViper()

	// Set mailbox configuration
	if flags.EMLFile != "" {
		v.Set("mailbox.source_type", "file")
		v.Set("mailbox.file.path", flags.EMLFile)
	} else {
		v.Set("mailbox.source_type", "imap")
	}
	v.Set("mailbox.account", flags.Account)
	v.Set("mailbox.name", flags.Mailbox)
	v.Set("mailbox.sender_domain", flags.SenderDomain)
	v.Set("mailbox.scan_limit", flags.ScanLimit)
	v.Set("mailbox.imap.host", flags.IMAPHost)
	v.Set("mailbox.imap.port", flags.IMAPPort)
	v.Set("mailbox.imap.username", flags.IMAPUsername)
	v.Set("mailbox.imap.password", flags.IMAPPassword)
	v.Set("mailbox.imap.tls", flags.IMAPTLS)

	// Set sender allow-list
	if flags.Senders != "" {
		senders := strings.Split(flags.Senders, ",")
		for i, s := range senders {
			senders[i] = strings.TrimSpace(s)
		}
		v.Set("mailbox.senders", senders)
	}

	// Set LLM provider
	v.Set("llm.provider", flags.Provider)
	v.Set("ollama.host", flags.OllamaHost)
	v.Set("ollama.model", flags.OllamaModel)

	// Set store path
	v.Set("store.path", flags.OutputPath)

	return config.NewFromViper(v)
}
