package config

// LLMConfig represents the configuration for the LLM provider
type LLMConfig struct {
	Provider string
}

// MailboxConfig represents the configuration for the mailbox source
type MailboxConfig struct {
	SourceType   string
	Account      string
	Name         string
	SenderDomain string
	Senders      []string
	ScanLimit    int
	IMAP         IMAPConfig
	FilePath     string
}

// IMAPConfig represents the IMAP connection settings
type IMAPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	TLS      bool
}

// OllamaConfig represents the configuration for the native Ollama endpoint
type OllamaConfig struct {
	Host  string
	Model string
}

// OpenAIConfig represents the configuration for OpenAI-compatible endpoints
type OpenAIConfig struct {
	BaseURL     string
	APIKey      string
	ModelName   string
	MaxTokens   int
	Temperature float32
	TopP        float32
}

// RenderConfig represents the configuration for the document renderer
type RenderConfig struct {
	DOMDelayMS int
}

// ScoringConfig represents the link scoring tuning
type ScoringConfig struct {
	TrustedDomains   []string
	IntentPhrases    []string
	StructuralHints  []string
	NegativeHints    []string
	TrustedWeight    float64
	IntentWeight     float64
	DepthWeight      float64
	StructuralWeight float64
	NegativeWeight   float64
	PrimaryThreshold float64
	AuxiliaryLimit   int
}

// ChatConfig represents the chat-side session settings
type ChatConfig struct {
	Serialize     bool
	IncludeHeader bool
	IncludeBody   bool
	IncludeLinks  bool
}

// DispatcherConfig represents the query dispatcher settings
type DispatcherConfig struct {
	Workers   int
	QueueSize int
}

// StoreConfig represents the extraction store settings
type StoreConfig struct {
	Path string
}

// FrontendConfig represents the frontend selection
type FrontendConfig struct {
	Type string
}

// GetLLM returns the LLM configuration
func (c *Config) GetLLM() LLMConfig {
	return LLMConfig{
		Provider: c.GetString("llm.provider"),
	}
}

// GetMailbox returns the mailbox source configuration
func (c *Config) GetMailbox() MailboxConfig {
	return MailboxConfig{
		SourceType:   c.GetString("mailbox.source_type"),
		Account:      c.GetString("mailbox.account"),
		Name:         c.GetString("mailbox.name"),
		SenderDomain: c.GetString("mailbox.sender_domain"),
		Senders:      c.GetStringSlice("mailbox.senders"),
		ScanLimit:    c.GetInt("mailbox.scan_limit"),
		IMAP: IMAPConfig{
			Host:     c.GetString("mailbox.imap.host"),
			Port:     c.GetInt("mailbox.imap.port"),
			Username: c.GetString("mailbox.imap.username"),
			Password: c.GetString("mailbox.imap.password"),
			TLS:      c.GetBool("mailbox.imap.tls"),
		},
		FilePath: c.GetString("mailbox.file.path"),
	}
}

// GetOllama returns the Ollama configuration
func (c *Config) GetOllama() OllamaConfig {
	return OllamaConfig{
		Host:  c.GetString("ollama.host"),
		Model: c.GetString("ollama.model"),
	}
}

// GetOpenAI returns the OpenAI-compatible endpoint configuration
func (c *Config) GetOpenAI() OpenAIConfig {
	return OpenAIConfig{
		BaseURL:     c.GetString("openai.base_url"),
		APIKey:      c.GetString("openai.api_key"),
		ModelName:   c.GetString("openai.model_name"),
		MaxTokens:   c.GetInt("openai.max_tokens"),
		Temperature: float32(c.GetFloat64("openai.temperature")),
		TopP:        float32(c.GetFloat64("openai.top_p")),
	}
}

// GetRender returns the renderer configuration
func (c *Config) GetRender() RenderConfig {
	return RenderConfig{
		DOMDelayMS: c.GetInt("render.dom_delay_ms"),
	}
}

// GetScoring returns the link scoring configuration
func (c *Config) GetScoring() ScoringConfig {
	return ScoringConfig{
		TrustedDomains:   c.GetStringSlice("scoring.trusted_domains"),
		IntentPhrases:    c.GetStringSlice("scoring.intent_phrases"),
		StructuralHints:  c.GetStringSlice("scoring.structural_hints"),
		NegativeHints:    c.GetStringSlice("scoring.negative_hints"),
		TrustedWeight:    c.GetFloat64("scoring.trusted_weight"),
		IntentWeight:     c.GetFloat64("scoring.intent_weight"),
		DepthWeight:      c.GetFloat64("scoring.depth_weight"),
		StructuralWeight: c.GetFloat64("scoring.structural_weight"),
		NegativeWeight:   c.GetFloat64("scoring.negative_weight"),
		PrimaryThreshold: c.GetFloat64("scoring.primary_threshold"),
		AuxiliaryLimit:   c.GetInt("scoring.auxiliary_limit"),
	}
}

// GetChat returns the chat configuration
func (c *Config) GetChat() ChatConfig {
	return ChatConfig{
		Serialize:     c.GetBool("chat.serialize"),
		IncludeHeader: c.GetBool("chat.include_header"),
		IncludeBody:   c.GetBool("chat.include_body"),
		IncludeLinks:  c.GetBool("chat.include_links"),
	}
}

// GetDispatcher returns the dispatcher configuration
func (c *Config) GetDispatcher() DispatcherConfig {
	return DispatcherConfig{
		Workers:   c.GetInt("dispatcher.workers"),
		QueueSize: c.GetInt("dispatcher.queue_size"),
	}
}

// GetStore returns the extraction store configuration
func (c *Config) GetStore() StoreConfig {
	return StoreConfig{
		Path: c.GetString("store.path"),
	}
}

// GetFrontend returns the frontend configuration
func (c *Config) GetFrontend() FrontendConfig {
	return FrontendConfig{
		Type: c.GetString("frontend.type"),
	}
}
