package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	v *viper.Viper
}

// New creates a new configuration instance
func New() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/llm-bid-scout/")
	v.AddConfigPath("$HOME/.llm-bid-scout")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	// Set defaults
	setDefaults(v)

	// Environment variables
	v.AutomaticEnv()
	v.SetEnvPrefix("BID_SCOUT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, using defaults
	}

	return &Config{v: v}, nil
}

// NewFromViper creates a new configuration instance from an existing Viper instance
func NewFromViper(v *viper.Viper) *Config {
	return &Config{v: v}
}

// NewEmptyViper creates a new Viper instance with defaults
func NewEmptyViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	// Mailbox defaults
	v.SetDefault("mailbox.source_type", "imap")
	v.SetDefault("mailbox.account", "Commercial Estimator")
	v.SetDefault("mailbox.name", "INBOX")
	v.SetDefault("mailbox.sender_domain", "planhub.com")
	v.SetDefault("mailbox.senders", []string{})
	v.SetDefault("mailbox.scan_limit", 100)
	v.SetDefault("mailbox.imap.host", "")
	v.SetDefault("mailbox.imap.port", 993)
	v.SetDefault("mailbox.imap.username", "")
	v.SetDefault("mailbox.imap.password", "")
	v.SetDefault("mailbox.imap.tls", true)
	v.SetDefault("mailbox.file.path", "")

	// LLM provider defaults
	v.SetDefault("llm.provider", "ollama")

	// Ollama defaults
	v.SetDefault("ollama.host", "http://localhost:11434")
	v.SetDefault("ollama.model", "gemma2:9b-instruct-q4")
	v.SetDefault("ollama.timeout", "120s")

	// OpenAI-compatible endpoint defaults (LM Studio, llama.cpp, Ollama /v1)
	v.SetDefault("openai.base_url", "http://localhost:11434/v1")
	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.model_name", "gemma2:9b-instruct-q4")
	v.SetDefault("openai.max_tokens", 1000)
	v.SetDefault("openai.temperature", 0.1)
	v.SetDefault("openai.top_p", 0.9)

	// Render defaults. The parser is ready as soon as it returns, so the
	// settle delay defaults to zero; the key remains for renderers that
	// need one.
	v.SetDefault("render.dom_delay_ms", 0)

	// Scoring defaults
	v.SetDefault("scoring.trusted_domains", []string{
		"planhub.com", "buildingconnected.com", "constructconnect.com",
		"isqft.com", "procore.com",
	})
	v.SetDefault("scoring.intent_phrases", []string{
		"view project", "submit", "bid", "open invite", "project", "plans", "portal", "itb",
	})
	v.SetDefault("scoring.structural_hints", []string{
		"project", "bid", "invite", "itb", "plan", "rfi",
	})
	v.SetDefault("scoring.negative_hints", []string{
		"unsubscribe", "preferences", "kb.", "knowledge", "support", "terms", "privacy",
	})
	v.SetDefault("scoring.trusted_weight", 0.6)
	v.SetDefault("scoring.intent_weight", 0.3)
	v.SetDefault("scoring.depth_weight", 0.1)
	v.SetDefault("scoring.structural_weight", 0.1)
	v.SetDefault("scoring.negative_weight", 1.0)
	v.SetDefault("scoring.primary_threshold", 0.3)
	v.SetDefault("scoring.auxiliary_limit", 5)

	// Chat defaults
	v.SetDefault("chat.serialize", true)
	v.SetDefault("chat.include_header", false)
	v.SetDefault("chat.include_body", false)
	v.SetDefault("chat.include_links", false)

	// Dispatcher defaults
	v.SetDefault("dispatcher.workers", 2)
	v.SetDefault("dispatcher.queue_size", 16)
	v.SetDefault("dispatcher.query_timeout", "2m")

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.ttl", "24h")
	v.SetDefault("cache.cleanup_frequency", "1h")
	v.SetDefault("cache.sqlite_path", "./bid_scout_cache.db")
	v.SetDefault("cache.mysql_dsn", "user:password@tcp(localhost:3306)/bid_scout")

	// Store defaults
	v.SetDefault("store.path", "email_output.json")

	// Frontend defaults
	v.SetDefault("frontend.type", "console")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stderr")
}

// GetString gets a string value from the configuration
func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

// GetInt gets an integer value from the configuration
func (c *Config) GetInt(key string) int {
	return c.v.GetInt(key)
}

// GetFloat64 gets a float64 value from the configuration
func (c *Config) GetFloat64(key string) float64 {
	return c.v.GetFloat64(key)
}

// GetBool gets a boolean value from the configuration
func (c *Config) GetBool(key string) bool {
	return c.v.GetBool(key)
}

// GetStringSlice gets a string slice value from the configuration
func (c *Config) GetStringSlice(key string) []string {
	return c.v.GetStringSlice(key)
}

// GetDuration gets a duration value from the configuration
func (c *Config) GetDuration(key string) (time.Duration, error) {
	return time.ParseDuration(c.GetString(key))
}

// GetViper returns the underlying Viper instance
func (c *Config) GetViper() *viper.Viper {
	return c.v
}
