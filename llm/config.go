package llm

import (
	"time"

	"github.com/kbukum/meetverdict/httpclient"
)

// DefaultModel is the model used when none is configured.
const DefaultModel = "gpt-4o-mini"

// Config holds configuration for creating an LLM adapter.
type Config struct {
	// Dialect selects the provider mapping. Defaults to "openai".
	Dialect string `yaml:"dialect" mapstructure:"dialect"`

	// BaseURL overrides the dialect's default API base URL.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// APIKey is sent as a bearer token. Empty means no auth.
	APIKey string `yaml:"api_key" mapstructure:"api_key"`

	Model       string  `yaml:"model" mapstructure:"model"`
	Temperature float64 `yaml:"temperature" mapstructure:"temperature" validate:"gte=0,lte=2"`
	MaxTokens   int     `yaml:"max_tokens" mapstructure:"max_tokens" validate:"gte=0"`

	// Timeout for HTTP requests. Defaults to 120s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// Headers are additional HTTP headers sent with every request.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`
}

// ApplyDefaults sets default values for unset config fields.
func (c *Config) ApplyDefaults() {
	if c.Dialect == "" {
		c.Dialect = "openai"
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.Timeout == 0 {
		c.Timeout = 120 * time.Second
	}
}

// Configured reports whether an API key is present, or an explicit base
// URL points at an endpoint that needs none (a local Ollama).
func (c Config) Configured() bool {
	return c.APIKey != "" || c.BaseURL != ""
}

func (c Config) auth() *httpclient.AuthConfig {
	if c.APIKey == "" {
		return httpclient.NoAuth()
	}
	return httpclient.BearerAuth(c.APIKey)
}
