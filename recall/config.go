package recall

import (
	"strings"
	"time"
)

// DefaultBotName is the display name of bots the service creates.
const DefaultBotName = "Meeting Notetaker"

// Env names reported when configuration is missing.
const (
	EnvBaseURL = "RECALL_BASE_URL"
	EnvAPIKey  = "RECALL_API_KEY"
)

// Config configures the provider client.
type Config struct {
	BaseURL string        `yaml:"base_url" mapstructure:"base_url"`
	APIKey  string        `yaml:"api_key" mapstructure:"api_key"`
	BotName string        `yaml:"bot_name" mapstructure:"bot_name"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// RateLimit caps provider API calls per second across all bots; zero
	// disables it. Transcript downloads are not limited.
	RateLimit float64 `yaml:"rate_limit" mapstructure:"rate_limit" validate:"gte=0"`
	Burst     int     `yaml:"burst" mapstructure:"burst" validate:"gte=0"`
}

// ApplyDefaults fills unset optional fields.
func (c *Config) ApplyDefaults() {
	if c.BotName == "" {
		c.BotName = DefaultBotName
	}
	if c.Timeout == 0 {
		c.Timeout = 30 * time.Second
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
}

// Missing lists the env names of required settings that are unset.
func (c Config) Missing() []string {
	var missing []string
	if c.BaseURL == "" {
		missing = append(missing, EnvBaseURL)
	}
	if c.APIKey == "" {
		missing = append(missing, EnvAPIKey)
	}
	return missing
}
