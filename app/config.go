package app

import (
	"fmt"
	"os"
	"time"

	"github.com/kbukum/meetverdict/config"
	"github.com/kbukum/meetverdict/llm"
	"github.com/kbukum/meetverdict/observability"
	"github.com/kbukum/meetverdict/poller"
	"github.com/kbukum/meetverdict/recall"
	"github.com/kbukum/meetverdict/server"
	"github.com/kbukum/meetverdict/validation"
)

// ServiceName names the service in logs, traces and config discovery.
const ServiceName = "meetverdict"

// DefaultShutdownTimeout bounds the stop hooks when shutdown_timeout is unset.
const DefaultShutdownTimeout = 15 * time.Second

// Config is the full application configuration.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout" validate:"gte=0"`

	Recall        recall.Config        `yaml:"recall" mapstructure:"recall"`
	LLM           llm.Config           `yaml:"llm" mapstructure:"llm"`
	Server        server.Config        `yaml:"server" mapstructure:"server"`
	Poll          poller.Config        `yaml:"poll" mapstructure:"poll"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
}

// Load reads config files, .env and the environment into a Config, then
// applies defaults and validates it.
func Load(opts ...config.LoaderOption) (*Config, error) {
	var cfg Config
	if err := config.LoadConfig(ServiceName, &cfg, opts...); err != nil {
		return nil, err
	}
	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = os.Getenv(poller.EnvLLMKey)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyDefaults fills unset fields in every section.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = ServiceName
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = DefaultShutdownTimeout
	}
	c.ServiceConfig.ApplyDefaults()
	c.Recall.ApplyDefaults()
	c.LLM.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.Poll.ApplyDefaults()
	c.Observability.ApplyDefaults()
}

// Validate checks every section. Missing provider credentials are not a
// validation failure; they surface when an operation needs them.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if _, err := llm.GetDialect(c.LLM.Dialect); err != nil {
		return fmt.Errorf("config.llm.dialect: %w", err)
	}
	return validation.Validate(c)
}
