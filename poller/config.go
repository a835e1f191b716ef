package poller

import "time"

// DefaultInterval is the pause between completed poll ticks.
const DefaultInterval = 2500 * time.Millisecond

// Config configures the blocking poll loop.
type Config struct {
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`
	// Timeout bounds a whole Run; zero means no bound.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.Interval <= 0 {
		c.Interval = DefaultInterval
	}
}
