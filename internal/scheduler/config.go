package scheduler

import "time"

// Config controls the maintenance loop.
type Config struct {
	Enabled      bool
	RunInterval  time.Duration
	SweepTimeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		Enabled:      true,
		RunInterval:  time.Hour,
		SweepTimeout: 30 * time.Second,
	}
}

func (c Config) withDefaults() Config {
	defaults := DefaultConfig()
	if c.RunInterval <= 0 {
		c.RunInterval = defaults.RunInterval
	}
	if c.SweepTimeout <= 0 {
		c.SweepTimeout = defaults.SweepTimeout
	}
	return c
}
