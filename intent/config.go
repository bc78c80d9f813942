package intent

import (
	"errors"
	"time"
)

// Config holds the retry policy for the extraction loop.
type Config struct {
	// MaxAttempts is the total extraction budget: the first model call plus
	// retries with an augmented prompt. When it is exhausted the extractor
	// fails with core.ErrExtractionFailed.
	// Default: 3
	MaxAttempts int

	// RetryDelay is the fixed pause between attempts. There is no backoff
	// growth; the model call itself dominates latency.
	// Default: 500ms
	RetryDelay time.Duration
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithMaxAttempts sets the total extraction attempt budget.
func WithMaxAttempts(attempts int) ConfigOption {
	return func(c *Config) {
		c.MaxAttempts = attempts
	}
}

// WithRetryDelay sets the fixed pause between extraction attempts.
func WithRetryDelay(delay time.Duration) ConfigOption {
	return func(c *Config) {
		c.RetryDelay = delay
	}
}

// DefaultConfig returns a Config with the default retry policy.
func DefaultConfig() *Config {
	return &Config{
		MaxAttempts: 3,
		RetryDelay:  500 * time.Millisecond,
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.MaxAttempts < 1 {
		return errors.New("intent config: MaxAttempts must be at least 1")
	}
	if c.MaxAttempts > 10 {
		return errors.New("intent config: MaxAttempts must be 10 or fewer")
	}
	if c.RetryDelay < 0 {
		return errors.New("intent config: RetryDelay cannot be negative")
	}
	if c.RetryDelay > 5*time.Second {
		return errors.New("intent config: RetryDelay cannot exceed 5s")
	}
	return nil
}
