package recommend

import "fmt"

// Config holds scoring and ranking parameters for the recommendation engine.
type Config struct {
	// GenreWeight scales the genre overlap component of a candidate's score.
	GenreWeight float64

	// KeywordWeight scales the keyword overlap component of a candidate's score.
	KeywordWeight float64

	// TopK caps how many recommendations a single request returns.
	TopK int

	// TitleThreshold is the minimum Jaro-Winkler similarity for a fuzzy
	// anchor title match. Exact and substring matches bypass it.
	TitleThreshold float64
}

// ConfigOption is a function that modifies a Config.
type ConfigOption func(*Config)

// WithGenreWeight sets the genre overlap weight.
func WithGenreWeight(weight float64) ConfigOption {
	return func(c *Config) {
		c.GenreWeight = weight
	}
}

// WithKeywordWeight sets the keyword overlap weight.
func WithKeywordWeight(weight float64) ConfigOption {
	return func(c *Config) {
		c.KeywordWeight = weight
	}
}

// WithTopK sets the maximum number of recommendations returned.
func WithTopK(topK int) ConfigOption {
	return func(c *Config) {
		c.TopK = topK
	}
}

// WithTitleThreshold sets the fuzzy title match threshold.
func WithTitleThreshold(threshold float64) ConfigOption {
	return func(c *Config) {
		c.TitleThreshold = threshold
	}
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		GenreWeight:    0.6,
		KeywordWeight:  0.4,
		TopK:           5,
		TitleThreshold: 0.90,
	}
}

// NewConfig creates a Config with the given options applied over defaults.
func NewConfig(opts ...ConfigOption) *Config {
	config := DefaultConfig()
	for _, opt := range opts {
		opt(config)
	}
	return config
}

// Normalize rescales the overlap weights so they sum to 1, preserving their
// ratio. Weights that already sum to 1 are left untouched.
func (c *Config) Normalize() {
	sum := c.GenreWeight + c.KeywordWeight
	if sum > 0 && sum != 1 {
		c.GenreWeight /= sum
		c.KeywordWeight /= sum
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.GenreWeight < 0 {
		return fmt.Errorf("recommend config: genre weight must not be negative, got %v", c.GenreWeight)
	}
	if c.KeywordWeight < 0 {
		return fmt.Errorf("recommend config: keyword weight must not be negative, got %v", c.KeywordWeight)
	}
	if c.GenreWeight+c.KeywordWeight == 0 {
		return fmt.Errorf("recommend config: at least one overlap weight must be positive")
	}
	if c.TopK < 1 {
		return fmt.Errorf("recommend config: top-k must be at least 1, got %d", c.TopK)
	}
	if c.TitleThreshold < 0 || c.TitleThreshold > 1 {
		return fmt.Errorf("recommend config: title threshold must be in [0, 1], got %v", c.TitleThreshold)
	}
	return nil
}
