// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ai

import (
	"errors"
	"strings"
)

// Config holds configuration for AI service providers.
type Config struct {
	// Host is the base URL for the OpenAI-compatible service API.
	// Example: "http://localhost:11434/v1" for a local Ollama server
	Host string

	// ExtractorModel is the model identifier used for intent extraction.
	// Example: "qwen3:4b", "gpt-4o-mini"
	ExtractorModel string

	// AnalystModel is the model identifier used for writing recommendation
	// pitches. Defaults to the same model as extraction; a larger model can
	// be configured here without touching the extraction path.
	AnalystModel string
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithHost sets the service host URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.Host = host
	}
}

// WithExtractorModel sets the intent extraction model identifier.
func WithExtractorModel(model string) ConfigOption {
	return func(c *Config) {
		c.ExtractorModel = model
	}
}

// WithAnalystModel sets the pitch-writing model identifier.
func WithAnalystModel(model string) ConfigOption {
	return func(c *Config) {
		c.AnalystModel = model
	}
}

// WithModel sets both the extractor and analyst models to the same identifier.
func WithModel(model string) ConfigOption {
	return func(c *Config) {
		c.ExtractorModel = model
		c.AnalystModel = model
	}
}

// DefaultConfig returns a Config with sensible defaults for local
// OpenAI-compatible services. By default, extraction and analysis use the
// same model.
func DefaultConfig() *Config {
	return &Config{
		Host:           "http://localhost:11434/v1",
		ExtractorModel: "qwen3:4b",
		AnalystModel:   "qwen3:4b",
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
// This is the recommended way to create a Config with custom settings.
//
// Example:
//   cfg := NewConfig(
//       WithHost("http://localhost:11434/v1"),
//       WithModel("qwen3:4b"),
//   )
//
// Example with a dedicated analyst model:
//   cfg := NewConfig(
//       WithExtractorModel("qwen3:4b"),
//       WithAnalystModel("qwen3:14b"),
//   )
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// It automatically adds the /v1 suffix to the host if missing, which is
// required by most OpenAI-compatible APIs (Ollama, LocalAI, vLLM, etc).
func (c *Config) Normalize() {
	// Ensure Host ends with /v1 for OpenAI-compatible APIs
	if c.Host != "" && !strings.HasSuffix(c.Host, "/v1") {
		// Remove trailing slash if present before adding /v1
		c.Host = strings.TrimSuffix(c.Host, "/")
		c.Host = c.Host + "/v1"
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	// Normalize first to ensure the host is in correct format
	c.Normalize()

	if c.Host == "" {
		return errors.New("ai config: Host is required")
	}
	if c.ExtractorModel == "" {
		return errors.New("ai config: ExtractorModel is required")
	}
	if c.AnalystModel == "" {
		return errors.New("ai config: AnalystModel is required")
	}
	return nil
}
