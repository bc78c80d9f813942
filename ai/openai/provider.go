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


package openai

import (
	"log/slog"

	"github.com/poiesic/cinerec/ai"
)

// Provider binds the completion and justification services to one
// OpenAI-compatible endpoint.
type Provider struct {
	config    *ai.Config
	completer *Completer
	justifier *Justifier
	logger    *slog.Logger
}

// NewProvider validates and normalizes config, then builds both model
// services against the configured host. It returns the ai.Provider
// interface, following the constructor convention in the ai package
// docs.
func NewProvider(config *ai.Config) (ai.Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	completer, err := newCompleter(config.Host, config.ExtractorModel)
	if err != nil {
		return nil, err
	}
	justifier, err := newJustifier(config)
	if err != nil {
		return nil, err
	}

	return &Provider{
		config:    config,
		completer: completer,
		justifier: justifier,
		logger:    slog.Default().With("component", "openai-provider"),
	}, nil
}

// Completer returns the raw completion service used for extraction.
func (p *Provider) Completer() ai.TextCompleter {
	return p.completer
}

// Justifier returns the pitch-writing service.
func (p *Provider) Justifier() ai.Justifier {
	return p.justifier
}

// Close is a no-op today. The langchaingo clients hold no connections
// that outlive a request.
func (p *Provider) Close() error {
	p.logger.Debug("provider closed")
	return nil
}
