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


package mock

import "github.com/poiesic/cinerec/ai"

// MockProvider is a test double for ai.Provider.
// It aggregates mock completer and justifier instances.
type MockProvider struct {
	completer *MockCompleter
	justifier *MockJustifier
}

// NewMockProvider creates a new mock provider with default mock services.
//
// Returns ai.Provider interface for consistency with production constructors.
// Use GetMockCompleter()/GetMockJustifier() to access concrete types for test assertions.
func NewMockProvider() ai.Provider {
	return &MockProvider{
		completer: NewMockCompleter(),
		justifier: NewMockJustifier(),
	}
}

// NewMockProviderWithServices creates a mock provider with custom mock services.
// This allows full control over the behavior of each service.
func NewMockProviderWithServices(completer *MockCompleter, justifier *MockJustifier) ai.Provider {
	return &MockProvider{
		completer: completer,
		justifier: justifier,
	}
}

// Completer returns the mock completer.
func (p *MockProvider) Completer() ai.TextCompleter {
	return p.completer
}

// Justifier returns the mock justifier.
func (p *MockProvider) Justifier() ai.Justifier {
	return p.justifier
}

// Close is a no-op for mock provider.
func (p *MockProvider) Close() error {
	return nil
}

// GetMockCompleter returns the underlying mock completer for test assertions.
// This allows tests to check call counts and inject custom behavior.
func (p *MockProvider) GetMockCompleter() *MockCompleter {
	return p.completer
}

// GetMockJustifier returns the underlying mock justifier for test assertions.
// This allows tests to check call counts and inject custom behavior.
func (p *MockProvider) GetMockJustifier() *MockJustifier {
	return p.justifier
}
