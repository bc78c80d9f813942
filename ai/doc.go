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


// Package ai defines the language-model boundary for Cinerec.
//
// Everything the recommendation pipeline wants from a model goes through
// three small interfaces:
//
//   - TextCompleter: returns the raw completion for a system and user
//     prompt, with no guarantees about its shape
//   - Justifier: turns ranked catalog matches into short viewer-facing
//     pitches
//   - Provider: bundles both services behind one constructor and Close
//
// TextCompleter hands model output back untouched. Replies are untrusted
// text; parsing, repair and retry all live in the intent package, so the
// rest of the pipeline only ever sees validated structures.
//
// Two sub-packages implement these interfaces:
//
//   - ai/openai: production client for OpenAI-compatible endpoints
//   - ai/mock: in-process doubles for tests that must not call a model
//
// # Constructors
//
// Production constructors return interface values. Code holding an
// ai.Provider cannot reach implementation details, which keeps provider
// swaps local to the wiring code:
//
//	provider, err := openai.NewProvider(config) // ai.Provider
//
// Mock constructors return concrete types instead, exposing the fields
// and counters tests poke at:
//
//	completer := mock.NewMockCompleter() // *mock.MockCompleter
//	completer.CompleteFunc = ...
//	calls := completer.CallCount()
//
// mock.NewMockProvider returns ai.Provider like the production entry
// point does; GetMockCompleter and GetMockJustifier recover the concrete
// doubles when a test needs them.
//
// # Usage
//
//	config := ai.DefaultConfig()
//	provider, err := openai.NewProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	reply, err := provider.Completer().Complete(ctx, system, "movies like Alien")
package ai
