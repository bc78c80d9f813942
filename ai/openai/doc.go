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


// Package openai implements the ai.Provider interface on top of any
// OpenAI-compatible chat completion API.
//
// The provider talks to the service through the langchaingo client, so
// it works with OpenAI itself as well as local runtimes that expose the
// same API surface (Ollama, LocalAI, vLLM).
//
// # Usage
//
//	config := ai.NewConfig(
//	    ai.WithHost("http://localhost:11434"), // /v1 is appended automatically
//	    ai.WithExtractorModel("qwen3:4b"),
//	    ai.WithAnalystModel("qwen3:14b"),
//	)
//
//	provider, err := openai.NewProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	reply, err := provider.Completer().Complete(ctx, system, "something scary set in space")
//	pitches, err := provider.Justifier().Justify(ctx, request, candidates)
package openai
