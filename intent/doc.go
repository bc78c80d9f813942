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


// Package intent turns free-form movie requests into structured intents.
//
// The Extractor type is the single resilience boundary around the language
// model. Model replies are unreliable by nature, so parsing walks a ladder
// of recovery heuristics, from a strict JSON decode down to scavenging
// field values out of free text:
//   - Strict decode of a bare JSON object
//   - Markdown fence stripping
//   - Balanced-fragment extraction from surrounding prose
//   - Structural repair of mangled keys
//   - Regex and vocabulary scavenging
//
// When every heuristic fails, the extractor retries with an augmented
// prompt that tells the model what was wrong with its last reply, up to a
// configured attempt budget. Everything downstream of this package works
// with validated intents and stays fully deterministic.
package intent
