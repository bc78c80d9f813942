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


// Package recommend ranks the movie catalog against structured intents.
//
// The Engine type routes each intent to one of two strategies:
//   - Title: anchor the request to the named catalog movie and score every
//     other movie against the anchor's genres and keywords
//   - Category: score every movie against the intent's own genres and keywords
//
// A candidate's score is the weighted sum of its genre and keyword overlap
// ratios with the reference attributes. Results are ordered by score with
// vote average, popularity, and title as tie-breaks, truncated to a
// configured top-K, and carry the matched attributes that earned each slot.
//
// Scoring is fully deterministic. The language model never participates in
// retrieval or ranking.
package recommend
