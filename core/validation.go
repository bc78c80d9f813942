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


package core

import (
	"fmt"
	"strings"
)

// ValidateRequest validates raw user input before any model call is made.
//
// Validation rules:
//   - text must contain at least one non-whitespace character
func ValidateRequest(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: request text is empty", ErrInvalidInput)
	}
	return nil
}

// ValidateIntent validates an Intent according to domain rules.
//
// Validation rules:
//   - at least one of Title, Genres, Keywords must be non-empty
//
// An intent that fails this check is treated as a failed extraction by the
// resilience layer, since it gives the retrieval engine nothing to search on.
func ValidateIntent(intent *Intent) error {
	if intent == nil {
		return fmt.Errorf("%w: intent is nil", ErrInvalidIntent)
	}

	if intent.IsEmpty() {
		return fmt.Errorf("%w: %w", ErrInvalidIntent, ErrEmptyIntent)
	}

	return nil
}

// ValidateMovie validates a Movie according to domain rules.
//
// Validation rules:
//   - Title must not be empty
//
// NOT validated:
//   - Genres/Keywords (catalog rows legitimately carry empty sets)
//   - ID (0 is a valid hash value)
func ValidateMovie(movie *Movie) error {
	if movie == nil {
		return fmt.Errorf("%w: movie is nil", ErrInvalidMovie)
	}

	if strings.TrimSpace(movie.Title) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidMovie, ErrEmptyTitle)
	}

	return nil
}
