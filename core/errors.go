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

import "errors"

// Domain errors
var (
	// ErrInvalidInput indicates the raw request was empty or blank.
	// It is raised before any model call and the caller may re-prompt.
	ErrInvalidInput = errors.New("invalid input")

	// ErrExtractionFailed indicates the resilience layer exhausted its
	// parse heuristics and retry budget. Terminal for the request.
	ErrExtractionFailed = errors.New("intent extraction failed")

	// ErrEmptyIntent indicates a parsed intent carried no title, genres,
	// or keywords and therefore gives the engine nothing to search on.
	ErrEmptyIntent = errors.New("intent has no title, genres, or keywords")

	// ErrInvalidIntent indicates an Intent failed validation.
	ErrInvalidIntent = errors.New("invalid intent")

	// ErrInvalidMovie indicates a Movie failed validation.
	ErrInvalidMovie = errors.New("invalid movie")

	// ErrEmptyTitle indicates the movie Title field is empty.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrShortBuffer indicates serialized data ended before a complete
	// record was decoded.
	ErrShortBuffer = errors.New("serialized data too short")
)
