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


package catalog

import "errors"

var (
	// ErrNotFound is returned when a movie ID has no catalog entry.
	ErrNotFound = errors.New("movie not in catalog")

	// ErrStorageClosed is returned by operations on a closed store.
	ErrStorageClosed = errors.New("catalog store is closed")

	// ErrSerializationFailed wraps encode and decode failures for
	// stored movie records.
	ErrSerializationFailed = errors.New("movie serialization failed")
)
