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


// Package catalog provides the storage abstraction layer for the movie catalog.
//
// This package defines the Store interface that decouples catalog storage from
// the recommendation logic, allowing different backends (BadgerDB, in-memory,
// etc.) to be used interchangeably.
//
// # Identity
//
// Movie IDs are content-addressed: an ID is a hash of the movie's title, so a
// title always maps to the same row and ingesting a catalog twice is
// idempotent. See core.IDFromTitle.
//
// # Usage
//
// Create a store instance:
//
//	store, err := badger.NewMovieStore(backend)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer store.Close()
//
// Use in tests with in-memory storage:
//
//	store, err := badger.NewMemoryStore()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer store.Close()
//
// # Thread Safety
//
// All store implementations must be thread-safe and support concurrent
// access from multiple goroutines.
//
// # Context Support
//
// All store methods accept context.Context for cancellation and timeout
// support. Pass context.Background() for operations without specific timeout
// requirements.
package catalog
