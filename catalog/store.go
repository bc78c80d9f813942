package catalog

import (
	"context"

	"github.com/poiesic/cinerec/core"
)

// Store provides operations for managing the movie catalog.
// Implementations must be thread-safe and support concurrent access.
type Store interface {
	// AddMovies adds one or more movies to storage.
	// IDs are derived from titles, so re-adding a title overwrites its row.
	// Returns the movies with IDs populated.
	AddMovies(ctx context.Context, movies ...*core.Movie) ([]*core.Movie, error)

	// GetMovie retrieves a single movie by ID.
	// Returns ErrNotFound if the movie doesn't exist.
	GetMovie(ctx context.Context, id core.ID) (*core.Movie, error)

	// GetMovies retrieves multiple movies by their IDs.
	// Returns only the movies that exist (no error for missing movies).
	GetMovies(ctx context.Context, ids ...core.ID) ([]*core.Movie, error)

	// AllMovies retrieves every movie in the catalog.
	// Order is unspecified.
	AllMovies(ctx context.Context) ([]*core.Movie, error)

	// DeleteMovies removes movies by their IDs.
	// Returns ErrNotFound if any movie doesn't exist.
	DeleteMovies(ctx context.Context, ids ...core.ID) error

	// Genres returns the distinct genres present in the catalog,
	// lowercased and sorted. This is the master vocabulary handed to
	// the extraction prompt.
	Genres(ctx context.Context) ([]string, error)

	// CountMovies returns the number of movies in the catalog.
	CountMovies(ctx context.Context) (int, error)

	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}
