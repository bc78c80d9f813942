package badger

import (
	"context"
	"sort"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/poiesic/cinerec/catalog"
	"github.com/poiesic/cinerec/core"
)

// MovieStore implements catalog.Store for BadgerDB.
type MovieStore struct {
	backend *Backend
}

var _ catalog.Store = (*MovieStore)(nil)

// NewMovieStore creates a new MovieStore over the given backend.
// Closing the store closes the backend.
func NewMovieStore(backend *Backend) (*MovieStore, error) {
	if backend == nil {
		return nil, catalog.ErrStorageClosed
	}
	return &MovieStore{backend: backend}, nil
}

// Close closes the underlying backend.
func (s *MovieStore) Close() error {
	return s.backend.Close()
}

// WithTransaction delegates to the backend.
func (s *MovieStore) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.backend.WithTransaction(ctx, fn)
}

// AddMovies adds one or more movies to storage.
// Each movie's ID is derived from its title, so adding the same title twice
// overwrites the earlier row instead of duplicating it.
func (s *MovieStore) AddMovies(ctx context.Context, movies ...*core.Movie) ([]*core.Movie, error) {
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		for _, movie := range movies {
			if err := core.ValidateMovie(movie); err != nil {
				return err
			}
			movie.Id = core.IDFromTitle(movie.Title)

			key := makeMovieKey(movie.Id)
			value := catalog.MarshalMovie(movie)
			if err := tx.Set(key, value); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return movies, err
}

// GetMovie retrieves a single movie by ID.
func (s *MovieStore) GetMovie(ctx context.Context, id core.ID) (*core.Movie, error) {
	var result *core.Movie
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readMovie(tx, makeMovieKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return catalog.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetMovies retrieves multiple movies by their IDs.
// Missing movies are skipped without error.
func (s *MovieStore) GetMovies(ctx context.Context, ids ...core.ID) ([]*core.Movie, error) {
	var result []*core.Movie
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			movie, err := readMovie(tx, makeMovieKey(id))
			if err != nil {
				return err
			}
			if movie != nil {
				result = append(result, movie)
			}
		}
		return nil
	}, false)
	return result, err
}

// AllMovies retrieves every movie in the catalog.
func (s *MovieStore) AllMovies(ctx context.Context) ([]*core.Movie, error) {
	var result []*core.Movie
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = movieScanPrefix()
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var movie *core.Movie
			err := iter.Item().Value(func(val []byte) error {
				var err error
				movie, err = catalog.UnmarshalMovie(val)
				return err
			})
			if err != nil {
				return err
			}
			if movie != nil {
				result = append(result, movie)
			}
		}
		return nil
	}, false)
	return result, err
}

// DeleteMovies removes movies by their IDs.
func (s *MovieStore) DeleteMovies(ctx context.Context, ids ...core.ID) error {
	return s.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeMovieKey(id)

			movie, err := readMovie(tx, key)
			if err != nil {
				return err
			}
			if movie == nil {
				return catalog.ErrNotFound
			}

			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// Genres returns the distinct genres present in the catalog, sorted.
func (s *MovieStore) Genres(ctx context.Context) ([]string, error) {
	seen := make(map[string]struct{})
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = movieScanPrefix()
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(val []byte) error {
				movie, err := catalog.UnmarshalMovie(val)
				if err != nil {
					return err
				}
				for _, genre := range movie.Genres {
					genre = strings.ToLower(strings.TrimSpace(genre))
					if genre == "" {
						continue
					}
					seen[genre] = struct{}{}
				}
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	genres := make([]string, 0, len(seen))
	for genre := range seen {
		genres = append(genres, genre)
	}
	sort.Strings(genres)
	return genres, nil
}

// CountMovies returns the number of movies in the catalog.
func (s *MovieStore) CountMovies(ctx context.Context) (int, error) {
	count := 0
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = movieScanPrefix()
		// Keys are enough for counting
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	return count, err
}

// readMovie reads a movie from the transaction.
// Returns nil without error when the key does not exist.
func readMovie(tx *badger.Txn, key []byte) (*core.Movie, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var movie *core.Movie
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		movie, unmarshalErr = catalog.UnmarshalMovie(val)
		return unmarshalErr
	})
	return movie, err
}
