package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/cinerec/catalog"
	"github.com/poiesic/cinerec/core"
)

// Column names recognized in the csv header. Matching is case
// insensitive and extra columns are ignored.
const (
	columnTitle       = "title"
	columnGenres      = "genres"
	columnKeywords    = "keywords"
	columnOverview    = "overview"
	columnPopularity  = "popularity"
	columnVoteAverage = "vote_average"
	columnVoteCount   = "vote_count"
)

const (
	defaultBatchSize = 256

	// Retry policy for contended store writes
	writeAttempts  = 5
	writeBaseDelay = 50 * time.Millisecond
)

// Loader reads movie catalog exports in csv form and writes them to a
// catalog store. Rows are parsed on the calling goroutine and written
// in batches by a worker pool.
type Loader struct {
	store     catalog.Store
	pool      *ants.Pool
	batchSize int
	logger    *slog.Logger
}

// Option configures a Loader.
type Option func(*Loader) error

// WithPoolSize sets the worker pool size for concurrent batch writes.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(l *Loader) error {
		if size < 1 {
			size = 1
		}

		// Release old pool
		if l.pool != nil {
			l.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}

		l.pool = pool
		return nil
	}
}

// WithBatchSize sets how many rows are grouped into one write
// transaction. Default is 256.
func WithBatchSize(size int) Option {
	return func(l *Loader) error {
		if size < 1 {
			size = 1
		}
		l.batchSize = size
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) error {
		if logger == nil {
			logger = slog.Default()
		}
		l.logger = logger
		return nil
	}
}

// NewLoader creates a new catalog loader.
func NewLoader(store catalog.Store, opts ...Option) (*Loader, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}

	// Default pool size
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	l := &Loader{
		store:     store,
		pool:      pool,
		batchSize: defaultBatchSize,
		logger:    slog.Default(),
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(l); optErr != nil {
			l.Release()
			return nil, optErr
		}
	}

	return l, nil
}

// Stats summarizes a completed load.
type Stats struct {
	Rows    int // data rows read from the file
	Loaded  int // movies written to the store
	Skipped int // rows dropped for a missing title or vote average
}

// LoadCSV reads a movie catalog export and writes its rows to the
// store. The first record must be a header row naming at least the
// title and vote_average columns. Rows missing either value are
// counted as skipped, not treated as fatal. Batch write failures are
// logged and surface as a shortfall in the returned Loaded count.
//
// tracker may be nil. When provided it is incremented as batches land,
// not as rows are parsed.
func (l *Loader) LoadCSV(ctx context.Context, r io.Reader, tracker *ProgressTracker) (*Stats, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("could not read csv header: %w", err)
	}

	columns, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	var (
		wg     sync.WaitGroup
		loaded atomic.Int64
		stats  Stats
	)

	flush := func(movies []*core.Movie) error {
		wg.Add(1)
		submitErr := l.pool.Submit(func() {
			defer wg.Done()
			l.writeBatch(ctx, movies, &loaded, tracker)
		})
		if submitErr != nil {
			wg.Done()
			return submitErr
		}
		return nil
	}

	batch := make([]*core.Movie, 0, l.batchSize)
	for {
		if ctxErr := ctx.Err(); ctxErr != nil {
			wg.Wait()
			return nil, ctxErr
		}

		record, readErr := reader.Read()
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			wg.Wait()
			return nil, fmt.Errorf("could not read csv row: %w", readErr)
		}

		stats.Rows++
		movie, ok := parseRow(record, columns)
		if !ok {
			stats.Skipped++
			continue
		}

		batch = append(batch, movie)
		if len(batch) >= l.batchSize {
			if flushErr := flush(batch); flushErr != nil {
				wg.Wait()
				return nil, flushErr
			}
			batch = make([]*core.Movie, 0, l.batchSize)
		}
	}

	if len(batch) > 0 {
		if flushErr := flush(batch); flushErr != nil {
			wg.Wait()
			return nil, flushErr
		}
	}

	wg.Wait()

	stats.Loaded = int(loaded.Load())
	l.logger.Info("catalog load complete",
		"rows", stats.Rows, "loaded", stats.Loaded, "skipped", stats.Skipped)
	return &stats, nil
}

// writeBatch stores one batch of movies, retrying transient failures.
func (l *Loader) writeBatch(ctx context.Context, movies []*core.Movie, loaded *atomic.Int64, tracker *ProgressTracker) {
	err := RetryWithBackoff(ctx, func() error {
		_, addErr := l.store.AddMovies(ctx, movies...)
		return addErr
	}, writeAttempts, writeBaseDelay)
	if err != nil {
		l.logger.Error("error writing catalog batch", "size", len(movies), "err", err)
		return
	}

	loaded.Add(int64(len(movies)))
	if tracker != nil {
		tracker.Increment(len(movies))
	}
}

// Release releases the worker pool.
// The loader should not be used after calling Release.
func (l *Loader) Release() {
	if l.pool != nil {
		l.pool.Release()
	}
}

// mapColumns indexes the header row by lowercased column name and
// verifies the required columns are present.
func mapColumns(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}

	for _, required := range []string{columnTitle, columnVoteAverage} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, required)
		}
	}

	return columns, nil
}

// parseRow converts one csv record into a movie. Returns false when
// the row lacks a title or a parseable vote average.
func parseRow(record []string, columns map[string]int) (*core.Movie, bool) {
	field := func(name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	title := field(columnTitle)
	if title == "" {
		return nil, false
	}

	voteAverage, err := strconv.ParseFloat(field(columnVoteAverage), 64)
	if err != nil {
		return nil, false
	}

	movie := &core.Movie{
		Title:       title,
		Genres:      splitList(field(columnGenres)),
		Keywords:    splitList(field(columnKeywords)),
		Overview:    field(columnOverview),
		VoteAverage: voteAverage,
	}

	if popularity, perr := strconv.ParseFloat(field(columnPopularity), 64); perr == nil {
		movie.Popularity = popularity
	}
	if voteCount, verr := strconv.ParseUint(field(columnVoteCount), 10, 64); verr == nil {
		movie.VoteCount = voteCount
	}

	return movie, true
}

// splitList parses a comma separated cell into trimmed terms.
// Empty cells produce an empty slice.
func splitList(cell string) []string {
	if cell == "" {
		return []string{}
	}

	parts := strings.Split(cell, ",")
	terms := make([]string, 0, len(parts))
	for _, part := range parts {
		term := strings.TrimSpace(part)
		if term == "" {
			continue
		}
		terms = append(terms, term)
	}

	return terms
}
