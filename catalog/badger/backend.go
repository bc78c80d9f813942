package badger

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
)

// Backend owns the BadgerDB instance holding the movie catalog and
// exposes the transaction primitives MovieStore is built on.
type Backend struct {
	db     *badger.DB
	logger *slog.Logger
}

// dbLogger routes Badger's internal logging through slog, trimming the
// trailing newline Badger appends to every message.
type dbLogger struct {
	logger *slog.Logger
}

var _ badger.Logger = (*dbLogger)(nil)

func (l *dbLogger) Errorf(format string, args ...any) {
	l.logger.Error(strings.TrimRight(fmt.Sprintf(format, args...), "\n"))
}

func (l *dbLogger) Warningf(format string, args ...any) {
	l.logger.Warn(strings.TrimRight(fmt.Sprintf(format, args...), "\n"))
}

func (l *dbLogger) Infof(format string, args ...any) {
	l.logger.Info(strings.TrimRight(fmt.Sprintf(format, args...), "\n"))
}

func (l *dbLogger) Debugf(format string, args ...any) {
	l.logger.Debug(strings.TrimRight(fmt.Sprintf(format, args...), "\n"))
}

// ensureDir makes sure path names a directory, creating it when absent.
func ensureDir(path string) error {
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return os.MkdirAll(path, 0o755)
	case err != nil:
		return err
	case !info.IsDir():
		return fmt.Errorf("%s exists and is not a directory", path)
	}
	return nil
}

// OpenBackend opens the catalog database rooted at filePath, creating
// the directory on first use. With inMemory set, state lives on the
// heap and vanishes on Close.
func OpenBackend(filePath string, inMemory bool) (*Backend, error) {
	logger := slog.Default().With("component", "catalog-db")

	var opts badger.Options
	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := ensureDir(filePath); err != nil {
			return nil, err
		}
		opts = badger.DefaultOptions(filePath)
	}

	opts.Logger = &dbLogger{logger: logger}
	// Values are short mus-encoded records, stored uncompressed.
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	logger.Debug("catalog database opened", "path", filePath, "in_memory", inMemory)

	return &Backend{db: db, logger: logger}, nil
}

// Close releases the underlying Badger instance.
func (b *Backend) Close() error {
	b.logger.Debug("closing catalog database")
	return b.db.Close()
}

// IsClosed reports whether Close has already run.
func (b *Backend) IsClosed() bool {
	return b.db.IsClosed()
}

// WithTx runs fn inside a Badger transaction. The transaction is
// discarded on return, so write transactions must commit before fn
// returns.
func (b *Backend) WithTx(fn func(tx *badger.Txn) error, isWrite bool) error {
	tx := b.db.NewTransaction(isWrite)
	defer tx.Discard()
	return fn(tx)
}

// WithTransaction satisfies the store-level transaction hook. fn runs
// first and the surrounding write transaction commits only when fn
// succeeds.
func (b *Backend) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return b.WithTx(func(tx *badger.Txn) error {
		if err := fn(ctx); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}
