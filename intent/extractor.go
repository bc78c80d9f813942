package intent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/poiesic/cinerec/ai"
	"github.com/poiesic/cinerec/core"
)

// Extractor turns free-form requests into structured intents. It owns the
// full retry and recovery budget, so callers downstream only ever see a
// validated intent or a terminal error.
type Extractor struct {
	completer ai.TextCompleter
	config    *Config
	genres    []string
	logger    *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// WithGenres sets the genre vocabulary offered to the model.
// Default is the canonical genre list.
func WithGenres(genres []string) Option {
	return func(e *Extractor) error {
		e.genres = genres
		return nil
	}
}

// NewExtractor creates a new extractor backed by the given completer.
func NewExtractor(completer ai.TextCompleter, config *Config, opts ...Option) (*Extractor, error) {
	if completer == nil {
		return nil, ErrCompleterRequired
	}
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	e := &Extractor{
		completer: completer,
		config:    config,
		logger:    slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// Extract derives a structured intent from raw request text. Malformed
// model replies are recovered or retried up to the configured attempt
// budget; each retry tells the model what was wrong with its last reply.
// Exhausting the budget returns an error wrapping core.ErrExtractionFailed.
func (e *Extractor) Extract(ctx context.Context, rawText string) (*core.Intent, error) {
	if err := core.ValidateRequest(rawText); err != nil {
		return nil, err
	}

	systemPrompt := buildSystemPrompt(e.genres)

	var lastErr error
	for attempt := 1; attempt <= e.config.MaxAttempts; attempt++ {
		if attempt > 1 {
			if err := e.wait(ctx); err != nil {
				return nil, err
			}
			systemPrompt = buildRetryPrompt(e.genres, lastErr.Error())
		}

		reply, err := e.completer.Complete(ctx, systemPrompt, rawText)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			lastErr = fmt.Errorf("model call failed: %w", err)
			e.logger.Warn("intent extraction attempt failed", "attempt", attempt, "err", err)
			continue
		}

		intent, err := ParseReply(reply)
		if err != nil {
			lastErr = err
			e.logger.Warn("could not recover intent from reply", "attempt", attempt, "err", err)
			continue
		}

		e.logger.Debug("intent extracted",
			"attempt", attempt,
			"title", intent.Title,
			"genres", len(intent.Genres),
			"keywords", len(intent.Keywords))
		return intent, nil
	}

	return nil, fmt.Errorf("%w: %w", core.ErrExtractionFailed, lastErr)
}

// wait sleeps for the configured retry delay, aborting early if the context
// is cancelled.
func (e *Extractor) wait(ctx context.Context) error {
	if e.config.RetryDelay <= 0 {
		return nil
	}

	timer := time.NewTimer(e.config.RetryDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
