package intent

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/poiesic/cinerec/ai/mock"
	"github.com/poiesic/cinerec/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig(attempts int) *Config {
	return NewConfig(WithMaxAttempts(attempts), WithRetryDelay(0))
}

func TestNewExtractor(t *testing.T) {
	completer := mock.NewMockCompleter()

	t.Run("valid configuration", func(t *testing.T) {
		extractor, err := NewExtractor(completer, DefaultConfig())
		require.NoError(t, err)
		assert.NotNil(t, extractor)
	})

	t.Run("nil config falls back to defaults", func(t *testing.T) {
		extractor, err := NewExtractor(completer, nil)
		require.NoError(t, err)
		assert.NotNil(t, extractor)
	})

	t.Run("with custom logger", func(t *testing.T) {
		extractor, err := NewExtractor(completer, DefaultConfig(), WithLogger(slog.Default()))
		require.NoError(t, err)
		assert.NotNil(t, extractor)
	})

	t.Run("with nil logger falls back to default", func(t *testing.T) {
		extractor, err := NewExtractor(completer, DefaultConfig(), WithLogger(nil))
		require.NoError(t, err)
		assert.NotNil(t, extractor)
	})

	t.Run("with custom genres", func(t *testing.T) {
		extractor, err := NewExtractor(completer, DefaultConfig(), WithGenres([]string{"horror", "comedy"}))
		require.NoError(t, err)
		assert.NotNil(t, extractor)
	})

	t.Run("nil completer", func(t *testing.T) {
		_, err := NewExtractor(nil, DefaultConfig())
		assert.Equal(t, ErrCompleterRequired, err)
	})

	t.Run("invalid config", func(t *testing.T) {
		_, err := NewExtractor(completer, NewConfig(WithMaxAttempts(0)))
		assert.Error(t, err)
	})
}

func TestExtract_WellFormedReply(t *testing.T) {
	completer := mock.NewMockCompleter()
	completer.CompleteFunc = func(ctx context.Context, system, user string) (string, error) {
		return `{"title": null, "genres": ["horror"], "keywords": ["zombie", "survival"]}`, nil
	}

	extractor, err := NewExtractor(completer, fastConfig(3))
	require.NoError(t, err)

	intent, err := extractor.Extract(context.Background(), "scary zombie survival movie")
	require.NoError(t, err)
	assert.Equal(t, []string{"horror"}, intent.Genres)
	assert.Equal(t, []string{"zombie", "survival"}, intent.Keywords)
	assert.Equal(t, 1, completer.CallCount(), "well-formed reply should not trigger retries")
}

func TestExtract_RecoversFencedReplyWithoutRetry(t *testing.T) {
	completer := mock.NewMockCompleter()
	completer.CompleteFunc = func(ctx context.Context, system, user string) (string, error) {
		return "```json\n{\"title\": \"The Matrix\", \"genres\": [], \"keywords\": []}\n```", nil
	}

	extractor, err := NewExtractor(completer, fastConfig(3))
	require.NoError(t, err)

	intent, err := extractor.Extract(context.Background(), "movies like The Matrix")
	require.NoError(t, err)
	assert.Equal(t, "The Matrix", intent.Title)
	assert.Equal(t, 1, completer.CallCount(), "fences should be recovered in-attempt, not retried")
}

func TestExtract_RetryPromptNamesTheFailure(t *testing.T) {
	completer := mock.NewMockCompleter()

	var systemPrompts []string
	completer.CompleteFunc = func(ctx context.Context, system, user string) (string, error) {
		systemPrompts = append(systemPrompts, system)
		if len(systemPrompts) == 1 {
			return "I cannot help with that.", nil
		}
		return `{"title": null, "genres": ["comedy"], "keywords": []}`, nil
	}

	extractor, err := NewExtractor(completer, fastConfig(3))
	require.NoError(t, err)

	intent, err := extractor.Extract(context.Background(), "something funny")
	require.NoError(t, err)
	assert.Equal(t, []string{"comedy"}, intent.Genres)

	require.Len(t, systemPrompts, 2)
	assert.NotContains(t, systemPrompts[0], "PREVIOUS ATTEMPT FAILED")
	assert.Contains(t, systemPrompts[1], "PREVIOUS ATTEMPT FAILED")
	assert.Contains(t, systemPrompts[1], "JSON", "retry prompt should restate the required shape")
}

func TestExtract_BudgetExhausted(t *testing.T) {
	completer := mock.NewMockCompleter()
	completer.CompleteFunc = func(ctx context.Context, system, user string) (string, error) {
		return "I cannot help with that.", nil
	}

	extractor, err := NewExtractor(completer, fastConfig(3))
	require.NoError(t, err)

	_, err = extractor.Extract(context.Background(), "anything at all")
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrExtractionFailed))
	assert.Equal(t, 3, completer.CallCount(), "budget must be spent exactly, never exceeded")
}

func TestExtract_EmptyIntentConsumesAttempt(t *testing.T) {
	completer := mock.NewMockCompleter()
	completer.CompleteFunc = func(ctx context.Context, system, user string) (string, error) {
		// Well-formed JSON carrying nothing to search on.
		return `{"title": null, "genres": [], "keywords": []}`, nil
	}

	extractor, err := NewExtractor(completer, fastConfig(2))
	require.NoError(t, err)

	_, err = extractor.Extract(context.Background(), "recommend me something")
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrExtractionFailed))
	assert.True(t, errors.Is(err, core.ErrEmptyIntent))
	assert.Equal(t, 2, completer.CallCount())
}

func TestExtract_TransportErrorFoldedIntoRetries(t *testing.T) {
	completer := mock.NewMockCompleter()

	calls := 0
	completer.CompleteFunc = func(ctx context.Context, system, user string) (string, error) {
		calls++
		if calls == 1 {
			return "", errors.New("connection refused")
		}
		return `{"title": null, "genres": ["drama"], "keywords": []}`, nil
	}

	extractor, err := NewExtractor(completer, fastConfig(3))
	require.NoError(t, err)

	intent, err := extractor.Extract(context.Background(), "a sad movie")
	require.NoError(t, err)
	assert.Equal(t, []string{"drama"}, intent.Genres)
	assert.Equal(t, 2, completer.CallCount())
}

func TestExtract_TransportErrorSurfacesAfterBudget(t *testing.T) {
	completer := mock.NewMockCompleter()
	completer.CompleteFunc = func(ctx context.Context, system, user string) (string, error) {
		return "", errors.New("connection refused")
	}

	extractor, err := NewExtractor(completer, fastConfig(2))
	require.NoError(t, err)

	_, err = extractor.Extract(context.Background(), "a sad movie")
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrExtractionFailed))
	assert.Contains(t, err.Error(), "connection refused")
}

func TestExtract_ContextCancellationIsTerminal(t *testing.T) {
	completer := mock.NewMockCompleter()
	completer.CompleteFunc = func(ctx context.Context, system, user string) (string, error) {
		return "", context.Canceled
	}

	extractor, err := NewExtractor(completer, fastConfig(3))
	require.NoError(t, err)

	_, err = extractor.Extract(context.Background(), "anything")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.False(t, errors.Is(err, core.ErrExtractionFailed), "cancellation is not an extraction failure")
	assert.Equal(t, 1, completer.CallCount(), "cancellation must stop the retry loop")
}

func TestExtract_BlankRequest(t *testing.T) {
	completer := mock.NewMockCompleter()
	extractor, err := NewExtractor(completer, fastConfig(3))
	require.NoError(t, err)

	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := extractor.Extract(context.Background(), text)
		require.Error(t, err)
		assert.True(t, errors.Is(err, core.ErrInvalidInput))
	}
	assert.Equal(t, 0, completer.CallCount(), "blank input must never reach the model")
}

func TestExtract_EmptyModelReplyRetries(t *testing.T) {
	completer := mock.NewMockCompleter()

	calls := 0
	completer.CompleteFunc = func(ctx context.Context, system, user string) (string, error) {
		calls++
		if calls == 1 {
			// The provider returns an empty reply when the model gives no choices.
			return "", nil
		}
		return `{"title": null, "genres": ["war"], "keywords": []}`, nil
	}

	extractor, err := NewExtractor(completer, fastConfig(3))
	require.NoError(t, err)

	intent, err := extractor.Extract(context.Background(), "world war two epic")
	require.NoError(t, err)
	assert.Equal(t, []string{"war"}, intent.Genres)
	assert.Equal(t, 2, completer.CallCount())
}

func TestExtract_DefaultMockBehavior(t *testing.T) {
	completer := mock.NewMockCompleter()
	extractor, err := NewExtractor(completer, fastConfig(3))
	require.NoError(t, err)

	intent, err := extractor.Extract(context.Background(), "gritty heist thriller")
	require.NoError(t, err)
	assert.NotEmpty(t, intent.Keywords)
}
