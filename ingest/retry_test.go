package ingest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flaky returns an operation that fails the first failures times it is
// called, tracking invocations in calls.
func flaky(failures int, calls *int) func() error {
	return func() error {
		*calls++
		if *calls <= failures {
			return errors.New("store unavailable")
		}
		return nil
	}
}

func TestRetryWithBackoff_FirstAttemptSucceeds(t *testing.T) {
	calls := 0
	err := RetryWithBackoff(context.Background(), flaky(0, &calls), 3, 5*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestRetryWithBackoff_RecoversWithinBudget(t *testing.T) {
	calls := 0
	err := RetryWithBackoff(context.Background(), flaky(2, &calls), 5, 5*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryWithBackoff_ReturnsLastError(t *testing.T) {
	wantErr := errors.New("write stalled")
	calls := 0
	op := func() error {
		calls++
		return wantErr
	}

	err := RetryWithBackoff(context.Background(), op, 3, 5*time.Millisecond)
	assert.Equal(t, wantErr, err)
	assert.Equal(t, 3, calls, "gives up after exactly three attempts")
}

func TestRetryWithBackoff_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	calls := 0
	op := func() error {
		calls++
		if calls == 2 {
			cancel()
		}
		return errors.New("still down")
	}

	err := RetryWithBackoff(ctx, op, 10, 5*time.Millisecond)
	assert.ErrorIs(t, err, context.Canceled)
	assert.LessOrEqual(t, calls, 2, "cancellation preempts remaining attempts")
}

func TestRetryWithBackoff_InvalidMaxAttempts(t *testing.T) {
	calls := 0
	op := func() error {
		calls++
		return nil
	}

	for _, n := range []int{0, -1} {
		err := RetryWithBackoff(context.Background(), op, n, 5*time.Millisecond)
		assert.ErrorIs(t, err, ErrInvalidMaxAttempts)
	}
	assert.Equal(t, 0, calls, "operation must not run")
}
