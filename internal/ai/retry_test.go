package ai

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRetrySucceedsWithoutSleeping(t *testing.T) {
	var slept []time.Duration
	err := RetryWithBackoff(context.Background(), func() error {
		return nil
	}, 3, 600*time.Millisecond, func(d time.Duration) { slept = append(slept, d) })
	require.NoError(t, err)
	require.Empty(t, slept)
}

func TestRetryDoublesDelayBetweenAttempts(t *testing.T) {
	var slept []time.Duration
	calls := 0
	err := RetryWithBackoff(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	}, 3, 600*time.Millisecond, func(d time.Duration) { slept = append(slept, d) })
	require.NoError(t, err)
	require.Equal(t, 3, calls)
	require.Equal(t, []time.Duration{600 * time.Millisecond, 1200 * time.Millisecond}, slept)
}

func TestRetryReturnsLastErrorOnExhaustion(t *testing.T) {
	var slept []time.Duration
	wantErr := errors.New("still down")
	calls := 0
	err := RetryWithBackoff(context.Background(), func() error {
		calls++
		return wantErr
	}, 3, 10*time.Millisecond, func(d time.Duration) { slept = append(slept, d) })
	require.ErrorIs(t, err, wantErr)
	require.Equal(t, 3, calls)
	require.Len(t, slept, 2)
}

func TestRetryStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	calls := 0
	err := RetryWithBackoff(ctx, func() error {
		calls++
		return errors.New("never seen")
	}, 3, time.Millisecond, func(time.Duration) {})
	require.ErrorIs(t, err, context.Canceled)
	require.Zero(t, calls)
}
