package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTemporary = errors.New("temporary")

func TestDoVal_SuccessOnFirstAttempt(t *testing.T) {
	calls := 0
	val, attempts, err := DoVal(context.Background(), RetryConfig{MaxAttempts: 3}, func(_ context.Context, _ int) (string, error) {
		calls++
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", val)
	assert.Equal(t, 1, attempts)
	assert.Equal(t, 1, calls)
}

func TestDoVal_SuccessAfterRetry(t *testing.T) {
	var retried []int
	cfg := RetryConfig{
		MaxAttempts: 3,
		Delay:       time.Millisecond,
		OnRetry:     func(attempt int, _ error) { retried = append(retried, attempt) },
	}

	val, attempts, err := DoVal(context.Background(), cfg, func(_ context.Context, attempt int) (int, error) {
		if attempt < 3 {
			return 0, errTemporary
		}
		return 42, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 42, val)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, []int{1, 2}, retried)
}

func TestDoVal_ExhaustsAttempts(t *testing.T) {
	calls := 0
	cfg := RetryConfig{MaxAttempts: 3, Delay: time.Millisecond}

	_, attempts, err := DoVal(context.Background(), cfg, func(_ context.Context, _ int) (struct{}, error) {
		calls++
		return struct{}{}, errTemporary
	})

	assert.ErrorIs(t, err, errTemporary)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, 3, calls)
}

func TestDoVal_NonRetryableStopsImmediately(t *testing.T) {
	permanent := errors.New("permanent")
	calls := 0
	cfg := RetryConfig{
		MaxAttempts: 5,
		Delay:       time.Millisecond,
		ShouldRetry: func(err error) bool { return !errors.Is(err, permanent) },
	}

	_, attempts, err := DoVal(context.Background(), cfg, func(_ context.Context, _ int) (int, error) {
		calls++
		return 0, permanent
	})

	assert.ErrorIs(t, err, permanent)
	assert.Equal(t, 1, attempts)
	assert.Equal(t, 1, calls)
}

func TestDoVal_CancelDuringSleep(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := RetryConfig{
		MaxAttempts: 3,
		Delay:       time.Hour,
		OnRetry:     func(int, error) { cancel() },
	}

	start := time.Now()
	_, attempts, err := DoVal(ctx, cfg, func(_ context.Context, _ int) (int, error) {
		return 0, errTemporary
	})

	assert.ErrorIs(t, err, errTemporary)
	assert.Equal(t, 1, attempts)
	assert.Less(t, time.Since(start), time.Minute)
}

func TestDoVal_DefaultsMaxAttempts(t *testing.T) {
	calls := 0
	_, attempts, _ := DoVal(context.Background(), RetryConfig{}, func(_ context.Context, _ int) (int, error) {
		calls++
		return 0, errTemporary
	})

	assert.Equal(t, 3, attempts)
	assert.Equal(t, 3, calls)
}
