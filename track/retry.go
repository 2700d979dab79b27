package track

import (
	"context"
	"errors"
	"time"

	"github.com/fwojciec/faretrack"
)

// FetchFunc is the signature for a results fetch function.
type FetchFunc func(ctx context.Context, trip *faretrack.TripConfig) (string, error)

// LogFunc is the signature for a logging function.
type LogFunc func(format string, args ...any)

// RetryDelays returns n backoff delays starting at 2s and doubling.
func RetryDelays(n int) []time.Duration {
	delays := make([]time.Duration, 0, max(n, 0))
	d := 2 * time.Second
	for range n {
		delays = append(delays, d)
		d *= 2
	}
	return delays
}

// FetchWithRetryDelays calls fetch, retrying after each delay when the
// failure is retryable. Invalid trips and cancellation are not retried.
// With no delays fetch is called exactly once.
func FetchWithRetryDelays(ctx context.Context, trip *faretrack.TripConfig, fetch FetchFunc, logger LogFunc, delays []time.Duration) (string, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		html, err := fetch(ctx, trip)
		if err == nil {
			return html, nil
		}
		lastErr = err

		if attempt >= maxAttempts-1 || !retryable(err) {
			break
		}

		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		if logger != nil {
			logger("  retry search from %s (attempt %d): %v", trip.FromCity, attempt+2, err)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return "", lastErr
}

func retryable(err error) bool {
	switch faretrack.ErrorCode(err) {
	case faretrack.EINVALID, faretrack.ENOTFOUND:
		return false
	}
	return !errors.Is(err, context.Canceled)
}
