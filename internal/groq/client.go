package groq

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// call runs one rate-limited, retried SDK call. Each attempt gets its own
// timeout; SDK errors are mapped onto this package's error types.
func call[T any](ctx context.Context, c *implClient, op string, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	if strings.TrimSpace(c.apiKey) == "" {
		return zero, ErrMissingAPIKey
	}

	onRetry := func(attempt int, wait time.Duration, err error) {
		c.logger.Warn(ctx, "%s failed, retry %d/%d in %s: %v", op, attempt, c.retry.MaxRetries, wait, err)
	}

	return retryDo(ctx, c.retry, onRetry, func() (T, error) {
		if err := c.limiter.Wait(ctx); err != nil {
			return zero, fmt.Errorf("%s: wait for rate limiter: %w", op, err)
		}

		reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()

		result, err := fn(reqCtx)
		if err != nil {
			return zero, fromSDKError(op, err)
		}
		return result, nil
	})
}
