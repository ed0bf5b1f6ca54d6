package square

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/ceras-workshop/storefront-gateway/internal/config"
)

// RetryClient retries transport-level and 5xx failures with exponential
// backoff. Charge retries are safe because the idempotency key travels
// inside the request and stays constant across retries of one logical call.
type RetryClient struct {
	inner      Client
	baseDelay  time.Duration
	maxRetries int
}

func NewRetryClient(inner Client, cfg config.RetryConfig) *RetryClient {
	return &RetryClient{
		inner:      inner,
		baseDelay:  time.Duration(cfg.BaseDelay) * time.Second,
		maxRetries: int(cfg.MaxRetries),
	}
}

func (r *RetryClient) ListLocations(ctx context.Context) ([]Location, error) {
	return retry(r, ctx, func(ctx context.Context) ([]Location, error) {
		return r.inner.ListLocations(ctx)
	})
}

func (r *RetryClient) CreatePayment(ctx context.Context, req CreatePaymentRequest) (*Payment, error) {
	return retry(r, ctx, func(ctx context.Context) (*Payment, error) {
		return r.inner.CreatePayment(ctx, req)
	})
}

func (r *RetryClient) GetPayment(ctx context.Context, paymentID string) (*Payment, error) {
	return retry(r, ctx, func(ctx context.Context) (*Payment, error) {
		return r.inner.GetPayment(ctx, paymentID)
	})
}

func retry[T any](r *RetryClient, ctx context.Context, operation func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 0; attempt < r.maxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		default:
		}

		resp, err := operation(ctx)
		if err == nil {
			return resp, nil
		}

		lastErr = err

		if !isRetryable(err) {
			return zero, err
		}

		if attempt < r.maxRetries-1 {
			time.Sleep(r.backoff(attempt))
		}
	}

	return zero, fmt.Errorf("maximum retries exceeded: %w", lastErr)
}

func isRetryable(err error) bool {
	if errors.Is(err, ErrNotConfigured) {
		return false
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.IsRetryable()
	}

	if errors.Is(err, context.Canceled) {
		return false
	}

	// Transport-level failures are retryable.
	return true
}

func (r *RetryClient) backoff(attempt int) time.Duration {
	base := r.baseDelay * time.Duration(1<<attempt)

	jitter := time.Duration(rand.Intn(1000)) * time.Millisecond

	return base + jitter
}
