package middleware

import (
	"context"
	"net/http"
	"time"
)

const timeoutBody = `{"error":"Request timeout"}`

// Timeout bounds each request: the handler's context is cancelled and the
// client gets a JSON 503 once the budget is spent. Charge handlers rely on
// idempotency keys to make a timed-out retry safe.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		timeoutHandler := http.TimeoutHandler(next, timeout, timeoutBody)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			timeoutHandler.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
