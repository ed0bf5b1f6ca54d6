package widget

import (
	"context"
	"fmt"

	"github.com/ceras-workshop/storefront-gateway/internal/domain"
)

// TokenizationError carries the user-facing message assembled from the
// widget's element-level errors.
type TokenizationError struct {
	Result domain.TokenResult
}

func (e *TokenizationError) Error() string {
	return e.Result.Message()
}

// Tokenize converts the widget's current card input into a one-time token.
// There is no retry: bad card input needs the user, not the machine. A
// status of OK with an empty token is treated as a failure, honoring the
// invariant that only OK results carry usable tokens.
func (h *Handle) Tokenize(ctx context.Context) (string, error) {
	result, err := h.card.Tokenize(ctx)
	if err != nil {
		return "", fmt.Errorf("tokenize call failed: %w", err)
	}

	if !result.OK() {
		return "", &TokenizationError{Result: result}
	}

	return result.Token, nil
}
