package checkout

import (
	"context"

	"github.com/ceras-workshop/storefront-gateway/internal/widget"
)

// WidgetTokenSource adapts the shared widget manager to the flow: ready
// means loaded, mounted and attached.
type WidgetTokenSource struct {
	Manager *widget.Manager
}

func (w WidgetTokenSource) EnsureReady(ctx context.Context, mountPointID string) (Tokenizer, error) {
	handle, err := w.Manager.EnsureReady(ctx, mountPointID)
	if err != nil {
		return nil, err
	}
	return handle, nil
}

// MockTokenSource is the mock path's stand-in: no widget, no script, a
// constant synthetic token. The mock gateway validates raw card fields
// itself, so the token is never inspected.
type MockTokenSource struct{}

func (MockTokenSource) EnsureReady(ctx context.Context, mountPointID string) (Tokenizer, error) {
	return staticTokenizer("cnon:mock-payment-token"), nil
}

type staticTokenizer string

func (t staticTokenizer) Tokenize(ctx context.Context) (string, error) {
	return string(t), nil
}
