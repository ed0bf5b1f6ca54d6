// Package widget owns the lifecycle of the remote-rendered card input
// surface: loading the third-party payments script at most once per
// process, waiting for the mount point to exist, and attaching the card
// widget exactly once, no matter how many checkout surfaces come and go.
package widget

import (
	"context"

	"github.com/ceras-workshop/storefront-gateway/internal/domain"
)

// SDK is the global factory exposed by the loaded payments script.
type SDK interface {
	Payments(applicationID string) (PaymentsClient, error)
}

// PaymentsClient produces card widgets.
type PaymentsClient interface {
	Card(ctx context.Context) (Card, error)
}

// Card is the remote-rendered card input surface. Attach binds it to a
// mount point; Tokenize converts the current card input into a one-time
// token.
type Card interface {
	Attach(ctx context.Context, mountPointID string) error
	Tokenize(ctx context.Context) (domain.TokenResult, error)
}

// Loader fetches and evaluates the payments script. The manager guarantees
// Load is never running twice concurrently and is not called again once an
// initialization has succeeded.
type Loader interface {
	Load(ctx context.Context) (SDK, error)
}

// MountPoint is the surface the widget attaches into.
type MountPoint interface {
	// Clear wipes any leftover markup from a previous attach attempt.
	Clear()
}

// MountRegistry reports whether a mount point exists yet. The surrounding
// UI tree creates mount points asynchronously, so absence is expected and
// polled for.
type MountRegistry interface {
	Lookup(id string) (MountPoint, bool)
}
