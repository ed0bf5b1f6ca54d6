package widget

import "errors"

var (
	// ErrSDKLoad means the third-party payments script could not be
	// fetched or evaluated.
	ErrSDKLoad = errors.New("payment SDK failed to load")

	// ErrMountTimeout means the mount point never appeared within the
	// bounded poll budget.
	ErrMountTimeout = errors.New("card mount point not found after waiting")

	// ErrConfigMissing means no application ID is configured.
	ErrConfigMissing = errors.New("payment application ID not configured")
)

// UserMessage flattens initialization failures into the single generic
// message shown on the checkout surface. The internal cause is logged,
// never shown.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrMountTimeout), errors.Is(err, ErrSDKLoad), errors.Is(err, ErrConfigMissing):
		return "Failed to load payment system"
	default:
		return "Failed to initialize payment form"
	}
}
