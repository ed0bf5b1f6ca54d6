package application

import (
	"context"

	"github.com/ceras-workshop/storefront-gateway/internal/domain"
)

// ChargeCommand is one charge submission. The live path consumes SourceID
// (a one-time card token); the mock path consumes Card directly. Amount is
// in decimal dollars as submitted by the checkout surface.
type ChargeCommand struct {
	SourceID   string
	Amount     float64
	Currency   string
	LocationID string
	Customer   domain.CustomerInfo
	Card       domain.CardInfo

	// IdempotencyKey binds the charge to one PaymentAttempt. When empty
	// the gateway mints a fresh key, so every distinct call stays
	// at-most-once upstream either way.
	IdempotencyKey string
}

// Gateway is the payment capability contract shared by the live and mock
// paths, selected by configuration at startup.
type Gateway interface {
	Charge(ctx context.Context, cmd ChargeCommand) (*domain.PaymentResult, error)
	GetStatus(ctx context.Context, paymentID string) (*domain.PaymentResult, error)
}
