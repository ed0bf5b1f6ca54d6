package services

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/ceras-workshop/storefront-gateway/internal/application"
	"github.com/ceras-workshop/storefront-gateway/internal/domain"
)

const txnAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// MockGateway simulates the payment processor for environments without
// live credentials. After input validation it always succeeds, with a
// fixed processing delay, a time-based order identifier and a random
// transaction identifier. No upstream call is made.
type MockGateway struct {
	delay time.Duration
	now   func() time.Time
}

func NewMockGateway(delay time.Duration) *MockGateway {
	return &MockGateway{
		delay: delay,
		now:   time.Now,
	}
}

var _ application.Gateway = (*MockGateway)(nil)

func (g *MockGateway) Charge(ctx context.Context, cmd application.ChargeCommand) (*domain.PaymentResult, error) {
	if err := cmd.Customer.Validate(); err != nil {
		return nil, application.NewValidationError("Please fill in all required customer information")
	}
	if err := cmd.Card.Validate(); err != nil {
		return nil, application.NewValidationError("Please fill in all payment information")
	}

	select {
	case <-time.After(g.delay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	orderID := fmt.Sprintf("ORDER-%d", g.now().UnixMilli())
	transactionID := "TXN-" + randomTransactionSuffix(9)

	return &domain.PaymentResult{
		Success:       true,
		PaymentID:     transactionID,
		OrderID:       orderID,
		TransactionID: transactionID,
		Status:        "COMPLETED",
	}, nil
}

// GetStatus on the mock path reports any submitted payment as completed;
// there is no simulated store of past transactions.
func (g *MockGateway) GetStatus(ctx context.Context, paymentID string) (*domain.PaymentResult, error) {
	if paymentID == "" {
		return nil, application.NewValidationError("Payment ID is required")
	}
	return &domain.PaymentResult{
		Success:   true,
		PaymentID: paymentID,
		Status:    "COMPLETED",
	}, nil
}

func randomTransactionSuffix(n int) string {
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte(txnAlphabet[rand.Intn(len(txnAlphabet))])
	}
	return b.String()
}
