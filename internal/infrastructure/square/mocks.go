package square

import (
	"context"
	"sync"
)

// MockClient is a hand-rolled Client double. Each method delegates to its
// Fn when set and counts calls either way.
type MockClient struct {
	mu sync.Mutex

	ListLocationsFn func(ctx context.Context) ([]Location, error)
	CreatePaymentFn func(ctx context.Context, req CreatePaymentRequest) (*Payment, error)
	GetPaymentFn    func(ctx context.Context, paymentID string) (*Payment, error)

	ListLocationsCalls int
	CreatePaymentCalls int
	GetPaymentCalls    int

	// CreatePaymentReqs records every charge request for assertions on
	// idempotency keys and amounts.
	CreatePaymentReqs []CreatePaymentRequest
}

func (m *MockClient) ListLocations(ctx context.Context) ([]Location, error) {
	m.mu.Lock()
	m.ListLocationsCalls++
	m.mu.Unlock()
	if m.ListLocationsFn != nil {
		return m.ListLocationsFn(ctx)
	}
	return nil, nil
}

func (m *MockClient) CreatePayment(ctx context.Context, req CreatePaymentRequest) (*Payment, error) {
	m.mu.Lock()
	m.CreatePaymentCalls++
	m.CreatePaymentReqs = append(m.CreatePaymentReqs, req)
	m.mu.Unlock()
	if m.CreatePaymentFn != nil {
		return m.CreatePaymentFn(ctx, req)
	}
	return &Payment{ID: "pay-1", Status: "COMPLETED"}, nil
}

func (m *MockClient) GetPayment(ctx context.Context, paymentID string) (*Payment, error) {
	m.mu.Lock()
	m.GetPaymentCalls++
	m.mu.Unlock()
	if m.GetPaymentFn != nil {
		return m.GetPaymentFn(ctx, paymentID)
	}
	return &Payment{ID: paymentID, Status: "COMPLETED"}, nil
}
