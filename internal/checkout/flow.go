// Package checkout drives one payment attempt from the buyer's
// perspective: widget readiness, tokenization, charge, and the cart
// clearing that follows success.
package checkout

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/ceras-workshop/storefront-gateway/internal/application"
	"github.com/ceras-workshop/storefront-gateway/internal/cart"
	"github.com/ceras-workshop/storefront-gateway/internal/domain"
	"github.com/ceras-workshop/storefront-gateway/internal/widget"
)

type State string

const (
	StateIdle                   State = "IDLE"
	StateAwaitingWidgetReady    State = "AWAITING_WIDGET_READY"
	StateAwaitingTokenization   State = "AWAITING_TOKENIZATION"
	StateAwaitingChargeResponse State = "AWAITING_CHARGE_RESPONSE"
	StateSucceeded              State = "SUCCEEDED"
	StateFailed                 State = "FAILED"
)

// Tokenizer yields a one-time payment token for the current card input.
type Tokenizer interface {
	Tokenize(ctx context.Context) (string, error)
}

// WidgetReadier hands out a ready tokenizer. The live path backs this with
// the shared card widget; the mock path returns a synthetic tokenizer
// immediately, so the flow itself never branches on the payment mode.
type WidgetReadier interface {
	EnsureReady(ctx context.Context, mountPointID string) (Tokenizer, error)
}

// SubmitRequest is one user-initiated checkout submission.
type SubmitRequest struct {
	MountPointID    string
	Customer        domain.CustomerInfo
	Card            domain.CardInfo
	ShippingDollars float64
	TaxDollars      float64
	Currency        string
}

// SubmitError is what the checkout surface renders in the inline error
// banner; the internal cause stays in the logs.
type SubmitError struct {
	Message string
	Err     error
}

func (e *SubmitError) Error() string { return e.Message }
func (e *SubmitError) Unwrap() error { return e.Err }

// Flow walks one PaymentAttempt through
// Idle -> AwaitingWidgetReady -> AwaitingTokenization ->
// AwaitingChargeResponse -> Succeeded | Failed.
// Failed returns to Idle on the next submit with a brand new attempt and
// idempotency key; Succeeded is terminal for the attempt and clears the
// cart.
type Flow struct {
	widgets   WidgetReadier
	locations LocationResolver
	gateway   application.Gateway
	cart      *cart.Store
	logger    *slog.Logger

	mu     sync.Mutex
	state  State
	result *domain.PaymentResult
}

// LocationResolver is satisfied by services.LocationService.
type LocationResolver interface {
	Resolve(ctx context.Context) (*domain.LocationHandle, error)
}

func NewFlow(widgets WidgetReadier, locations LocationResolver, gateway application.Gateway, cartStore *cart.Store, logger *slog.Logger) *Flow {
	return &Flow{
		widgets:   widgets,
		locations: locations,
		gateway:   gateway,
		cart:      cartStore,
		logger:    logger,
		state:     StateIdle,
	}
}

func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Result returns the terminal payment result of the last attempt, if any.
func (f *Flow) Result() *domain.PaymentResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.result
}

// Submit runs one payment attempt to completion. Suspension points run
// strictly in order; nothing within a single attempt runs concurrently.
// A submit after a failure starts over from Idle with a fresh attempt.
func (f *Flow) Submit(ctx context.Context, req SubmitRequest) (*domain.PaymentResult, error) {
	if err := req.Customer.Validate(); err != nil {
		return nil, f.fail(&SubmitError{Message: "Please fill in all required fields", Err: err})
	}

	items, err := f.cart.Items()
	if err != nil {
		return nil, f.fail(&SubmitError{Message: "Failed to load cart", Err: err})
	}
	summary := Summarize(items, req.ShippingDollars, req.TaxDollars)
	if summary.TotalCents() < 1 {
		return nil, f.fail(&SubmitError{Message: "Cart is empty", Err: errors.New("zero total")})
	}

	f.setState(StateAwaitingWidgetReady)
	tokenizer, err := f.widgets.EnsureReady(ctx, req.MountPointID)
	if err != nil {
		return nil, f.fail(&SubmitError{Message: widget.UserMessage(err), Err: err})
	}

	location, err := f.locations.Resolve(ctx)
	if err != nil {
		return nil, f.fail(&SubmitError{Message: "Failed to load payment system", Err: err})
	}

	f.setState(StateAwaitingTokenization)
	token, err := tokenizer.Tokenize(ctx)
	if err != nil {
		var tokErr *widget.TokenizationError
		if errors.As(err, &tokErr) {
			return nil, f.fail(&SubmitError{Message: tokErr.Error(), Err: err})
		}
		return nil, f.fail(&SubmitError{Message: "Payment processing failed", Err: err})
	}

	amount, err := domain.NewMoney(summary.TotalCents(), currencyOrDefault(req.Currency))
	if err != nil {
		return nil, f.fail(&SubmitError{Message: "Invalid order total", Err: err})
	}
	attempt, err := domain.NewPaymentAttempt(amount, location.ID, req.Customer)
	if err != nil {
		return nil, f.fail(&SubmitError{Message: "Invalid order total", Err: err})
	}

	f.setState(StateAwaitingChargeResponse)
	result, err := f.gateway.Charge(ctx, application.ChargeCommand{
		SourceID:       token,
		Amount:         amount.Dollars(),
		Currency:       amount.Currency,
		LocationID:     attempt.LocationID,
		Customer:       attempt.Customer,
		Card:           req.Card,
		IdempotencyKey: attempt.IdempotencyKey,
	})
	if err != nil {
		if svcErr, ok := application.IsServiceError(err); ok {
			msg := svcErr.Message
			if svcErr.Details != "" {
				msg = svcErr.Details
			}
			return nil, f.fail(&SubmitError{Message: msg, Err: err})
		}
		return nil, f.fail(&SubmitError{Message: "Payment processing failed", Err: err})
	}

	f.mu.Lock()
	f.state = StateSucceeded
	f.result = result
	f.mu.Unlock()

	if err := f.cart.Clear(); err != nil {
		// The charge went through; a cart that failed to clear is logged,
		// not surfaced as a payment failure.
		f.logger.Error("failed to clear cart after successful payment", "error", err)
	}

	f.logger.Info("payment attempt succeeded",
		"payment_id", result.PaymentID,
		"amount_cents", amount.Amount,
	)
	return result, nil
}

func (f *Flow) setState(s State) {
	f.mu.Lock()
	f.state = s
	f.mu.Unlock()
}

func (f *Flow) fail(err *SubmitError) error {
	f.mu.Lock()
	f.state = StateFailed
	f.mu.Unlock()
	f.logger.Error("payment attempt failed", "message", err.Message, "error", err.Err)
	return err
}

func currencyOrDefault(currency string) string {
	if currency == "" {
		return "USD"
	}
	return currency
}
