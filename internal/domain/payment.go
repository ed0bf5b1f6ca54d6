package domain

import (
	"encoding/json"
	"errors"

	"github.com/google/uuid"
)

// CustomerInfo is the buyer contact data collected on the checkout form.
type CustomerInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

func (c CustomerInfo) Validate() error {
	if c.Name == "" || c.Email == "" {
		return errors.New("customer name and email are required")
	}
	return nil
}

// CardInfo is raw card input for the mock payment path. The live path never
// sees card data; it only handles tokens.
type CardInfo struct {
	Number  string `json:"cardNumber"`
	Expiry  string `json:"expiryDate"`
	CVV     string `json:"cvv"`
	ZipCode string `json:"zipCode,omitempty"`
}

func (c CardInfo) Validate() error {
	if c.Number == "" || c.Expiry == "" || c.CVV == "" {
		return errors.New("card number, expiry and cvv are required")
	}
	return nil
}

// PaymentAttempt is one user-initiated charge submission. It is immutable
// once constructed and is never reused: a retry after failure mints a new
// attempt with a new idempotency key.
type PaymentAttempt struct {
	Amount         Money
	LocationID     string
	IdempotencyKey string
	Customer       CustomerInfo
}

func NewPaymentAttempt(amount Money, locationID string, customer CustomerInfo) (*PaymentAttempt, error) {
	if amount.Amount < 1 {
		return nil, errors.New("attempt amount must be at least one minor unit")
	}
	return &PaymentAttempt{
		Amount:         amount,
		LocationID:     locationID,
		IdempotencyKey: uuid.New().String(),
		Customer:       customer,
	}, nil
}

// PaymentResult is the terminal value of a PaymentAttempt.
type PaymentResult struct {
	Success       bool            `json:"success"`
	PaymentID     string          `json:"paymentId,omitempty"`
	Status        string          `json:"status,omitempty"`
	OrderID       string          `json:"orderId,omitempty"`
	TransactionID string          `json:"transactionId,omitempty"`
	RawPayment    json.RawMessage `json:"payment,omitempty"`
}
