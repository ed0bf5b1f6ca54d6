package services

import (
	"context"
	"log/slog"

	"github.com/ceras-workshop/storefront-gateway/internal/application"
	"github.com/ceras-workshop/storefront-gateway/internal/domain"
	"github.com/ceras-workshop/storefront-gateway/internal/infrastructure/square"
	"github.com/google/uuid"
)

// PaymentService is the live payment gateway: it turns a card token plus a
// dollar amount into an auto-completed upstream charge.
type PaymentService struct {
	client square.Client
	logger *slog.Logger
}

func NewPaymentService(client square.Client, logger *slog.Logger) *PaymentService {
	return &PaymentService{
		client: client,
		logger: logger,
	}
}

var _ application.Gateway = (*PaymentService)(nil)

func (s *PaymentService) Charge(ctx context.Context, cmd application.ChargeCommand) (*domain.PaymentResult, error) {
	if cmd.SourceID == "" || cmd.Amount == 0 {
		return nil, application.NewValidationError("Missing required fields: sourceId and amount")
	}

	currency := cmd.Currency
	if currency == "" {
		currency = "USD"
	}

	money, err := domain.MoneyFromDollars(cmd.Amount, currency)
	if err != nil {
		return nil, application.NewValidationError(err.Error())
	}

	idempotencyKey := cmd.IdempotencyKey
	if idempotencyKey == "" {
		idempotencyKey = uuid.New().String()
	}

	req := square.CreatePaymentRequest{
		SourceID:       cmd.SourceID,
		IdempotencyKey: idempotencyKey,
		AmountMoney: square.Money{
			Amount:   money.Amount,
			Currency: money.Currency,
		},
		LocationID:   cmd.LocationID,
		Autocomplete: true,
	}

	payment, err := s.client.CreatePayment(ctx, req)
	if err != nil {
		return nil, s.mapChargeError(err)
	}

	s.logger.Info("payment completed",
		"payment_id", payment.ID,
		"amount_cents", money.Amount,
		"currency", money.Currency,
	)

	return &domain.PaymentResult{
		Success:    true,
		PaymentID:  payment.ID,
		Status:     payment.Status,
		RawPayment: payment.Raw,
	}, nil
}

func (s *PaymentService) GetStatus(ctx context.Context, paymentID string) (*domain.PaymentResult, error) {
	if paymentID == "" {
		return nil, application.NewValidationError("Payment ID is required")
	}

	payment, err := s.client.GetPayment(ctx, paymentID)
	if err != nil {
		if apiErr, ok := square.IsAPIError(err); ok {
			s.logger.Error("payment lookup failed",
				"payment_id", paymentID,
				"status", apiErr.StatusCode,
				"body", string(apiErr.Body),
			)
			return nil, application.NewDeclinedError(apiErr.FirstDetail(), err)
		}
		s.logger.Error("payment lookup failed", "payment_id", paymentID, "error", err)
		return nil, application.NewUpstreamError(err)
	}

	return &domain.PaymentResult{
		Success:    true,
		PaymentID:  payment.ID,
		Status:     payment.Status,
		RawPayment: payment.Raw,
	}, nil
}

func (s *PaymentService) mapChargeError(err error) error {
	if apiErr, ok := square.IsAPIError(err); ok {
		// Full upstream bodies are logged here and go no further.
		s.logger.Error("upstream charge rejected",
			"status", apiErr.StatusCode,
			"body", string(apiErr.Body),
		)
		detail := apiErr.FirstDetail()
		if detail == "" {
			detail = "Unknown error"
		}
		return application.NewDeclinedError(detail, err)
	}

	s.logger.Error("charge request failed", "error", err)
	return application.NewUpstreamError(err)
}
