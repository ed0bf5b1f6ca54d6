package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ceras-workshop/storefront-gateway/internal/application"
	"github.com/ceras-workshop/storefront-gateway/internal/domain"
	"github.com/ceras-workshop/storefront-gateway/internal/interfaces/rest"
)

type createPaymentRequest struct {
	SourceID   string              `json:"sourceId"`
	Amount     float64             `json:"amount"`
	Currency   string              `json:"currency"`
	LocationID string              `json:"locationId"`
	Customer   domain.CustomerInfo `json:"customer"`
	Card       domain.CardInfo     `json:"card"`
}

type paymentResponse struct {
	Success       bool            `json:"success"`
	Payment       json.RawMessage `json:"payment,omitempty"`
	PaymentID     string          `json:"paymentId,omitempty"`
	OrderID       string          `json:"orderId,omitempty"`
	TransactionID string          `json:"transactionId,omitempty"`
}

type paymentStatusResponse struct {
	Success bool            `json:"success"`
	Payment json.RawMessage `json:"payment,omitempty"`
	Status  string          `json:"status"`
}

// CreatePayment charges a tokenized card. The request amount is in decimal
// dollars; conversion to minor units and idempotency-key injection happen
// in the gateway.
func (h *Handlers) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var req createPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.WriteJSON(w, http.StatusBadRequest, rest.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	if req.SourceID == "" || req.Amount == 0 {
		rest.WriteJSON(w, http.StatusBadRequest, rest.ErrorResponse{
			Error: "Missing required fields: sourceId and amount",
		})
		return
	}

	result, err := h.gateway.Charge(r.Context(), application.ChargeCommand{
		SourceID:   req.SourceID,
		Amount:     req.Amount,
		Currency:   req.Currency,
		LocationID: req.LocationID,
		Customer:   req.Customer,
		Card:       req.Card,
	})
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusOK, paymentResponse{
		Success:       true,
		Payment:       result.RawPayment,
		PaymentID:     result.PaymentID,
		OrderID:       result.OrderID,
		TransactionID: result.TransactionID,
	})
}

// GetPaymentStatus looks up a previously submitted charge for polling and
// confirmation.
func (h *Handlers) GetPaymentStatus(w http.ResponseWriter, r *http.Request) {
	paymentID := r.URL.Query().Get("paymentId")
	if paymentID == "" {
		rest.WriteJSON(w, http.StatusBadRequest, rest.ErrorResponse{
			Error: "Payment ID is required",
		})
		return
	}

	result, err := h.gateway.GetStatus(r.Context(), paymentID)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusOK, paymentStatusResponse{
		Success: true,
		Payment: result.RawPayment,
		Status:  result.Status,
	})
}
