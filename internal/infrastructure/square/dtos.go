package square

import "encoding/json"

// Location is one merchant location from the upstream list endpoint.
type Location struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Address json.RawMessage `json:"address,omitempty"`
	Status  string          `json:"status"`
}

type listLocationsResponse struct {
	Locations []Location `json:"locations"`
}

type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// CreatePaymentRequest is the upstream charge request. Autocomplete captures
// funds in the same call; there is no separate authorize/capture step.
type CreatePaymentRequest struct {
	SourceID       string `json:"source_id"`
	IdempotencyKey string `json:"idempotency_key"`
	AmountMoney    Money  `json:"amount_money"`
	LocationID     string `json:"location_id,omitempty"`
	Autocomplete   bool   `json:"autocomplete"`
}

// Payment carries the parsed identity fields plus the raw upstream payment
// object for display.
type Payment struct {
	ID     string
	Status string
	Raw    json.RawMessage
}

type paymentEnvelope struct {
	Payment json.RawMessage `json:"payment"`
}

type paymentCore struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}
