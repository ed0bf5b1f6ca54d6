package domain

import "encoding/json"

const LocationStatusActive = "ACTIVE"

// LocationHandle identifies the merchant location charges are made against.
// It is resolved once per process and shared read-only afterwards.
type LocationHandle struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Address json.RawMessage `json:"address,omitempty"`
	Status  string          `json:"status"`
}
