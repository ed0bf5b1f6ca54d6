package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/ceras-workshop/storefront-gateway/internal/application"
)

// ErrorResponse is the client-facing error shape. Details carries at most
// the first upstream error detail; raw upstream bodies never appear here.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// WriteError maps application errors to HTTP responses.
func WriteError(w http.ResponseWriter, err error, logger *slog.Logger) {
	if svcErr, ok := application.IsServiceError(err); ok {
		if svcErr.Err != nil {
			logger.Error("request failed", "code", svcErr.Code, "error", svcErr.Err)
		}
		WriteJSON(w, svcErr.HTTPStatus, ErrorResponse{
			Error:   svcErr.Message,
			Details: svcErr.Details,
		})
		return
	}

	logger.Error("request failed", "error", err)
	WriteJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error: "An internal error occurred",
	})
}
