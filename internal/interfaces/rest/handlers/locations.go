package handlers

import (
	"net/http"

	"github.com/ceras-workshop/storefront-gateway/internal/domain"
	"github.com/ceras-workshop/storefront-gateway/internal/interfaces/rest"
)

type locationResponse struct {
	Success  bool                   `json:"success"`
	Location *domain.LocationHandle `json:"location"`
}

// GetLocation resolves the merchant location: the first ACTIVE location
// from upstream, memoized after the first success.
func (h *Handlers) GetLocation(w http.ResponseWriter, r *http.Request) {
	location, err := h.locations.Resolve(r.Context())
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusOK, locationResponse{
		Success:  true,
		Location: location,
	})
}
