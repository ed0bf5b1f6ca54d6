package handlers

import (
	"net/http"

	"github.com/ceras-workshop/storefront-gateway/internal/domain"
	"github.com/ceras-workshop/storefront-gateway/internal/interfaces/rest"
)

type productsResponse struct {
	Success  bool              `json:"success"`
	Products []*domain.Product `json:"products"`
	Count    int               `json:"count"`
}

type productResponse struct {
	Success bool            `json:"success"`
	Product *domain.Product `json:"product"`
}

// ListProducts serves the storefront catalog with category, featured and
// search filters plus the storefront sort keys.
func (h *Handlers) ListProducts(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	query := domain.ProductQuery{
		CategorySlug: params.Get("category"),
		Search:       params.Get("search"),
		Sort:         params.Get("sort"),
	}
	if params.Get("featured") == "true" {
		featured := true
		query.Featured = &featured
	}

	products, err := h.catalog.ListProducts(r.Context(), query)
	if err != nil {
		h.logger.Error("product listing failed", "error", err)
		rest.WriteJSON(w, http.StatusInternalServerError, rest.ErrorResponse{
			Error: "Failed to fetch products",
		})
		return
	}
	if products == nil {
		products = []*domain.Product{}
	}

	rest.WriteJSON(w, http.StatusOK, productsResponse{
		Success:  true,
		Products: products,
		Count:    len(products),
	})
}

func (h *Handlers) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalog.GetProductBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusOK, productResponse{
		Success: true,
		Product: product,
	})
}
