package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ceras-workshop/storefront-gateway/internal/application"
	"github.com/ceras-workshop/storefront-gateway/internal/domain"
)

// LocationResolver is satisfied by services.LocationService.
type LocationResolver interface {
	Resolve(ctx context.Context) (*domain.LocationHandle, error)
}

// Catalog is satisfied by services.CatalogService.
type Catalog interface {
	ListProducts(ctx context.Context, q domain.ProductQuery) ([]*domain.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error)
}

// Handlers is the storefront gateway's HTTP surface.
type Handlers struct {
	locations LocationResolver
	gateway   application.Gateway
	catalog   Catalog
	logger    *slog.Logger
}

func NewHandlers(
	locations LocationResolver,
	gateway application.Gateway,
	catalog Catalog,
	logger *slog.Logger,
) *Handlers {
	return &Handlers{
		locations: locations,
		gateway:   gateway,
		catalog:   catalog,
		logger:    logger,
	}
}

func (h *Handlers) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /locations", h.GetLocation)
	mux.HandleFunc("POST /payments", h.CreatePayment)
	mux.HandleFunc("GET /payments", h.GetPaymentStatus)
	mux.HandleFunc("GET /products", h.ListProducts)
	mux.HandleFunc("GET /products/{slug}", h.GetProduct)
}
