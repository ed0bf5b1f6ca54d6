package services

import (
	"context"
	"errors"

	"github.com/ceras-workshop/storefront-gateway/internal/application"
	"github.com/ceras-workshop/storefront-gateway/internal/domain"
	"github.com/ceras-workshop/storefront-gateway/internal/infrastructure/persistence/postgres"
)

// CatalogService is the read-only product catalog the storefront browses.
type CatalogService struct {
	productRepo *postgres.ProductRepository
}

func NewCatalogService(productRepo *postgres.ProductRepository) *CatalogService {
	return &CatalogService{
		productRepo: productRepo,
	}
}

func (s *CatalogService) ListProducts(ctx context.Context, q domain.ProductQuery) ([]*domain.Product, error) {
	products, err := s.productRepo.List(ctx, q)
	if err != nil {
		return nil, application.NewInternalError(err)
	}
	return products, nil
}

func (s *CatalogService) GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	product, err := s.productRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, postgres.ErrProductNotFound) {
			return nil, application.NewNotFoundError("Product not found")
		}
		return nil, application.NewInternalError(err)
	}
	return product, nil
}
