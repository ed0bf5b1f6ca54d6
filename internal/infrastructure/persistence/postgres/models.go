package postgres

import (
	"time"

	"github.com/ceras-workshop/storefront-gateway/internal/domain"
)

// productModel mirrors the products table row.
type productModel struct {
	ID            string
	Name          string
	Slug          string
	Description   *string
	Price         float64
	SalePrice     *float64
	Materials     *string
	Dimensions    *string
	StockCount    int
	EstimatedDays int
	Featured      bool
	Active        bool
	CreatedAt     time.Time
}

func toDomainProduct(m productModel) *domain.Product {
	salePrice := m.Price
	if m.SalePrice != nil {
		salePrice = *m.SalePrice
	}
	return &domain.Product{
		ID:            m.ID,
		Name:          m.Name,
		Slug:          m.Slug,
		Description:   strOrEmpty(m.Description),
		Price:         m.Price,
		SalePrice:     salePrice,
		Materials:     strOrEmpty(m.Materials),
		Dimensions:    strOrEmpty(m.Dimensions),
		StockCount:    m.StockCount,
		EstimatedDays: m.EstimatedDays,
		Featured:      m.Featured,
		Active:        m.Active,
		CreatedAt:     m.CreatedAt,
	}
}
