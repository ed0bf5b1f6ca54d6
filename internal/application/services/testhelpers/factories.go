package testhelpers

import (
	"context"
	"testing"

	"github.com/ceras-workshop/storefront-gateway/internal/infrastructure/persistence/postgres"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// CategoryRow is a seeded categories row.
type CategoryRow struct {
	ID   string
	Name string
	Slug string
}

// ProductRow is a seeded products row with the knobs the catalog queries
// filter and sort on.
type ProductRow struct {
	ID         string
	Name       string
	Slug       string
	Price      float64
	SalePrice  *float64
	Materials  string
	Featured   bool
	Active     bool
	CategoryID *string
}

// InsertCategory seeds one category and returns it.
func InsertCategory(t *testing.T, ctx context.Context, db *postgres.DB, name, slug string) CategoryRow {
	id := uuid.New().String()
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO categories (id, name, slug) VALUES ($1, $2, $3)`,
		id, name, slug,
	)
	require.NoError(t, err)
	return CategoryRow{ID: id, Name: name, Slug: slug}
}

// InsertProduct seeds one product. Zero-value fields get sensible defaults
// so tests only set what they assert on.
func InsertProduct(t *testing.T, ctx context.Context, db *postgres.DB, row ProductRow) ProductRow {
	if row.ID == "" {
		row.ID = uuid.New().String()
	}
	if row.Name == "" {
		row.Name = "Handmade Bowl"
	}
	if row.Slug == "" {
		row.Slug = "handmade-bowl-" + row.ID[:8]
	}
	if row.Price == 0 {
		row.Price = 45.00
	}

	_, err := db.Pool.Exec(ctx,
		`INSERT INTO products
			(id, category_id, name, slug, description, price, sale_price,
			 materials, dimensions, stock_count, estimated_days, featured, active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		row.ID, row.CategoryID, row.Name, row.Slug, "hand thrown stoneware",
		row.Price, row.SalePrice, row.Materials, "10cm x 10cm", 5, 7,
		row.Featured, row.Active,
	)
	require.NoError(t, err)
	return row
}

// InsertProductImage seeds one image row for a product.
func InsertProductImage(t *testing.T, ctx context.Context, db *postgres.DB, productID, url string, sortOrder int, isPrimary bool) {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO product_images (product_id, url, alt, sort_order, is_primary)
		 VALUES ($1, $2, $3, $4, $5)`,
		productID, url, "", sortOrder, isPrimary,
	)
	require.NoError(t, err)
}
