package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ceras-workshop/storefront-gateway/internal/domain"
	"github.com/jackc/pgx/v5"
)

var ErrProductNotFound = errors.New("product not found")

type ProductRepository struct {
	db *DB
}

func NewProductRepository(db *DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// List returns active products matching the query, with their category and
// images (primary image first).
func (r *ProductRepository) List(ctx context.Context, q domain.ProductQuery) ([]*domain.Product, error) {
	query := `
		SELECT p.id, p.name, p.slug, p.description, p.price, p.sale_price,
		       p.materials, p.dimensions, p.stock_count, p.estimated_days,
		       p.featured, p.active, p.created_at,
		       c.id, c.name, c.slug
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.active = TRUE
	`

	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if q.CategorySlug != "" && q.CategorySlug != "all" {
		query += " AND c.slug = " + arg(q.CategorySlug)
	}
	if q.Featured != nil {
		query += " AND p.featured = " + arg(*q.Featured)
	}
	if q.Search != "" {
		pattern := "%" + q.Search + "%"
		query += fmt.Sprintf(
			" AND (p.name ILIKE %s OR p.description ILIKE %s OR p.materials ILIKE %s)",
			arg(pattern), arg(pattern), arg(pattern),
		)
	}

	query += " ORDER BY " + orderClause(q.Sort)

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		return nil, err
	}

	if err := r.loadImages(ctx, products); err != nil {
		return nil, err
	}

	return products, nil
}

// FindBySlug returns one active product for a detail page.
func (r *ProductRepository) FindBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	query := `
		SELECT p.id, p.name, p.slug, p.description, p.price, p.sale_price,
		       p.materials, p.dimensions, p.stock_count, p.estimated_days,
		       p.featured, p.active, p.created_at,
		       c.id, c.name, c.slug
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.active = TRUE AND p.slug = $1
	`

	rows, err := r.db.Pool.Query(ctx, query, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to query product: %w", err)
	}
	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, ErrProductNotFound
	}

	if err := r.loadImages(ctx, products); err != nil {
		return nil, err
	}
	return products[0], nil
}

func orderClause(sort string) string {
	switch sort {
	case "name":
		return "p.name ASC"
	case "price-low":
		return "p.price ASC"
	case "price-high":
		return "p.price DESC"
	case "newest":
		return "p.created_at DESC"
	default:
		return "p.featured DESC, p.created_at DESC"
	}
}

func scanProducts(rows pgx.Rows) ([]*domain.Product, error) {
	var products []*domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read products: %w", err)
	}
	return products, nil
}

func (r *ProductRepository) loadImages(ctx context.Context, products []*domain.Product) error {
	if len(products) == 0 {
		return nil
	}

	ids := make([]string, 0, len(products))
	byID := make(map[string]*domain.Product, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
		byID[p.ID] = p
	}

	query := `
		SELECT id, product_id, url, alt, sort_order, is_primary
		FROM product_images
		WHERE product_id = ANY($1::uuid[])
		ORDER BY is_primary DESC, sort_order ASC
	`
	rows, err := r.db.Pool.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("failed to query product images: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var img domain.ProductImage
		var productID string
		if err := rows.Scan(&img.ID, &productID, &img.URL, &img.Alt, &img.Order, &img.IsPrimary); err != nil {
			return fmt.Errorf("failed to scan product image: %w", err)
		}
		if p, ok := byID[productID]; ok {
			p.Images = append(p.Images, img)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read product images: %w", err)
	}
	return nil
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var (
		p            productModel
		categoryID   *string
		categoryName *string
		categorySlug *string
	)

	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Slug,
		&p.Description,
		&p.Price,
		&p.SalePrice,
		&p.Materials,
		&p.Dimensions,
		&p.StockCount,
		&p.EstimatedDays,
		&p.Featured,
		&p.Active,
		&p.CreatedAt,
		&categoryID,
		&categoryName,
		&categorySlug,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan product: %w", err)
	}

	product := toDomainProduct(p)
	if categoryID != nil {
		product.Category = &domain.Category{
			ID:   *categoryID,
			Name: strOrEmpty(categoryName),
			Slug: strOrEmpty(categorySlug),
		}
	}
	return product, nil
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
