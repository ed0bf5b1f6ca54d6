package domain

import "time"

// Category groups products for storefront browsing.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type ProductImage struct {
	ID        string `json:"id"`
	URL       string `json:"url"`
	Alt       string `json:"alt"`
	Order     int    `json:"order"`
	IsPrimary bool   `json:"isPrimary"`
}

// ProductQuery selects and orders catalog entries. Sort accepts the
// storefront's sort keys: featured (default), name, price-low, price-high,
// newest.
type ProductQuery struct {
	CategorySlug string
	Featured     *bool
	Search       string
	Sort         string
}

// Product is a catalog entry. The catalog is read-only from the gateway's
// perspective; taxonomy management lives elsewhere.
type Product struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Slug          string         `json:"slug"`
	Description   string         `json:"description"`
	Price         float64        `json:"price"`
	SalePrice     float64        `json:"salePrice"`
	Materials     string         `json:"materials,omitempty"`
	Dimensions    string         `json:"dimensions,omitempty"`
	StockCount    int            `json:"stockCount"`
	EstimatedDays int            `json:"estimatedDays"`
	Featured      bool           `json:"featured"`
	Active        bool           `json:"active"`
	CreatedAt     time.Time      `json:"createdAt"`
	Category      *Category      `json:"category,omitempty"`
	Images        []ProductImage `json:"images,omitempty"`
}
