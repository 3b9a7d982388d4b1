package repositories

import "gerai/internal/models"

// ProductFilter holds the composable listing filters. A zero value means no
// constraint on that dimension.
type ProductFilter struct {
	CategorySlug string // exact slug match
	Search       string // case-insensitive substring over name or description
	FeaturedOnly bool
}

// ProductRepository defines the interface for product data access. All
// public reads are restricted to active products.
type ProductRepository interface {
	ListActive(filter ProductFilter) ([]models.Product, error)
	GetActiveBySlug(slug string) (*models.Product, error)
	GetActiveByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
}
