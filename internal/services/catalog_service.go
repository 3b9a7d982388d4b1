package services

import (
	"gerai/internal/models"
	"gerai/internal/repositories"
)

// CatalogService handles the public category and product read paths. Only
// active rows are ever exposed.
type CatalogService struct {
	categoryRepo repositories.CategoryRepository
	productRepo  repositories.ProductRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(categoryRepo repositories.CategoryRepository, productRepo repositories.ProductRepository) *CatalogService {
	return &CatalogService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
	}
}

// ListCategories retrieves all active categories.
func (s *CatalogService) ListCategories() ([]models.Category, error) {
	return s.categoryRepo.GetAllActive()
}

// GetCategory retrieves one active category by slug.
func (s *CatalogService) GetCategory(slug string) (*models.Category, error) {
	return s.categoryRepo.GetActiveBySlug(slug)
}

// ListProducts retrieves active products matching the composable filters,
// newest first.
func (s *CatalogService) ListProducts(filter repositories.ProductFilter) ([]models.Product, error) {
	return s.productRepo.ListActive(filter)
}

// GetProduct retrieves one active product by slug.
func (s *CatalogService) GetProduct(slug string) (*models.Product, error) {
	return s.productRepo.GetActiveBySlug(slug)
}

// FeaturedProducts retrieves active products flagged as featured.
func (s *CatalogService) FeaturedProducts() ([]models.Product, error) {
	return s.productRepo.ListActive(repositories.ProductFilter{FeaturedOnly: true})
}
