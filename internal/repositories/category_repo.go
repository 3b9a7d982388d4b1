package repositories

import "gerai/internal/models"

// CategoryRepository defines the interface for category data access. Reads
// expose only active categories; that is the public API contract.
type CategoryRepository interface {
	GetAllActive() ([]models.Category, error)
	GetActiveBySlug(slug string) (*models.Category, error)
	Create(category *models.Category) error
}
