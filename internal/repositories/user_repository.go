package repositories

import (
	"time"

	"gerai/internal/models"
)

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	GetByID(id string) (*models.User, error)
	Update(user *models.User) error
	Count() (int64, error)
	CountCreatedSince(since time.Time) (int64, error)
	GetRecent(limit int) ([]models.User, error)
}
