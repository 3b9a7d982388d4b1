package repositories

import "gerai/internal/models"

// OrderRepository defines the interface for order data access. Reads are
// scoped to the owning user.
type OrderRepository interface {
	// CreateFromCart writes the order header and its items and clears the
	// cart's lines in one transaction. Either everything commits or nothing
	// does; the cart row itself is kept.
	CreateFromCart(order *models.Order, cartID string) error
	GetAllByUser(userID string) ([]models.Order, error)
	GetByIDForUser(id, userID string) (*models.Order, error)
}
