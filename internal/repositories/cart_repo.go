package repositories

import "gerai/internal/models"

// CartRepository defines the interface for cart data access. Item lookups
// are always scoped to a cart so a caller can never reach another user's
// lines.
type CartRepository interface {
	GetOrCreateByUser(userID string) (*models.Cart, error)
	GetByUser(userID string) (*models.Cart, error)
	GetItem(cartID, itemID string) (*models.CartItem, error)
	GetItemByProduct(cartID, productID string) (*models.CartItem, error)
	CreateItem(item *models.CartItem) error
	UpdateItem(item *models.CartItem) error
	DeleteItem(cartID, itemID string) error
}
