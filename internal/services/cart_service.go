package services

import (
	"errors"
	"fmt"

	"gerai/internal/models"
	"gerai/internal/repositories"
)

// CartService handles the caller's cart. Every item operation is scoped to
// the caller's own cart; reaching into another user's cart surfaces as not
// found.
type CartService struct {
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repositories.CartRepository, productRepo repositories.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// GetCart returns the caller's cart, creating an empty one on first access.
func (s *CartService) GetCart(userID string) (*models.Cart, error) {
	return s.cartRepo.GetOrCreateByUser(userID)
}

// AddToCart adds quantity of an active product to the caller's cart. When a
// line for the product already exists its quantity is incremented, not
// replaced.
func (s *CartService) AddToCart(userID, productID string, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, FieldErrors{"quantity": "Quantity must be at least 1."}
	}

	product, err := s.productRepo.GetActiveByID(productID)
	if err != nil {
		return nil, err
	}
	cart, err := s.cartRepo.GetOrCreateByUser(userID)
	if err != nil {
		return nil, err
	}

	item, err := s.cartRepo.GetItemByProduct(cart.ID, product.ID)
	switch {
	case err == nil:
		item.Quantity += quantity
		if err := s.cartRepo.UpdateItem(item); err != nil {
			return nil, err
		}
	case errors.Is(err, repositories.ErrNotFound):
		item = &models.CartItem{CartID: cart.ID, ProductID: product.ID, Quantity: quantity}
		if err := s.cartRepo.CreateItem(item); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("failed to look up cart line: %w", err)
	}

	return s.cartRepo.GetOrCreateByUser(userID)
}

// UpdateItem overwrites a line's quantity. Unlike AddToCart this replaces
// the value outright.
func (s *CartService) UpdateItem(userID, itemID string, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, FieldErrors{"quantity": "Quantity must be at least 1."}
	}

	cart, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return nil, err
	}
	item, err := s.cartRepo.GetItem(cart.ID, itemID)
	if err != nil {
		return nil, err
	}

	item.Quantity = quantity
	if err := s.cartRepo.UpdateItem(item); err != nil {
		return nil, err
	}
	return item, nil
}

// RemoveItem deletes a line from the caller's cart.
func (s *CartService) RemoveItem(userID, itemID string) error {
	cart, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return err
	}
	return s.cartRepo.DeleteItem(cart.ID, itemID)
}
