package services

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"gerai/internal/models"
	"gerai/internal/repositories"
	"gerai/pkg/rabbitmq"

	"github.com/google/uuid"
)

// OrderService handles checkout and the caller's order history.
type OrderService struct {
	orderRepo repositories.OrderRepository
	cartRepo  repositories.CartRepository
	mqClient  *rabbitmq.Client
}

// NewOrderService creates a new OrderService. mqClient may be nil, in which
// case event publishing is skipped.
func NewOrderService(orderRepo repositories.OrderRepository, cartRepo repositories.CartRepository, mqClient *rabbitmq.Client) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
		mqClient:  mqClient,
	}
}

// ListOrders retrieves the caller's orders, newest first.
func (s *OrderService) ListOrders(userID string) ([]models.Order, error) {
	return s.orderRepo.GetAllByUser(userID)
}

// GetOrder retrieves one of the caller's orders.
func (s *OrderService) GetOrder(userID, orderID string) (*models.Order, error) {
	return s.orderRepo.GetByIDForUser(orderID, userID)
}

// CheckoutInput is the shipping payload supplied at checkout.
type CheckoutInput struct {
	ShippingAddress string
	PhoneNumber     string
	Notes           string
}

// newOrderNumber generates a unique, human-scannable order number.
func newOrderNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))[:8]
	return fmt.Sprintf("ORD-%s-%s", time.Now().Format("20060102"), suffix)
}

// Checkout turns the caller's cart into an order. The total and every line
// price are snapshotted from the products' current prices, then the cart's
// lines are cleared. Header, items and the clear are one transaction; a
// failure rolls everything back.
func (s *OrderService) Checkout(userID string, in CheckoutInput) (*models.Order, error) {
	cart, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	order := &models.Order{
		ID:              uuid.New().String(),
		UserID:          userID,
		OrderNumber:     newOrderNumber(),
		Status:          models.OrderStatusPending,
		TotalAmount:     cart.TotalPrice(),
		ShippingAddress: in.ShippingAddress,
		PhoneNumber:     in.PhoneNumber,
		Notes:           in.Notes,
	}
	for i := range cart.Items {
		item := &cart.Items[i]
		order.Items = append(order.Items, models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Product.CurrentPrice(),
		})
	}

	if err := s.orderRepo.CreateFromCart(order, cart.ID); err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	s.publishOrderCreated(order)

	return s.orderRepo.GetByIDForUser(order.ID, userID)
}

// publishOrderCreated emits an order.created event. Publishing is best
// effort; a broker failure never fails the checkout that already committed.
func (s *OrderService) publishOrderCreated(order *models.Order) {
	if s.mqClient == nil {
		return
	}
	body, err := json.Marshal(map[string]interface{}{
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"user_id":      order.UserID,
		"status":       order.Status,
		"total_amount": order.TotalAmount,
	})
	if err != nil {
		log.Printf("Failed to marshal order event for order %s: %v", order.ID, err)
		return
	}
	if err := s.mqClient.Publish("order.created", body); err != nil {
		log.Printf("Warning: failed to publish order created event for order %s: %v", order.ID, err)
	}
}
