package handlers

import (
	"gerai/internal/middleware"
	"gerai/internal/models"
	"gerai/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for the caller's orders.
type OrderHandler struct {
	service  *services.OrderService
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the order routes; every one requires an access
// token. The create route is registered before the id route so "create" is
// not captured as an order id.
func (h *OrderHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	router.Get("/orders", auth, h.HandleListOrders)
	router.Post("/orders/create", auth, h.HandleCheckout)
	router.Get("/orders/:id", auth, h.HandleGetOrder)
}

func orderItemPayload(item *models.OrderItem) fiber.Map {
	return fiber.Map{
		"id":          item.ID,
		"product":     productPayload(&item.Product),
		"quantity":    item.Quantity,
		"price":       item.Price,
		"total_price": item.TotalPrice(),
	}
}

func orderPayload(order *models.Order) fiber.Map {
	items := make([]fiber.Map, 0, len(order.Items))
	for i := range order.Items {
		items = append(items, orderItemPayload(&order.Items[i]))
	}
	return fiber.Map{
		"id":               order.ID,
		"order_number":     order.OrderNumber,
		"status":           order.Status,
		"total_amount":     order.TotalAmount,
		"shipping_address": order.ShippingAddress,
		"phone_number":     order.PhoneNumber,
		"notes":            order.Notes,
		"items":            items,
		"created_at":       order.CreatedAt,
		"updated_at":       order.UpdatedAt,
	}
}

// HandleListOrders returns the caller's own orders, newest first.
func (h *OrderHandler) HandleListOrders(c *fiber.Ctx) error {
	orders, err := h.service.ListOrders(middleware.UserID(c))
	if err != nil {
		return serviceErrorResponse(c, err)
	}
	payload := make([]fiber.Map, 0, len(orders))
	for i := range orders {
		payload = append(payload, orderPayload(&orders[i]))
	}
	return c.JSON(payload)
}

// HandleGetOrder returns one of the caller's orders. Another user's order
// is a 404.
func (h *OrderHandler) HandleGetOrder(c *fiber.Ctx) error {
	order, err := h.service.GetOrder(middleware.UserID(c), c.Params("id"))
	if err != nil {
		return serviceErrorResponse(c, err)
	}
	return c.JSON(orderPayload(order))
}

// CheckoutRequest is the shipping payload for order creation.
type CheckoutRequest struct {
	ShippingAddress string `json:"shipping_address" validate:"required"`
	PhoneNumber     string `json:"phone_number" validate:"required"`
	Notes           string `json:"notes"`
}

// HandleCheckout turns the caller's cart into an order. An empty cart is a
// 400, a missing cart a 404.
func (h *OrderHandler) HandleCheckout(c *fiber.Ctx) error {
	var req CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	order, err := h.service.Checkout(middleware.UserID(c), services.CheckoutInput{
		ShippingAddress: req.ShippingAddress,
		PhoneNumber:     req.PhoneNumber,
		Notes:           req.Notes,
	})
	if err != nil {
		return serviceErrorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(orderPayload(order))
}
