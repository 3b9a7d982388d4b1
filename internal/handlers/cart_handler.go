package handlers

import (
	"gerai/internal/middleware"
	"gerai/internal/models"
	"gerai/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the caller's cart.
type CartHandler struct {
	service  *services.CartService
	validate *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the cart routes; every one requires an access
// token.
func (h *CartHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	router.Get("/cart", auth, h.HandleGetCart)
	router.Post("/cart/add", auth, h.HandleAddToCart)
	router.Put("/cart/update/:id", auth, h.HandleUpdateItem)
	router.Patch("/cart/update/:id", auth, h.HandleUpdateItem)
	router.Delete("/cart/remove/:id", auth, h.HandleRemoveItem)
}

func cartItemPayload(item *models.CartItem) fiber.Map {
	return fiber.Map{
		"id":          item.ID,
		"product":     productPayload(&item.Product),
		"product_id":  item.ProductID,
		"quantity":    item.Quantity,
		"total_price": item.TotalPrice(),
	}
}

func cartPayload(cart *models.Cart) fiber.Map {
	items := make([]fiber.Map, 0, len(cart.Items))
	for i := range cart.Items {
		items = append(items, cartItemPayload(&cart.Items[i]))
	}
	return fiber.Map{
		"id":          cart.ID,
		"items":       items,
		"total_price": cart.TotalPrice(),
		"total_items": cart.TotalItems(),
		"created_at":  cart.CreatedAt,
	}
}

// HandleGetCart returns the caller's cart with computed totals, creating an
// empty cart on first access.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	cart, err := h.service.GetCart(middleware.UserID(c))
	if err != nil {
		return serviceErrorResponse(c, err)
	}
	return c.JSON(cartPayload(cart))
}

// AddToCartRequest adds a product to the cart. Quantity defaults to 1.
type AddToCartRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity"`
}

// HandleAddToCart accumulates a line: an existing line for the product has
// its quantity incremented rather than replaced.
func (h *CartHandler) HandleAddToCart(c *fiber.Ctx) error {
	var req AddToCartRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	cart, err := h.service.AddToCart(middleware.UserID(c), req.ProductID, req.Quantity)
	if err != nil {
		return serviceErrorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Product added to cart",
		"cart":    cartPayload(cart),
	})
}

// UpdateCartItemRequest overwrites a line's quantity.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"required,gte=1"`
}

// HandleUpdateItem sets a line's quantity outright.
func (h *CartHandler) HandleUpdateItem(c *fiber.Ctx) error {
	var req UpdateCartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	item, err := h.service.UpdateItem(middleware.UserID(c), c.Params("id"), req.Quantity)
	if err != nil {
		return serviceErrorResponse(c, err)
	}
	return c.JSON(cartItemPayload(item))
}

// HandleRemoveItem deletes a line from the caller's cart.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	if err := h.service.RemoveItem(middleware.UserID(c), c.Params("id")); err != nil {
		return serviceErrorResponse(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
