package handlers

import (
	"gerai/internal/models"
	"gerai/internal/repositories"
	"gerai/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CatalogHandler handles the public category and product endpoints.
type CatalogHandler struct {
	service *services.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(service *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// RegisterRoutes registers the catalog routes. All of them are public.
// The featured route must be registered before the slug route so
// "featured" is not captured as a slug.
func (h *CatalogHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/categories", h.HandleListCategories)
	router.Get("/categories/:slug", h.HandleGetCategory)
	router.Get("/products", h.HandleListProducts)
	router.Get("/products/featured", h.HandleFeaturedProducts)
	router.Get("/products/:slug", h.HandleGetProduct)
}

// HandleListCategories lists all active categories.
func (h *CatalogHandler) HandleListCategories(c *fiber.Ctx) error {
	categories, err := h.service.ListCategories()
	if err != nil {
		return serviceErrorResponse(c, err)
	}
	return c.JSON(categories)
}

// HandleGetCategory returns one active category by slug.
func (h *CatalogHandler) HandleGetCategory(c *fiber.Ctx) error {
	category, err := h.service.GetCategory(c.Params("slug"))
	if err != nil {
		return serviceErrorResponse(c, err)
	}
	return c.JSON(category)
}

// HandleListProducts lists active products. The category, search and
// featured query parameters compose; an absent parameter is no constraint.
func (h *CatalogHandler) HandleListProducts(c *fiber.Ctx) error {
	filter := repositories.ProductFilter{
		CategorySlug: c.Query("category"),
		Search:       c.Query("search"),
		FeaturedOnly: c.Query("featured") != "",
	}

	products, err := h.service.ListProducts(filter)
	if err != nil {
		return serviceErrorResponse(c, err)
	}
	return c.JSON(productListPayload(products))
}

// HandleGetProduct returns one active product by slug.
func (h *CatalogHandler) HandleGetProduct(c *fiber.Ctx) error {
	product, err := h.service.GetProduct(c.Params("slug"))
	if err != nil {
		return serviceErrorResponse(c, err)
	}
	return c.JSON(productPayload(product))
}

// HandleFeaturedProducts lists active featured products.
func (h *CatalogHandler) HandleFeaturedProducts(c *fiber.Ctx) error {
	products, err := h.service.FeaturedProducts()
	if err != nil {
		return serviceErrorResponse(c, err)
	}
	return c.JSON(productListPayload(products))
}

func productListPayload(products []models.Product) []fiber.Map {
	payload := make([]fiber.Map, 0, len(products))
	for i := range products {
		payload = append(payload, productPayload(&products[i]))
	}
	return payload
}
