package handlers

import (
	"errors"
	"fmt"
	"log"

	"gerai/internal/models"
	"gerai/internal/repositories"
	"gerai/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// validationErrorResponse turns validator failures into the field-keyed 400
// body shared by every handler.
func validationErrorResponse(c *fiber.Ctx, err error) error {
	errorMessages := make(map[string]string)
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":   "Validation failed",
		"details": errorMessages,
	})
}

// serviceErrorResponse maps service and repository errors onto HTTP status
// codes: field errors and business rules to 400, auth failures to 401,
// missing or foreign-owned rows to 404, everything else to 500.
func serviceErrorResponse(c *fiber.Ctx, err error) error {
	var fieldErrs services.FieldErrors
	switch {
	case errors.As(err, &fieldErrs):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Validation failed",
			"details": fieldErrs,
		})
	case errors.Is(err, services.ErrEmptyCart):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cart is empty",
		})
	case errors.Is(err, services.ErrInvalidCredentials), errors.Is(err, services.ErrAccountDisabled):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.Is(err, repositories.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Not found",
		})
	}
	log.Printf("Unhandled service error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Internal server error",
	})
}

// userPayload is the user shape echoed by login, registration, check-auth
// and profile responses.
func userPayload(u *models.User) fiber.Map {
	return fiber.Map{
		"id":            u.ID,
		"email":         u.Email,
		"username":      u.Username,
		"first_name":    u.FirstName,
		"last_name":     u.LastName,
		"phone_number":  u.PhoneNumber,
		"address":       u.Address,
		"profile_image": u.ProfileImage,
		"is_customer":   u.IsCustomer,
		"is_merchant":   u.IsMerchant,
	}
}

// productPayload adds the derived price fields to a product.
func productPayload(p *models.Product) fiber.Map {
	images := p.Images
	if images == nil {
		images = []models.ProductImage{}
	}
	return fiber.Map{
		"id":                  p.ID,
		"name":                p.Name,
		"slug":                p.Slug,
		"description":         p.Description,
		"price":               p.Price,
		"discount_price":      p.DiscountPrice,
		"current_price":       p.CurrentPrice(),
		"discount_percentage": p.DiscountPercentage(),
		"stock_quantity":      p.StockQuantity,
		"category":            p.CategoryID,
		"category_name":       p.Category.Name,
		"images":              images,
		"is_active":           p.IsActive,
		"is_featured":         p.IsFeatured,
		"created_at":          p.CreatedAt,
		"updated_at":          p.UpdatedAt,
	}
}
