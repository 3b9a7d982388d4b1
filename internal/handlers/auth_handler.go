package handlers

import (
	"errors"
	"log"

	"gerai/internal/middleware"
	"gerai/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for authentication and accounts.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the account routes. auth guards the routes that
// need a valid access token; admin additionally requires the staff flag.
func (h *AuthHandler) RegisterRoutes(router fiber.Router, auth, admin fiber.Handler) {
	router.Post("/register", h.HandleRegister)
	router.Post("/login", h.HandleLogin)
	router.Post("/login/refresh", h.HandleRefresh)
	router.Post("/logout", auth, h.HandleLogout)
	router.Get("/check-auth", auth, h.HandleCheckAuth)
	router.Get("/profile", auth, h.HandleGetProfile)
	router.Put("/profile", auth, h.HandleUpdateProfile)
	router.Patch("/profile", auth, h.HandleUpdateProfile)
	router.Put("/change-password", auth, h.HandleChangePassword)
	router.Get("/stats", auth, admin, h.HandleStats)
}

// RegisterRequest is the registration payload. Password rules beyond
// presence are applied by the service so their order is deterministic.
type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Username    string `json:"username" validate:"required,min=3,max=100"`
	Password    string `json:"password" validate:"required"`
	Password2   string `json:"password2" validate:"required"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
	IsCustomer  *bool  `json:"is_customer"`
	IsMerchant  *bool  `json:"is_merchant"`
}

// HandleRegister creates a user and issues a token pair, treating the
// registration as an implicit login.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	user, pair, err := h.authService.Register(services.RegisterInput{
		Email:       req.Email,
		Username:    req.Username,
		Password:    req.Password,
		Password2:   req.Password2,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
		IsCustomer:  req.IsCustomer,
		IsMerchant:  req.IsMerchant,
	})
	if err != nil {
		return serviceErrorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"access":  pair.Access,
		"refresh": pair.Refresh,
		"user":    userPayload(user),
	})
}

// LoginRequest carries the login identifier and password. The email field
// accepts either an email address or a username.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin authenticates by email or username and issues a token pair.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	user, pair, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		return serviceErrorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"access":  pair.Access,
		"refresh": pair.Refresh,
		"user":    userPayload(user),
	})
}

// RefreshRequest carries the refresh token for /login/refresh and /logout.
type RefreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

// HandleRefresh mints a new access token from a refresh token. Any token
// problem is a 401 here; the caller is asking to be authenticated.
func (h *AuthHandler) HandleRefresh(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	access, err := h.authService.Refresh(req.Refresh)
	if err != nil {
		if errors.Is(err, services.ErrInvalidToken) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Token is invalid or expired",
			})
		}
		return serviceErrorResponse(c, err)
	}

	return c.JSON(fiber.Map{"access": access})
}

// HandleLogout blacklists the submitted refresh token. A malformed or
// already-revoked token is a client error, never a 500. The access token
// used to call this endpoint stays valid until its natural expiry.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	if err := h.authService.Logout(req.Refresh); err != nil {
		if errors.Is(err, services.ErrInvalidToken) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid refresh token",
			})
		}
		return serviceErrorResponse(c, err)
	}

	return c.JSON(fiber.Map{"message": "Logout successful"})
}

// HandleCheckAuth echoes the authenticated caller's identity.
func (h *AuthHandler) HandleCheckAuth(c *fiber.Ctx) error {
	user, err := h.authService.GetProfile(middleware.UserID(c))
	if err != nil {
		return serviceErrorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"authenticated": true,
		"user":          userPayload(user),
	})
}

// HandleGetProfile returns the caller's own profile.
func (h *AuthHandler) HandleGetProfile(c *fiber.Ctx) error {
	user, err := h.authService.GetProfile(middleware.UserID(c))
	if err != nil {
		return serviceErrorResponse(c, err)
	}
	return c.JSON(userPayload(user))
}

// ProfileUpdateRequest is a partial profile update; omitted fields keep
// their value, so PUT and PATCH behave alike.
type ProfileUpdateRequest struct {
	FirstName    *string `json:"first_name"`
	LastName     *string `json:"last_name"`
	PhoneNumber  *string `json:"phone_number"`
	Address      *string `json:"address"`
	ProfileImage *string `json:"profile_image"`
	IsCustomer   *bool   `json:"is_customer"`
	IsMerchant   *bool   `json:"is_merchant"`
}

// HandleUpdateProfile applies a profile update for the caller.
func (h *AuthHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	var req ProfileUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	user, err := h.authService.UpdateProfile(middleware.UserID(c), services.ProfileUpdate{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PhoneNumber:  req.PhoneNumber,
		Address:      req.Address,
		ProfileImage: req.ProfileImage,
		IsCustomer:   req.IsCustomer,
		IsMerchant:   req.IsMerchant,
	})
	if err != nil {
		return serviceErrorResponse(c, err)
	}
	return c.JSON(userPayload(user))
}

// ChangePasswordRequest carries the old and new password.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required"`
}

// HandleChangePassword verifies the old password and replaces it.
func (h *AuthHandler) HandleChangePassword(c *fiber.Ctx) error {
	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	if err := h.authService.ChangePassword(middleware.UserID(c), req.OldPassword, req.NewPassword); err != nil {
		return serviceErrorResponse(c, err)
	}

	return c.JSON(fiber.Map{"message": "Password updated successfully"})
}

// HandleStats returns the admin-only user statistics.
func (h *AuthHandler) HandleStats(c *fiber.Ctx) error {
	stats, err := h.authService.Stats()
	if err != nil {
		log.Printf("Error building user stats: %v", err)
		return serviceErrorResponse(c, err)
	}
	return c.JSON(stats)
}
