package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/licitation-service/internal/api/dto"
	"github.com/spec-kit/licitation-service/internal/auth"
	"github.com/spec-kit/licitation-service/internal/service"
	apperrors "github.com/spec-kit/licitation-service/pkg/util"
)

// AuthHandler exposes registration, login and the admin user surface.
type AuthHandler struct {
	auth *service.AuthService
	gate *auth.Authenticator
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(authService *service.AuthService, gate *auth.Authenticator) *AuthHandler {
	return &AuthHandler{auth: authService, gate: gate}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid request payload")
	}

	user, token, exp, err := h.auth.Register(c.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"status":  "success",
		"message": "User registered successfully",
		"data": dto.AuthResponse{
			Token:     token,
			ExpiresAt: exp,
			User:      dto.NewUserResponse(user.PublicView()),
		},
	})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid request payload")
	}

	user, token, exp, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Login successful",
		"data": dto.AuthResponse{
			Token:     token,
			ExpiresAt: exp,
			User:      dto.NewUserResponse(user.PublicView()),
		},
	})
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	current, err := h.gate.Authenticate(c.Context(), c.Get(fiber.HeaderAuthorization))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data": fiber.Map{
			"user": dto.NewUserResponse(*current),
		},
	})
}

// ListUsers handles GET /api/auth/users. Admin only.
func (h *AuthHandler) ListUsers(c *fiber.Ctx) error {
	current, err := h.gate.Authenticate(c.Context(), c.Get(fiber.HeaderAuthorization))
	if err != nil {
		return err
	}

	users, err := h.auth.ListUsers(c.Context(), current)
	if err != nil {
		return err
	}

	items := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		items = append(items, dto.NewUserResponse(user))
	}
	return c.JSON(fiber.Map{
		"status": "success",
		"data": fiber.Map{
			"users": items,
		},
	})
}

// SetUserActive handles PATCH /api/auth/users/:id/active. Admin only.
func (h *AuthHandler) SetUserActive(c *fiber.Ctx) error {
	current, err := h.gate.Authenticate(c.Context(), c.Get(fiber.HeaderAuthorization))
	if err != nil {
		return err
	}

	var req dto.SetUserActiveRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid request payload")
	}
	if req.Active == nil {
		return apperrors.NewValidationError("Field active is required")
	}

	user, err := h.auth.SetUserActive(c.Context(), current, c.Params("id"), *req.Active)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "User updated successfully",
		"data": fiber.Map{
			"user": dto.NewUserResponse(*user),
		},
	})
}
