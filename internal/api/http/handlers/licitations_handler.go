package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/licitation-service/internal/api/dto"
	"github.com/spec-kit/licitation-service/internal/auth"
	"github.com/spec-kit/licitation-service/internal/service"
	apperrors "github.com/spec-kit/licitation-service/pkg/util"
)

// LicitationsHandler manages licitation endpoints. Reads are public;
// mutations resolve the caller through the auth gate first.
type LicitationsHandler struct {
	service *service.LicitationService
	gate    *auth.Authenticator
}

// NewLicitationsHandler constructs the handler.
func NewLicitationsHandler(licitationService *service.LicitationService, gate *auth.Authenticator) *LicitationsHandler {
	return &LicitationsHandler{service: licitationService, gate: gate}
}

// List handles GET /api/licitations.
func (h *LicitationsHandler) List(c *fiber.Ctx) error {
	licitations, err := h.service.List(c.Context())
	if err != nil {
		return err
	}

	items := make([]dto.LicitationResponse, 0, len(licitations))
	for i := range licitations {
		items = append(items, dto.NewLicitationResponse(&licitations[i]))
	}
	return c.JSON(fiber.Map{
		"status": "success",
		"data":   items,
	})
}

// Get handles GET /api/licitations/:id.
func (h *LicitationsHandler) Get(c *fiber.Ctx) error {
	licitation, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   dto.NewLicitationResponse(licitation),
	})
}

// Create handles POST /api/licitations.
func (h *LicitationsHandler) Create(c *fiber.Ctx) error {
	current, err := h.gate.Authenticate(c.Context(), c.Get(fiber.HeaderAuthorization))
	if err != nil {
		return err
	}

	var req dto.CreateLicitationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid request payload")
	}

	licitation, err := h.service.Create(c.Context(), current.ID, service.CreateInput{
		Title:         req.Title,
		Description:   req.Description,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		IsLowestPrice: req.IsLowestPrice,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"status":  "success",
		"message": "Licitation created successfully",
		"data":    dto.NewLicitationResponse(licitation),
	})
}

// Update handles PUT /api/licitations/:id.
func (h *LicitationsHandler) Update(c *fiber.Ctx) error {
	current, err := h.gate.Authenticate(c.Context(), c.Get(fiber.HeaderAuthorization))
	if err != nil {
		return err
	}

	var req dto.UpdateLicitationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid request payload")
	}

	licitation, err := h.service.Update(c.Context(), current, c.Params("id"), service.UpdateInput{
		Title:         req.Title,
		Description:   req.Description,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		IsLowestPrice: req.IsLowestPrice,
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Licitation updated successfully",
		"data":    dto.NewLicitationResponse(licitation),
	})
}

// Delete handles DELETE /api/licitations/:id.
func (h *LicitationsHandler) Delete(c *fiber.Ctx) error {
	current, err := h.gate.Authenticate(c.Context(), c.Get(fiber.HeaderAuthorization))
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Context(), current, c.Params("id")); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Licitation deleted successfully",
	})
}
