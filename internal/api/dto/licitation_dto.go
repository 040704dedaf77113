package dto

import (
	"time"

	"github.com/spec-kit/licitation-service/internal/domain"
)

// CreateLicitationRequest payload for creation. Dates are strings so the
// service can report invalid formats explicitly.
type CreateLicitationRequest struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	StartDate     string `json:"startDate"`
	EndDate       string `json:"endDate"`
	IsLowestPrice *bool  `json:"isLowestPrice"`
}

// UpdateLicitationRequest payload for partial updates. Nil fields keep
// their stored values.
type UpdateLicitationRequest struct {
	Title         *string `json:"title"`
	Description   *string `json:"description"`
	StartDate     *string `json:"startDate"`
	EndDate       *string `json:"endDate"`
	IsLowestPrice *bool   `json:"isLowestPrice"`
}

// CreatorResponse is the embedded creator identity.
type CreatorResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// LicitationResponse is the outward licitation shape.
type LicitationResponse struct {
	ID            string           `json:"id"`
	Title         string           `json:"title"`
	Description   string           `json:"description"`
	StartDate     time.Time        `json:"startDate"`
	EndDate       time.Time        `json:"endDate"`
	IsLowestPrice bool             `json:"isLowestPrice"`
	Creator       *CreatorResponse `json:"creator,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

// NewLicitationResponse maps the domain model.
func NewLicitationResponse(licitation *domain.Licitation) LicitationResponse {
	resp := LicitationResponse{
		ID:            licitation.ID,
		Title:         licitation.Title,
		Description:   licitation.Description,
		StartDate:     licitation.StartDate,
		EndDate:       licitation.EndDate,
		IsLowestPrice: licitation.IsLowestPrice,
		CreatedAt:     licitation.CreatedAt,
		UpdatedAt:     licitation.UpdatedAt,
	}
	if licitation.Creator != nil {
		resp.Creator = &CreatorResponse{
			ID:       licitation.Creator.ID,
			Username: licitation.Creator.Username,
			Email:    licitation.Creator.Email,
		}
	}
	return resp
}
