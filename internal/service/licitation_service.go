package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/licitation-service/internal/cache"
	"github.com/spec-kit/licitation-service/internal/domain"
	"github.com/spec-kit/licitation-service/internal/events"
	"github.com/spec-kit/licitation-service/internal/repository"
	apperrors "github.com/spec-kit/licitation-service/pkg/util"
)

// LicitationService validates and executes licitation CRUD, enforcing the
// end-after-start invariant and creator-or-admin ownership on mutations.
type LicitationService struct {
	licitations repository.LicitationRepository
	listCache   *cache.LicitationCache
	dispatcher  events.Dispatcher
}

// NewLicitationService builds the service. Cache and dispatcher may be nil.
func NewLicitationService(licitations repository.LicitationRepository, listCache *cache.LicitationCache, dispatcher events.Dispatcher) *LicitationService {
	return &LicitationService{
		licitations: licitations,
		listCache:   listCache,
		dispatcher:  dispatcher,
	}
}

// CreateInput describes the licitation creation payload. Dates arrive as
// strings and are parsed here.
type CreateInput struct {
	Title         string
	Description   string
	StartDate     string
	EndDate       string
	IsLowestPrice *bool
}

// UpdateInput describes a partial update. Nil means the field was not
// supplied and keeps its stored value.
type UpdateInput struct {
	Title         *string
	Description   *string
	StartDate     *string
	EndDate       *string
	IsLowestPrice *bool
}

// List returns every licitation with its creator's public identity.
func (s *LicitationService) List(ctx context.Context) ([]domain.Licitation, error) {
	if cached, ok := s.listCache.GetList(ctx); ok {
		return cached, nil
	}
	licitations, err := s.licitations.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	s.listCache.SetList(ctx, licitations)
	return licitations, nil
}

// Get returns a single licitation by identifier.
func (s *LicitationService) Get(ctx context.Context, id string) (*domain.Licitation, error) {
	licitation, err := s.licitations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound(id)
		}
		return nil, apperrors.MapError(err)
	}
	return licitation, nil
}

// Create validates and persists a new licitation owned by creatorID.
func (s *LicitationService) Create(ctx context.Context, creatorID string, input CreateInput) (*domain.Licitation, error) {
	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	if title == "" || description == "" || input.StartDate == "" || input.EndDate == "" {
		return nil, apperrors.NewValidationError("Missing required fields: title, description, startDate, endDate")
	}

	start, err := parseDate(input.StartDate)
	if err != nil {
		return nil, apperrors.NewValidationError("Invalid start date")
	}
	end, err := parseDate(input.EndDate)
	if err != nil {
		return nil, apperrors.NewValidationError("Invalid end date")
	}
	if !end.After(start) {
		return nil, apperrors.NewValidationError("End date must be after start date")
	}

	isLowest := true
	if input.IsLowestPrice != nil {
		isLowest = *input.IsLowestPrice
	}

	licitation := &domain.Licitation{
		Title:         title,
		Description:   description,
		StartDate:     start,
		EndDate:       end,
		IsLowestPrice: isLowest,
		CreatorID:     &creatorID,
	}
	if err := s.licitations.Create(ctx, licitation); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.listCache.Invalidate(ctx)
	s.publish(ctx, events.Event{
		Type:      events.EventLicitationCreated,
		SubjectID: licitation.ID,
		ActorID:   creatorID,
		Payload: events.LicitationCreatedPayload{
			Title:         licitation.Title,
			StartDate:     licitation.StartDate,
			EndDate:       licitation.EndDate,
			IsLowestPrice: licitation.IsLowestPrice,
		},
	})
	return licitation, nil
}

// Update applies a partial update after re-checking the date invariant
// against whichever bound was not supplied.
func (s *LicitationService) Update(ctx context.Context, caller *domain.AuthenticatedUser, id string, input UpdateInput) (*domain.Licitation, error) {
	licitation, err := s.licitations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound(id)
		}
		return nil, apperrors.MapError(err)
	}
	if !canMutate(caller, licitation) {
		return nil, apperrors.NewForbidden("Not authorized to update this licitation")
	}

	switch {
	case input.StartDate != nil && input.EndDate != nil:
		start, startErr := parseDate(*input.StartDate)
		end, endErr := parseDate(*input.EndDate)
		if startErr != nil || endErr != nil {
			return nil, apperrors.NewValidationError("Invalid date format")
		}
		if !end.After(start) {
			return nil, apperrors.NewValidationError("End date must be after start date")
		}
		licitation.StartDate = start
		licitation.EndDate = end
	case input.StartDate != nil:
		start, err := parseDate(*input.StartDate)
		if err != nil {
			return nil, apperrors.NewValidationError("Invalid start date format")
		}
		if !licitation.EndDate.After(start) {
			return nil, apperrors.NewValidationError("End date must be after new start date")
		}
		licitation.StartDate = start
	case input.EndDate != nil:
		end, err := parseDate(*input.EndDate)
		if err != nil {
			return nil, apperrors.NewValidationError("Invalid end date format")
		}
		if !end.After(licitation.StartDate) {
			return nil, apperrors.NewValidationError("New end date must be after start date")
		}
		licitation.EndDate = end
	}

	if input.Title != nil {
		licitation.Title = *input.Title
	}
	if input.Description != nil {
		licitation.Description = *input.Description
	}
	if input.IsLowestPrice != nil {
		licitation.IsLowestPrice = *input.IsLowestPrice
	}

	if err := s.licitations.Update(ctx, licitation); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound(id)
		}
		return nil, apperrors.MapError(err)
	}

	s.listCache.Invalidate(ctx)
	s.publish(ctx, events.Event{
		Type:      events.EventLicitationUpdated,
		SubjectID: licitation.ID,
		ActorID:   caller.ID,
		Payload: events.LicitationUpdatedPayload{
			Title:     licitation.Title,
			StartDate: licitation.StartDate,
			EndDate:   licitation.EndDate,
		},
	})
	return licitation, nil
}

// Delete removes a licitation permanently after the same existence and
// ownership checks as Update.
func (s *LicitationService) Delete(ctx context.Context, caller *domain.AuthenticatedUser, id string) error {
	licitation, err := s.licitations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return notFound(id)
		}
		return apperrors.MapError(err)
	}
	if !canMutate(caller, licitation) {
		return apperrors.NewForbidden("Not authorized to delete this licitation")
	}

	if err := s.licitations.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return notFound(id)
		}
		return apperrors.MapError(err)
	}

	s.listCache.Invalidate(ctx)
	s.publish(ctx, events.Event{
		Type:      events.EventLicitationDeleted,
		SubjectID: id,
		ActorID:   caller.ID,
		Payload:   events.LicitationDeletedPayload{Title: licitation.Title},
	})
	return nil
}

func canMutate(caller *domain.AuthenticatedUser, licitation *domain.Licitation) bool {
	if caller == nil {
		return false
	}
	if caller.IsAdmin {
		return true
	}
	return licitation.CreatorID != nil && *licitation.CreatorID == caller.ID
}

func notFound(id string) error {
	return apperrors.NewNotFound(fmt.Sprintf("Licitation with ID %s not found", id))
}

// parseDate accepts RFC3339 timestamps and bare dates.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

func (s *LicitationService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
