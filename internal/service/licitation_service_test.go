package service_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/licitation-service/internal/domain"
	"github.com/spec-kit/licitation-service/internal/service"
	apperrors "github.com/spec-kit/licitation-service/pkg/util"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

var (
	owner   = &domain.AuthenticatedUser{ID: "user-1", Username: "alice", Email: "a@x.com"}
	other   = &domain.AuthenticatedUser{ID: "user-2", Username: "bob", Email: "b@x.com"}
	adminUs = &domain.AuthenticatedUser{ID: "user-3", Username: "root", Email: "r@x.com", IsAdmin: true}
)

func newLicitationService(repo *fakeLicitationRepo) *service.LicitationService {
	return service.NewLicitationService(repo, nil, nil)
}

func validCreateInput() service.CreateInput {
	return service.CreateInput{
		Title:       "Road works",
		Description: "Resurfacing of the main road",
		StartDate:   "2025-01-01",
		EndDate:     "2025-01-10",
	}
}

func mustCreate(t *testing.T, svc *service.LicitationService, creatorID string, input service.CreateInput) *domain.Licitation {
	t.Helper()
	licitation, err := svc.Create(context.Background(), creatorID, input)
	require.NoError(t, err)
	return licitation
}

func TestCreate_Success(t *testing.T) {
	t.Parallel()
	svc := newLicitationService(newFakeLicitationRepo())

	licitation := mustCreate(t, svc, owner.ID, validCreateInput())

	assert.NotEmpty(t, licitation.ID)
	assert.Equal(t, "Road works", licitation.Title)
	require.NotNil(t, licitation.CreatorID)
	assert.Equal(t, owner.ID, *licitation.CreatorID)
	assert.True(t, licitation.IsLowestPrice, "defaults to lowest-price-wins")
	assert.True(t, licitation.EndDate.After(licitation.StartDate))
}

func TestCreate_ExplicitHighestPrice(t *testing.T) {
	t.Parallel()
	svc := newLicitationService(newFakeLicitationRepo())

	input := validCreateInput()
	input.IsLowestPrice = boolPtr(false)
	licitation := mustCreate(t, svc, owner.ID, input)
	assert.False(t, licitation.IsLowestPrice)
}

func TestCreate_Rfc3339Dates(t *testing.T) {
	t.Parallel()
	svc := newLicitationService(newFakeLicitationRepo())

	input := validCreateInput()
	input.StartDate = "2025-01-01T09:00:00Z"
	input.EndDate = "2025-01-01T17:00:00Z"
	licitation := mustCreate(t, svc, owner.ID, input)
	assert.Equal(t, 8*time.Hour, licitation.EndDate.Sub(licitation.StartDate))
}

func TestCreate_Validation(t *testing.T) {
	t.Parallel()
	svc := newLicitationService(newFakeLicitationRepo())

	tests := []struct {
		name    string
		mutate  func(*service.CreateInput)
		message string
	}{
		{"missing title", func(in *service.CreateInput) { in.Title = "" }, "Missing required fields: title, description, startDate, endDate"},
		{"blank title", func(in *service.CreateInput) { in.Title = "   " }, "Missing required fields: title, description, startDate, endDate"},
		{"missing description", func(in *service.CreateInput) { in.Description = "" }, "Missing required fields: title, description, startDate, endDate"},
		{"missing start date", func(in *service.CreateInput) { in.StartDate = "" }, "Missing required fields: title, description, startDate, endDate"},
		{"missing end date", func(in *service.CreateInput) { in.EndDate = "" }, "Missing required fields: title, description, startDate, endDate"},
		{"unparseable start date", func(in *service.CreateInput) { in.StartDate = "next tuesday" }, "Invalid start date"},
		{"unparseable end date", func(in *service.CreateInput) { in.EndDate = "soon" }, "Invalid end date"},
		{"end before start", func(in *service.CreateInput) { in.StartDate = "2025-01-10"; in.EndDate = "2025-01-01" }, "End date must be after start date"},
		{"end equals start", func(in *service.CreateInput) { in.StartDate = "2025-01-10"; in.EndDate = "2025-01-10" }, "End date must be after start date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validCreateInput()
			tt.mutate(&input)
			_, err := svc.Create(context.Background(), owner.ID, input)
			require.Error(t, err)
			domainErr := apperrors.ToDomainError(err)
			assert.Equal(t, http.StatusBadRequest, domainErr.HTTPStatus)
			assert.Equal(t, tt.message, domainErr.Message)
		})
	}
}

func TestGet(t *testing.T) {
	t.Parallel()
	svc := newLicitationService(newFakeLicitationRepo())
	ctx := context.Background()
	created := mustCreate(t, svc, owner.ID, validCreateInput())

	t.Run("idempotent read", func(t *testing.T) {
		first, err := svc.Get(ctx, created.ID)
		require.NoError(t, err)
		second, err := svc.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := svc.Get(ctx, "missing")
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, apperrors.ToDomainError(err).HTTPStatus)
	})
}

func TestList(t *testing.T) {
	t.Parallel()
	svc := newLicitationService(newFakeLicitationRepo())
	ctx := context.Background()

	empty, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	mustCreate(t, svc, owner.ID, validCreateInput())
	second := validCreateInput()
	second.Title = "Bridge repair"
	mustCreate(t, svc, other.ID, second)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Road works", all[0].Title)
	assert.Equal(t, "Bridge repair", all[1].Title)
}

func TestUpdate_Ownership(t *testing.T) {
	t.Parallel()
	svc := newLicitationService(newFakeLicitationRepo())
	ctx := context.Background()
	created := mustCreate(t, svc, owner.ID, validCreateInput())

	t.Run("non-owner non-admin forbidden", func(t *testing.T) {
		_, err := svc.Update(ctx, other, created.ID, service.UpdateInput{Title: strPtr("hijacked")})
		require.Error(t, err)
		domainErr := apperrors.ToDomainError(err)
		assert.Equal(t, http.StatusForbidden, domainErr.HTTPStatus)
	})

	t.Run("owner allowed", func(t *testing.T) {
		updated, err := svc.Update(ctx, owner, created.ID, service.UpdateInput{Title: strPtr("Road works phase 2")})
		require.NoError(t, err)
		assert.Equal(t, "Road works phase 2", updated.Title)
	})

	t.Run("admin allowed", func(t *testing.T) {
		updated, err := svc.Update(ctx, adminUs, created.ID, service.UpdateInput{Description: strPtr("amended")})
		require.NoError(t, err)
		assert.Equal(t, "amended", updated.Description)
		require.NotNil(t, updated.CreatorID)
		assert.Equal(t, owner.ID, *updated.CreatorID, "creator never reassigned")
	})

	t.Run("not found", func(t *testing.T) {
		_, err := svc.Update(ctx, owner, "missing", service.UpdateInput{})
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, apperrors.ToDomainError(err).HTTPStatus)
	})
}

func TestUpdate_DateRevalidation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	// Stored window is 2025-01-01 .. 2025-01-10.
	setup := func(t *testing.T) (*service.LicitationService, *domain.Licitation) {
		svc := newLicitationService(newFakeLicitationRepo())
		return svc, mustCreate(t, svc, owner.ID, validCreateInput())
	}

	t.Run("both supplied and consistent", func(t *testing.T) {
		svc, created := setup(t)
		updated, err := svc.Update(ctx, owner, created.ID, service.UpdateInput{
			StartDate: strPtr("2025-02-01"),
			EndDate:   strPtr("2025-02-15"),
		})
		require.NoError(t, err)
		assert.True(t, updated.EndDate.After(updated.StartDate))
	})

	t.Run("both supplied and inverted", func(t *testing.T) {
		svc, created := setup(t)
		_, err := svc.Update(ctx, owner, created.ID, service.UpdateInput{
			StartDate: strPtr("2025-02-15"),
			EndDate:   strPtr("2025-02-01"),
		})
		require.Error(t, err)
		assert.Equal(t, "End date must be after start date", apperrors.ToDomainError(err).Message)
	})

	t.Run("both supplied, one unparseable", func(t *testing.T) {
		svc, created := setup(t)
		_, err := svc.Update(ctx, owner, created.ID, service.UpdateInput{
			StartDate: strPtr("garbage"),
			EndDate:   strPtr("2025-02-01"),
		})
		require.Error(t, err)
		assert.Equal(t, "Invalid date format", apperrors.ToDomainError(err).Message)
	})

	t.Run("start only, before stored end", func(t *testing.T) {
		svc, created := setup(t)
		updated, err := svc.Update(ctx, owner, created.ID, service.UpdateInput{
			StartDate: strPtr("2025-01-05"),
		})
		require.NoError(t, err)
		assert.Equal(t, created.EndDate, updated.EndDate)
		assert.True(t, updated.EndDate.After(updated.StartDate))
	})

	t.Run("start only, after stored end", func(t *testing.T) {
		svc, created := setup(t)
		_, err := svc.Update(ctx, owner, created.ID, service.UpdateInput{
			StartDate: strPtr("2025-01-20"),
		})
		require.Error(t, err)
		assert.Equal(t, "End date must be after new start date", apperrors.ToDomainError(err).Message)
	})

	t.Run("end only, after stored start", func(t *testing.T) {
		svc, created := setup(t)
		updated, err := svc.Update(ctx, owner, created.ID, service.UpdateInput{
			EndDate: strPtr("2025-03-01"),
		})
		require.NoError(t, err)
		assert.Equal(t, created.StartDate, updated.StartDate)
		assert.True(t, updated.EndDate.After(updated.StartDate))
	})

	t.Run("end only, before stored start", func(t *testing.T) {
		svc, created := setup(t)
		_, err := svc.Update(ctx, owner, created.ID, service.UpdateInput{
			EndDate: strPtr("2024-12-25"),
		})
		require.Error(t, err)
		domainErr := apperrors.ToDomainError(err)
		assert.Equal(t, http.StatusBadRequest, domainErr.HTTPStatus)
		assert.Equal(t, "New end date must be after start date", domainErr.Message)
	})

	t.Run("neither supplied skips date validation", func(t *testing.T) {
		svc, created := setup(t)
		updated, err := svc.Update(ctx, owner, created.ID, service.UpdateInput{
			Title:         strPtr("renamed"),
			IsLowestPrice: boolPtr(false),
		})
		require.NoError(t, err)
		assert.Equal(t, created.StartDate, updated.StartDate)
		assert.Equal(t, created.EndDate, updated.EndDate)
		assert.Equal(t, "renamed", updated.Title)
		assert.False(t, updated.IsLowestPrice)
	})
}

func TestDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("owner deletes", func(t *testing.T) {
		svc := newLicitationService(newFakeLicitationRepo())
		created := mustCreate(t, svc, owner.ID, validCreateInput())

		require.NoError(t, svc.Delete(ctx, owner, created.ID))
		_, err := svc.Get(ctx, created.ID)
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, apperrors.ToDomainError(err).HTTPStatus)
	})

	t.Run("admin deletes another user's record", func(t *testing.T) {
		svc := newLicitationService(newFakeLicitationRepo())
		created := mustCreate(t, svc, owner.ID, validCreateInput())
		require.NoError(t, svc.Delete(ctx, adminUs, created.ID))
	})

	t.Run("non-owner non-admin forbidden", func(t *testing.T) {
		svc := newLicitationService(newFakeLicitationRepo())
		created := mustCreate(t, svc, owner.ID, validCreateInput())

		err := svc.Delete(ctx, other, created.ID)
		require.Error(t, err)
		assert.Equal(t, http.StatusForbidden, apperrors.ToDomainError(err).HTTPStatus)

		_, getErr := svc.Get(ctx, created.ID)
		require.NoError(t, getErr, "record survives a forbidden delete")
	})

	t.Run("not found", func(t *testing.T) {
		svc := newLicitationService(newFakeLicitationRepo())
		err := svc.Delete(ctx, owner, "missing")
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, apperrors.ToDomainError(err).HTTPStatus)
	})
}
