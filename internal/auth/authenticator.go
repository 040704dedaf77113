package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/licitation-service/internal/domain"
	"github.com/spec-kit/licitation-service/internal/repository"
	apperrors "github.com/spec-kit/licitation-service/pkg/util"
)

// Authenticator resolves a raw Authorization header to an active user.
// Handlers call it explicitly and pass the result into service calls;
// there is no request-scoped principal storage.
type Authenticator struct {
	tokens *TokenManager
	users  repository.UserRepository
}

// NewAuthenticator constructs the gate.
func NewAuthenticator(tokens *TokenManager, users repository.UserRepository) *Authenticator {
	return &Authenticator{tokens: tokens, users: users}
}

// Authenticate verifies the bearer token and loads the user behind it.
// A missing token yields 401; a bad, expired or unresolvable token yields
// 403. That asymmetry is part of the contract.
func (a *Authenticator) Authenticate(ctx context.Context, authHeader string) (*domain.AuthenticatedUser, error) {
	if authHeader == "" {
		return nil, apperrors.NewUnauthenticated("Access denied. No token provided.")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return nil, apperrors.NewUnauthenticated("Access denied. No token provided.")
	}

	claims, err := a.tokens.ParseToken(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, apperrors.NewForbidden("Invalid or expired token")
	}

	user, err := a.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewForbidden("Invalid token or user is inactive")
		}
		return nil, apperrors.MapError(err)
	}
	if !user.IsActive {
		return nil, apperrors.NewForbidden("Invalid token or user is inactive")
	}

	view := user.PublicView()
	return &view, nil
}

// RequireAdmin enforces the admin flag on an already-resolved user.
func RequireAdmin(user *domain.AuthenticatedUser) error {
	if user == nil || !user.IsAdmin {
		return apperrors.NewForbidden("Access denied. Admin rights required.")
	}
	return nil
}
