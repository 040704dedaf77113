package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/licitation-service/internal/auth"
	"github.com/spec-kit/licitation-service/internal/config"
	"github.com/spec-kit/licitation-service/internal/domain"
	"github.com/spec-kit/licitation-service/internal/events"
	"github.com/spec-kit/licitation-service/internal/repository"
	apperrors "github.com/spec-kit/licitation-service/pkg/util"
)

// AuthService coordinates registration and login flows plus the small
// admin user surface.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
	dispatcher events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, users repository.UserRepository, dispatcher events.Dispatcher) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTLHours),
		bcryptCost: cfg.Auth.BcryptCost,
		dispatcher: dispatcher,
	}
}

// Register creates a new account and issues a token for it. The very
// first account ever created is granted the admin flag. Count and create
// run as separate statements, so two concurrent first registrations can
// both end up admin; that matches the login backend this replaces.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*domain.User, string, time.Time, error) {
	if username == "" || email == "" || password == "" {
		return nil, "", time.Time{}, apperrors.NewValidationError("Username, email and password are required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, "", time.Time{}, apperrors.NewValidationError("Invalid email address")
	}

	exists, err := s.users.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	if exists {
		return nil, "", time.Time{}, apperrors.NewConflict("User with this username or email already exists")
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	count, err := s.users.Count(ctx)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		IsActive:     true,
		IsAdmin:      count == 0,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	s.publish(ctx, events.Event{
		Type:      events.EventUserRegistered,
		SubjectID: user.ID,
		ActorID:   user.ID,
		Payload: events.UserRegisteredPayload{
			Username: user.Username,
			Email:    user.Email,
			IsAdmin:  user.IsAdmin,
		},
	})
	return user, token, exp, nil
}

// Login authenticates by email and password and issues a fresh token.
// Unknown email and wrong password both surface as invalid credentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	if email == "" || password == "" {
		return nil, "", time.Time{}, apperrors.NewValidationError("Email and password are required")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewInvalidCredentials()
		}
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	if !user.IsActive {
		return nil, "", time.Time{}, apperrors.NewInactive("User is inactive")
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewInvalidCredentials()
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	return user, token, exp, nil
}

// ListUsers returns public views of every account. Admin only.
func (s *AuthService) ListUsers(ctx context.Context, caller *domain.AuthenticatedUser) ([]domain.AuthenticatedUser, error) {
	if err := auth.RequireAdmin(caller); err != nil {
		return nil, err
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	views := make([]domain.AuthenticatedUser, 0, len(users))
	for i := range users {
		views = append(views, users[i].PublicView())
	}
	return views, nil
}

// SetUserActive toggles the active flag on an account. Admin only.
func (s *AuthService) SetUserActive(ctx context.Context, caller *domain.AuthenticatedUser, userID string, active bool) (*domain.AuthenticatedUser, error) {
	if err := auth.RequireAdmin(caller); err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound(fmt.Sprintf("User with ID %s not found", userID))
		}
		return nil, apperrors.MapError(err)
	}
	user.IsActive = active
	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	view := user.PublicView()
	return &view, nil
}

// TokenManager exposes the underlying token manager for the auth gate.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
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
