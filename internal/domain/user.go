package domain

import "time"

// User is the domain model for registered accounts. PasswordHash never
// leaves the repository and service layers.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	IsActive     bool
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AuthenticatedUser is the reduced view the auth gate hands to request
// handling after resolving a token.
type AuthenticatedUser struct {
	ID       string
	Username string
	Email    string
	IsAdmin  bool
}

// PublicView strips the user down to what may leave the service.
func (u *User) PublicView() AuthenticatedUser {
	return AuthenticatedUser{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		IsAdmin:  u.IsAdmin,
	}
}
