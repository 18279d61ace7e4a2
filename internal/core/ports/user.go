package ports

import (
	"context"

	"github.com/avatarctic/trip-search/internal/core/domain/user"
)

// UserRepository defines the interface for local user persistence.
type UserRepository interface {
	// FindBySubject returns ok=false when no user exists for the subject.
	FindBySubject(ctx context.Context, subject string) (*user.User, bool, error)
	Create(ctx context.Context, u *user.User) error
	Update(ctx context.Context, u *user.User) error
}

// UserService defines the user business logic.
type UserService interface {
	// EnsureUser finds the local user for the identity claims, creating it
	// on first sight and refreshing email/name when they drift.
	EnsureUser(ctx context.Context, input user.EnsureUserInput) (*user.User, error)
	// RegisterUser creates the account at the identity provider and
	// persists the local row.
	RegisterUser(ctx context.Context, req *user.CreateUserRequest) (*user.User, error)
}

// IdentityUser is the provider-side account created during registration.
type IdentityUser struct {
	Subject string
	Email   string
	Name    *string
}

// IdentityProvider abstracts the external identity management API that owns
// credentials. Passwords never touch local storage.
type IdentityProvider interface {
	CreateUser(ctx context.Context, email, password string, name *string) (*IdentityUser, error)
}
