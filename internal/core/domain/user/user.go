package user

import (
	"time"

	"github.com/google/uuid"
)

// User is the local projection of an identity-provider account. Subject is
// the provider's stable identifier (the JWT "sub" claim); email and name are
// best-effort copies of the provider profile and may be absent.
type User struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Subject   string    `json:"subject" db:"subject"`
	Email     *string   `json:"email" db:"email"`
	Name      *string   `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CreateUserRequest represents the request to register a new user.
type CreateUserRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	Name     *string `json:"name,omitempty"`
}

// EnsureUserInput carries the identity claims used to find-or-create the
// local user row on an authenticated request.
type EnsureUserInput struct {
	Subject string
	Email   *string
	Name    *string
}
