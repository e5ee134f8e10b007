// Package domain contains the core business entities and interfaces.
package domain

import (
	"context"
	"errors"
	"time"
)

// DefaultRole is assigned to every user created through registration.
const DefaultRole = "user"

// ErrDuplicateEmail is returned by UserRepository.Create when the email is
// already registered. Email uniqueness is enforced by the store.
var ErrDuplicateEmail = errors.New("duplicate email")

// User represents a registered account.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Identity is the decoded content of a verified session token.
type Identity struct {
	Email string
	Role  string
}

// UserRepository defines the port for user persistence operations.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, name, email, passwordHash, role string) (*User, error)
	List(ctx context.Context) ([]User, error)
}

// TokenDenylist records revoked session tokens until their natural expiry.
type TokenDenylist interface {
	Revoke(ctx context.Context, token string, until time.Time) error
	Revoked(ctx context.Context, token string) (bool, error)
	PurgeExpired(ctx context.Context) error
}
