// Package app holds the application services and business logic.
package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"simplyblog/internal/domain"
	"simplyblog/internal/token"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrUnknownUser indicates that no account exists for the given email.
	ErrUnknownUser = errors.New("invalid user")
	// ErrWrongPassword indicates that the password did not match the stored hash.
	ErrWrongPassword = errors.New("invalid password")
	// ErrEmailTaken indicates that registration hit an existing email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrBadToken indicates a missing, malformed, expired, or revoked token.
	ErrBadToken = errors.New("unauthorized")
)

// bcryptCost matches the cost factor the front-end client was built against.
const bcryptCost = 10

// AuthService handles registration, login, and session-token verification.
type AuthService struct {
	users    domain.UserRepository
	codec    *token.Codec
	denylist domain.TokenDenylist
}

// NewAuthService creates a new authentication service.
func NewAuthService(users domain.UserRepository, codec *token.Codec, denylist domain.TokenDenylist) *AuthService {
	return &AuthService{
		users:    users,
		codec:    codec,
		denylist: denylist,
	}
}

// Register hashes the password and creates a new account with the default
// role. Duplicate emails surface as ErrEmailTaken.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, name, normalizeEmail(email), string(hash), domain.DefaultRole)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}

// Login authenticates the credentials and mints a signed session token
// carrying the user's email and role. The lookup failure and the password
// failure stay distinct so the client keeps its two messages.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, ErrUnknownUser
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrWrongPassword
	}

	tok, err := s.codec.Issue(user.Email, user.Role)
	if err != nil {
		return "", nil, err
	}
	return tok, user, nil
}

// Verify decodes a session token and returns the identity it proves.
// Bad signature, tampering, expiry, and revocation all collapse into
// ErrBadToken so the gate rejects them identically.
func (s *AuthService) Verify(ctx context.Context, raw string) (*domain.Identity, error) {
	claims, err := s.codec.Parse(raw)
	if err != nil {
		return nil, ErrBadToken
	}

	revoked, err := s.denylist.Revoked(ctx, raw)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrBadToken
	}

	return &domain.Identity{Email: claims.Email, Role: claims.Role}, nil
}

// Logout revokes the presented token until its natural expiry. Tokens that
// no longer parse have nothing left to revoke.
func (s *AuthService) Logout(ctx context.Context, raw string) error {
	until, err := s.codec.Expiry(raw)
	if err != nil {
		return nil
	}
	if time.Now().After(until) {
		return nil
	}
	return s.denylist.Revoke(ctx, raw, until)
}

// UserByEmail returns the account behind a verified identity.
func (s *AuthService) UserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUnknownUser
	}
	return user, nil
}

// ListUsers returns every registered account. Password hashes never reach
// the client; the field is projected out at the JSON boundary.
func (s *AuthService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// LoginWithProvisioning mints a session for an externally authenticated
// user (SSO), creating the account on first sight.
func (s *AuthService) LoginWithProvisioning(ctx context.Context, name, email string) (string, *domain.User, error) {
	normalized := normalizeEmail(email)
	user, err := s.users.GetByEmail(ctx, normalized)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		// No password for SSO accounts; an empty hash never matches bcrypt.
		user, err = s.users.Create(ctx, name, normalized, "", domain.DefaultRole)
		if errors.Is(err, domain.ErrDuplicateEmail) {
			// A concurrent callback won the insert.
			user, err = s.users.GetByEmail(ctx, normalized)
		}
		if err != nil {
			return "", nil, err
		}
		if user == nil {
			return "", nil, ErrUnknownUser
		}
	}

	tok, err := s.codec.Issue(user.Email, user.Role)
	if err != nil {
		return "", nil, err
	}
	return tok, user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
