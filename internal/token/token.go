// Package token signs and verifies the self-contained session tokens
// carried in the client cookie.
package token

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// TTL is how long an issued token stays valid.
const TTL = 24 * time.Hour

const issuer = "simplyblog"

// ErrInvalid covers every rejection class: bad signature, wrong algorithm,
// malformed token, or expiry in the past. Callers must not distinguish.
var ErrInvalid = errors.New("invalid token")

// Claims is the signed token payload.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwtlib.RegisteredClaims
}

// Codec issues and verifies HS256-signed session tokens.
type Codec struct {
	secret []byte
}

// NewCodec creates a Codec signing with the given server secret.
func NewCodec(secret string) (*Codec, error) {
	if secret == "" {
		return nil, errors.New("token secret is empty")
	}
	return &Codec{secret: []byte(secret)}, nil
}

// Issue mints a token for the given identity, expiring in TTL.
func (c *Codec) Issue(email, role string) (string, error) {
	return c.IssueAt(email, role, time.Now())
}

// IssueAt mints a token as if issued at the given instant.
func (c *Codec) IssueAt(email, role string, now time.Time) (string, error) {
	claims := Claims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Issuer:    issuer,
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(TTL)),
		},
	}
	tok := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return tok.SignedString(c.secret)
}

// Parse validates the token and returns its claims. A token is valid only
// if the signature verifies against the server secret and the current time
// is before its expiry.
func (c *Codec) Parse(raw string) (*Claims, error) {
	parsed, err := jwtlib.ParseWithClaims(raw, &Claims{}, func(t *jwtlib.Token) (interface{}, error) {
		return c.secret, nil
	}, jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Name}))
	if err != nil {
		return nil, ErrInvalid
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.Email == "" {
		return nil, ErrInvalid
	}
	return claims, nil
}

// Expiry reports when the token stops being valid, without requiring it to
// still be valid now. Used to bound denylist entries on logout.
func (c *Codec) Expiry(raw string) (time.Time, error) {
	parsed, err := jwtlib.ParseWithClaims(raw, &Claims{}, func(t *jwtlib.Token) (interface{}, error) {
		return c.secret, nil
	}, jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Name}), jwtlib.WithoutClaimsValidation())
	if err != nil {
		return time.Time{}, ErrInvalid
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || claims.ExpiresAt == nil {
		return time.Time{}, ErrInvalid
	}
	return claims.ExpiresAt.Time, nil
}
