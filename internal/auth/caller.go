package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const RoleAdmin = "admin"

var (
	ErrMissingToken = errors.New("missing access token")
	ErrInvalidToken = errors.New("invalid access token")
	ErrEmptySecret  = errors.New("signing secret is empty")
)

// Caller is the identity the session check vouched for. It is only used for
// audit logging and the admin gate.
type Caller struct {
	ID   string
	Role string
}

func (c Caller) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// Claims is the token payload issued by the storefront session service.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// ParseCaller verifies an HS256 token and returns the caller it names.
func ParseCaller(token string, secret []byte) (Caller, error) {
	if len(secret) == 0 {
		return Caller{}, fmt.Errorf("%w: %w", ErrInvalidToken, ErrEmptySecret)
	}
	if token == "" {
		return Caller{}, ErrMissingToken
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return Caller{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return Caller{}, fmt.Errorf("%w: no subject", ErrInvalidToken)
	}

	return Caller{ID: claims.Subject, Role: claims.Role}, nil
}

// IssueToken signs a token for caller that expires after ttl.
func IssueToken(caller Caller, secret []byte, ttl time.Duration) (string, error) {
	if len(secret) == 0 {
		return "", ErrEmptySecret
	}
	now := time.Now()
	claims := Claims{
		Role: caller.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   caller.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

type ctxKey struct{}

func WithCaller(ctx context.Context, c Caller) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

func CallerFrom(ctx context.Context) (Caller, bool) {
	c, ok := ctx.Value(ctxKey{}).(Caller)
	return c, ok
}
