package ports

import (
	"context"
	"time"

	"github.com/rogpool/service-reports/internal/core/domain"
)

// TokenRevoker tracks bearer tokens that were explicitly logged out.
type TokenRevoker interface {
	// Revoke marks token as unusable. A zero ttl keeps the mark forever.
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// AuthService issues and verifies bearer tokens.
type AuthService interface {
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	// Authenticate verifies the token signature and resolves the embedded
	// username to a stored user.
	Authenticate(ctx context.Context, token string) (*domain.User, error)
	Logout(ctx context.Context, token string) error
	// EnsureAdmin creates the bootstrap admin account when it does not exist yet.
	EnsureAdmin(ctx context.Context, username, password string) (bool, error)
}
