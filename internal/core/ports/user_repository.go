package ports

import (
	"context"

	"github.com/rogpool/service-reports/internal/core/domain"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	// Create inserts user. Returns domain.ErrUserExists when the username is taken.
	Create(ctx context.Context, user *domain.User) error
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	// Delete removes the user with the given id or returns domain.ErrUserNotFound.
	Delete(ctx context.Context, id string) error
}

// CreateUserInput carries the fields of a new account.
type CreateUserInput struct {
	Username string
	Password string
	Role     string
}

// UserService defines the admin-only account management use cases.
type UserService interface {
	Create(ctx context.Context, actor *domain.User, in CreateUserInput) (*domain.User, error)
	List(ctx context.Context, actor *domain.User) ([]*domain.User, error)
	Delete(ctx context.Context, actor *domain.User, id string) error
}
