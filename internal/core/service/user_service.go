package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/rogpool/service-reports/internal/core/domain"
	"github.com/rogpool/service-reports/internal/core/ports"
)

type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

// Create stores a new account with a bcrypt hash of its password. Only admins
// may create accounts; the role defaults to employee.
func (s *UserService) Create(ctx context.Context, actor *domain.User, in ports.CreateUserInput) (*domain.User, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	username := strings.TrimSpace(in.Username)
	role := in.Role
	if role == "" {
		role = domain.RoleEmployee
	}
	if username == "" || in.Password == "" || !domain.ValidRole(role) {
		return nil, domain.ErrInvalidInput
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           newID(),
		Username:     username,
		Role:         role,
		PasswordHash: hash,
		CreatedAt:    now(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Str("username", user.Username).Str("role", role).Str("by", actor.Username).Msg("user created")
	return user, nil
}

func (s *UserService) List(ctx context.Context, actor *domain.User) ([]*domain.User, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *UserService) Delete(ctx context.Context, actor *domain.User, id string) error {
	if !actor.IsAdmin() {
		return domain.ErrForbidden
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", id).Str("by", actor.Username).Msg("user deleted")
	return nil
}
