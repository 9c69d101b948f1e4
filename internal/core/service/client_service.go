package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/rogpool/service-reports/internal/core/domain"
	"github.com/rogpool/service-reports/internal/core/ports"
)

type ClientService struct {
	repo   ports.ClientRepository
	parser ports.ClientSheetParser
	logger zerolog.Logger
}

func NewClientService(repo ports.ClientRepository, parser ports.ClientSheetParser, logger zerolog.Logger) *ClientService {
	return &ClientService{repo: repo, parser: parser, logger: logger}
}

// List is open to any authenticated caller.
func (s *ClientService) List(ctx context.Context) ([]*domain.Client, error) {
	clients, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	return clients, nil
}

func (s *ClientService) Create(ctx context.Context, actor *domain.User, name, address string) (*domain.Client, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}

	client := &domain.Client{
		ID:        newID(),
		Name:      name,
		Address:   strings.TrimSpace(address),
		CreatedAt: now(),
	}
	if err := s.repo.Create(ctx, client); err != nil {
		s.logger.Error().Err(err).Msg("failed to create client")
		return nil, fmt.Errorf("create client: %w", err)
	}

	s.logger.Info().Str("client_id", client.ID).Str("name", client.Name).Msg("client created")
	return client, nil
}

// Delete removes a client. Reports filed against it are left in place.
func (s *ClientService) Delete(ctx context.Context, actor *domain.User, id string) error {
	if !actor.IsAdmin() {
		return domain.ErrForbidden
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("client_id", id).Str("by", actor.Username).Msg("client deleted")
	return nil
}

func (s *ClientService) Import(ctx context.Context, actor *domain.User, filename string, r io.Reader) (int, error) {
	if !actor.IsAdmin() {
		return 0, domain.ErrForbidden
	}

	rows, err := s.parser.Parse(filename, r)
	if err != nil {
		return 0, err
	}

	created := now()
	clients := make([]*domain.Client, 0, len(rows))
	for _, row := range rows {
		clients = append(clients, &domain.Client{
			ID:        newID(),
			Name:      row.Name,
			Address:   row.Address,
			CreatedAt: created,
		})
	}

	if len(clients) > 0 {
		if err := s.repo.CreateMany(ctx, clients); err != nil {
			return 0, fmt.Errorf("import clients: %w", err)
		}
	}

	s.logger.Info().Str("file", filename).Int("count", len(clients)).Str("by", actor.Username).Msg("clients imported")
	return len(clients), nil
}
