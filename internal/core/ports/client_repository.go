package ports

import (
	"context"
	"io"

	"github.com/rogpool/service-reports/internal/core/domain"
)

// ClientRepository defines persistence operations for clients.
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) error
	CreateMany(ctx context.Context, clients []*domain.Client) error
	FindByID(ctx context.Context, id string) (*domain.Client, error)
	// List returns all clients sorted ascending by name.
	List(ctx context.Context) ([]*domain.Client, error)
	Delete(ctx context.Context, id string) error
}

// ClientRow is one data row read from an uploaded spreadsheet.
type ClientRow struct {
	Name    string
	Address string
}

// ClientSheetParser turns an uploaded workbook into client rows. The filename
// selects the format.
type ClientSheetParser interface {
	Parse(filename string, r io.Reader) ([]ClientRow, error)
}

// ClientService defines client management use cases.
type ClientService interface {
	List(ctx context.Context) ([]*domain.Client, error)
	Create(ctx context.Context, actor *domain.User, name, address string) (*domain.Client, error)
	Delete(ctx context.Context, actor *domain.User, id string) error
	// Import creates one client per spreadsheet row and returns how many were created.
	Import(ctx context.Context, actor *domain.User, filename string, r io.Reader) (int, error)
}
