package ports

import (
	"context"

	"github.com/rogpool/service-reports/internal/core/domain"
)

// ListReportsFilter narrows a report listing. An empty EmployeeID means no
// filter (admin view).
type ListReportsFilter struct {
	EmployeeID string
}

// ReportRepository defines persistence operations for service reports.
type ReportRepository interface {
	Create(ctx context.Context, r *domain.ServiceReport) error
	FindByID(ctx context.Context, id string) (*domain.ServiceReport, error)
	// List returns matching reports newest first.
	List(ctx context.Context, filter ListReportsFilter) ([]*domain.ServiceReport, error)
	// Update atomically applies patch, sets last_modified and appends mod to the
	// modification history, returning the updated report.
	Update(ctx context.Context, id string, patch domain.ReportPatch, mod domain.Modification) (*domain.ServiceReport, error)
}

// CreateReportInput carries the employee-supplied fields of a new report.
type CreateReportInput struct {
	ClientID    string
	Description string
	Photos      []string
	Priority    string
}

// ReportService defines the service report lifecycle use cases.
type ReportService interface {
	Create(ctx context.Context, actor *domain.User, in CreateReportInput) (*domain.ServiceReport, error)
	List(ctx context.Context, actor *domain.User) ([]*domain.ServiceReport, error)
	Update(ctx context.Context, actor *domain.User, id string, patch domain.ReportPatch) (*domain.ServiceReport, error)
}
