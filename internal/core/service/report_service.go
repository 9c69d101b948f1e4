package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rogpool/service-reports/internal/core/domain"
	"github.com/rogpool/service-reports/internal/core/ports"
)

type ReportService struct {
	reports ports.ReportRepository
	clients ports.ClientRepository
	logger  zerolog.Logger
}

func NewReportService(reports ports.ReportRepository, clients ports.ClientRepository, logger zerolog.Logger) *ReportService {
	return &ReportService{reports: reports, clients: clients, logger: logger}
}

// Create files a new report for an existing client on behalf of actor.
func (s *ReportService) Create(ctx context.Context, actor *domain.User, in ports.CreateReportInput) (*domain.ServiceReport, error) {
	if actor == nil {
		return nil, domain.ErrUnauthorized
	}
	priority := domain.Priority(in.Priority)
	if !priority.Valid() {
		return nil, domain.ErrInvalidInput
	}

	client, err := s.clients.FindByID(ctx, in.ClientID)
	if err != nil {
		return nil, err
	}

	ts := now()
	photos := in.Photos
	if photos == nil {
		photos = []string{}
	}
	report := &domain.ServiceReport{
		ID:                  newID(),
		ClientID:            client.ID,
		ClientName:          client.Name,
		EmployeeID:          actor.ID,
		EmployeeName:        actor.Username,
		Description:         in.Description,
		Photos:              photos,
		Priority:            priority,
		Status:              domain.StatusReported,
		RequestDate:         ts,
		AdminNotes:          "",
		CreatedAt:           ts,
		CreatedTime:         ts.Format("15:04"),
		LastModified:        ts,
		ModificationHistory: []domain.Modification{},
	}

	if err := s.reports.Create(ctx, report); err != nil {
		s.logger.Error().Err(err).Msg("failed to create report")
		return nil, fmt.Errorf("create report: %w", err)
	}

	s.logger.Info().
		Str("report_id", report.ID).
		Str("client_id", report.ClientID).
		Str("employee", report.EmployeeName).
		Str("priority", string(report.Priority)).
		Msg("report created")
	return report, nil
}

// List returns every report to admins and only their own to employees,
// newest first in both cases.
func (s *ReportService) List(ctx context.Context, actor *domain.User) ([]*domain.ServiceReport, error) {
	if actor == nil {
		return nil, domain.ErrUnauthorized
	}
	filter := ports.ListReportsFilter{}
	if !actor.IsAdmin() {
		filter.EmployeeID = actor.ID
	}

	reports, err := s.reports.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return reports, nil
}

// Update applies an admin's partial changes. Status values are checked but
// any status may follow any other.
func (s *ReportService) Update(ctx context.Context, actor *domain.User, id string, patch domain.ReportPatch) (*domain.ServiceReport, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, domain.ErrInvalidInput
	}
	if patch.Priority != nil && !patch.Priority.Valid() {
		return nil, domain.ErrInvalidInput
	}

	if patch.Empty() {
		return s.reports.FindByID(ctx, id)
	}

	mod := domain.Modification{
		ModifiedAt: now(),
		ModifiedBy: actor.Username,
		Fields:     patch.Fields(),
	}
	updated, err := s.reports.Update(ctx, id, patch, mod)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("report_id", id).
		Strs("fields", mod.Fields).
		Str("status", string(updated.Status)).
		Str("by", actor.Username).
		Msg("report updated")
	return updated, nil
}
