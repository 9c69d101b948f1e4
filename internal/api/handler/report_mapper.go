package handler

import (
	"fmt"
	"strings"
	"time"

	"github.com/rogpool/service-reports/internal/core/domain"
)

// completionDateLayouts are tried in order. Values without a zone are UTC.
var completionDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.DateOnly,
}

func parseCompletionDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range completionDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("completion_date %q is not an ISO-8601 date or datetime", s)
}

func toReportPatch(req updateReportRequest) (domain.ReportPatch, error) {
	patch := domain.ReportPatch{
		Status:        req.Status,
		AdminNotes:    req.AdminNotes,
		EmployeeNotes: req.EmployeeNotes,
		Description:   req.Description,
		Priority:      req.Priority,
		Photos:        req.Photos,
	}
	if req.CompletionDate != nil {
		t, err := parseCompletionDate(*req.CompletionDate)
		if err != nil {
			return domain.ReportPatch{}, err
		}
		patch.CompletionDate = &t
	}
	return patch, nil
}
