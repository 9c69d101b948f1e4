package handler

import (
	"time"

	"github.com/rogpool/service-reports/internal/core/domain"
)

// ErrorResponse is the error envelope returned on all 4xx/5xx responses.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type loginResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	User        userSummary `json:"user"`
}

// --- Users ---

type createUserRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"     validate:"omitempty,oneof=admin employee"`
}

// --- Clients ---

type createClientRequest struct {
	Name    string `json:"name"    validate:"required"`
	Address string `json:"address"`
}

// --- Reports ---

type createReportRequest struct {
	ClientID    string   `json:"client_id"   validate:"required"`
	Description string   `json:"description"`
	Photos      []string `json:"photos"      validate:"max=5"`
	Priority    string   `json:"priority"    validate:"required,priority"`
}

// updateReportRequest holds optional fields; nil means "leave unchanged".
type updateReportRequest struct {
	Status         *domain.ReportStatus `json:"status"          validate:"omitempty,report_status"`
	AdminNotes     *string              `json:"admin_notes"`
	EmployeeNotes  *string              `json:"employee_notes"`
	CompletionDate *string              `json:"completion_date"`
	Description    *string              `json:"description"`
	Priority       *domain.Priority     `json:"priority"        validate:"omitempty,priority"`
	Photos         *[]string            `json:"photos"          validate:"omitempty,max=5"`
}

// --- Health ---

type rootResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
	CheckedAt    time.Time                   `json:"checked_at"`
}
