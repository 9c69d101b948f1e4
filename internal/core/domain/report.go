package domain

import (
	"errors"
	"time"
)

// ReportStatus represents the lifecycle state of a service report.
type ReportStatus string

const (
	StatusReported   ReportStatus = "reported"
	StatusScheduled  ReportStatus = "scheduled"
	StatusInProgress ReportStatus = "in_progress"
	StatusCompleted  ReportStatus = "completed"
)

// Priority is how soon the reported issue needs attention.
type Priority string

const (
	PriorityUrgent   Priority = "URGENT"
	PrioritySameWeek Priority = "SAME WEEK"
	PriorityNextWeek Priority = "NEXT WEEK"
)

var ErrReportNotFound = errors.New("report not found")

// Valid reports whether s is a known status. Any known status may follow any
// other: ordering is left to the admin.
func (s ReportStatus) Valid() bool {
	switch s {
	case StatusReported, StatusScheduled, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	switch p {
	case PriorityUrgent, PrioritySameWeek, PriorityNextWeek:
		return true
	}
	return false
}

// Modification records which fields an admin update touched.
type Modification struct {
	ModifiedAt time.Time `json:"modified_at" bson:"modified_at"`
	ModifiedBy string    `json:"modified_by" bson:"modified_by"`
	Fields     []string  `json:"fields" bson:"fields"`
}

// ServiceReport is a maintenance request filed by an employee for a client.
// ClientName and EmployeeName are snapshots taken at creation.
type ServiceReport struct {
	ID                  string         `json:"id" bson:"id"`
	ClientID            string         `json:"client_id" bson:"client_id"`
	ClientName          string         `json:"client_name" bson:"client_name"`
	EmployeeID          string         `json:"employee_id" bson:"employee_id"`
	EmployeeName        string         `json:"employee_name" bson:"employee_name"`
	Description         string         `json:"description" bson:"description"`
	Photos              []string       `json:"photos" bson:"photos"`
	Priority            Priority       `json:"priority" bson:"priority"`
	Status              ReportStatus   `json:"status" bson:"status"`
	RequestDate         time.Time      `json:"request_date" bson:"request_date"`
	CompletionDate      *time.Time     `json:"completion_date" bson:"completion_date"`
	AdminNotes          string         `json:"admin_notes" bson:"admin_notes"`
	EmployeeNotes       string         `json:"employee_notes" bson:"employee_notes"`
	CreatedAt           time.Time      `json:"created_at" bson:"created_at"`
	CreatedTime         string         `json:"created_time" bson:"created_time"`
	LastModified        time.Time      `json:"last_modified" bson:"last_modified"`
	ModificationHistory []Modification `json:"modification_history" bson:"modification_history"`
}

// ReportPatch carries the fields of a partial report update. Nil means
// "leave untouched".
type ReportPatch struct {
	Status         *ReportStatus
	AdminNotes     *string
	EmployeeNotes  *string
	CompletionDate *time.Time
	Description    *string
	Priority       *Priority
	Photos         *[]string
}

// Fields returns the bson field names the patch sets, in a stable order.
func (p ReportPatch) Fields() []string {
	var out []string
	if p.Status != nil {
		out = append(out, "status")
	}
	if p.AdminNotes != nil {
		out = append(out, "admin_notes")
	}
	if p.EmployeeNotes != nil {
		out = append(out, "employee_notes")
	}
	if p.CompletionDate != nil {
		out = append(out, "completion_date")
	}
	if p.Description != nil {
		out = append(out, "description")
	}
	if p.Priority != nil {
		out = append(out, "priority")
	}
	if p.Photos != nil {
		out = append(out, "photos")
	}
	return out
}

// Empty reports whether the patch carries no fields.
func (p ReportPatch) Empty() bool {
	return len(p.Fields()) == 0
}

// Apply overwrites r's fields with those present in p.
func (p ReportPatch) Apply(r *ServiceReport) {
	if p.Status != nil {
		r.Status = *p.Status
	}
	if p.AdminNotes != nil {
		r.AdminNotes = *p.AdminNotes
	}
	if p.EmployeeNotes != nil {
		r.EmployeeNotes = *p.EmployeeNotes
	}
	if p.CompletionDate != nil {
		t := *p.CompletionDate
		r.CompletionDate = &t
	}
	if p.Description != nil {
		r.Description = *p.Description
	}
	if p.Priority != nil {
		r.Priority = *p.Priority
	}
	if p.Photos != nil {
		r.Photos = append([]string{}, (*p.Photos)...)
	}
}
