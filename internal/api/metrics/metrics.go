// Package metrics defines the custom Prometheus collectors of the
// service-report API. HTTP request metrics come from echoprometheus; the
// collectors here count domain outcomes.
//
// All collectors register with the default registry via promauto at import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "poolsvc"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ReportsCreatedTotal counts service reports filed by employees.
// Label:
//   - priority: "URGENT", "SAME WEEK" or "NEXT WEEK"
var ReportsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reports_created_total",
		Help:      "Total number of service reports created, by priority.",
	},
	[]string{"priority"},
)

// ReportUpdatesTotal counts admin updates applied to reports.
// Label:
//   - status: the report status after the update
var ReportUpdatesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "report_updates_total",
		Help:      "Total number of service report updates, by resulting status.",
	},
	[]string{"status"},
)

// ClientsImportedTotal counts clients created through spreadsheet import.
var ClientsImportedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "clients_imported_total",
		Help:      "Total number of clients created from uploaded spreadsheets.",
	},
)

// Login outcome label values.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)
