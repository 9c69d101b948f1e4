package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rogpool/service-reports/internal/api/metrics"
	"github.com/rogpool/service-reports/internal/core/ports"
)

// ReportHandler handles HTTP requests for service reports.
type ReportHandler struct {
	service ports.ReportService
}

func NewReportHandler(service ports.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// Create files a new service report as the authenticated user.
//
// @Summary      Create service report
// @Tags         reports
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createReportRequest  true  "Report"
// @Success      201   {object}  domain.ServiceReport
// @Failure      401   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Failure      422   {object}  ErrorResponse
// @Router       /reports [post]
func (h *ReportHandler) Create(c echo.Context) error {
	actor, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req createReportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	report, err := h.service.Create(c.Request().Context(), actor, ports.CreateReportInput{
		ClientID:    req.ClientID,
		Description: req.Description,
		Photos:      req.Photos,
		Priority:    req.Priority,
	})
	if err != nil {
		return err
	}
	metrics.ReportsCreatedTotal.WithLabelValues(string(report.Priority)).Inc()

	return c.JSON(http.StatusCreated, report)
}

// List returns reports visible to the caller: all of them for admins, only
// their own for employees.
//
// @Summary      List service reports
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.ServiceReport
// @Failure      401  {object}  ErrorResponse
// @Router       /reports [get]
func (h *ReportHandler) List(c echo.Context) error {
	actor, err := ctxUser(c)
	if err != nil {
		return err
	}
	reports, err := h.service.List(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orEmpty(reports))
}

// Update applies a partial admin update to a report.
//
// @Summary      Update service report
// @Tags         reports
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Report ID"
// @Param        body  body      updateReportRequest  true  "Fields to change"
// @Success      200   {object}  domain.ServiceReport
// @Failure      403   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Failure      422   {object}  ErrorResponse
// @Router       /reports/{id} [put]
func (h *ReportHandler) Update(c echo.Context) error {
	actor, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req updateReportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	patch, err := toReportPatch(req)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	report, err := h.service.Update(c.Request().Context(), actor, c.Param("id"), patch)
	if err != nil {
		return err
	}
	if !patch.Empty() {
		metrics.ReportUpdatesTotal.WithLabelValues(string(report.Status)).Inc()
	}

	return c.JSON(http.StatusOK, report)
}
