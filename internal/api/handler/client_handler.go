package handler

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/rogpool/service-reports/internal/api/metrics"
	"github.com/rogpool/service-reports/internal/core/ports"
)

// importFormField is the multipart field carrying the spreadsheet.
const importFormField = "file"

var importExtensions = map[string]struct{}{
	".xlsx": {},
	".xls":  {},
	".csv":  {},
}

type ClientHandler struct {
	service ports.ClientService
}

func NewClientHandler(service ports.ClientService) *ClientHandler {
	return &ClientHandler{service: service}
}

// List returns all clients sorted by name.
//
// @Summary      List clients
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Client
// @Failure      401  {object}  ErrorResponse
// @Router       /clients [get]
func (h *ClientHandler) List(c echo.Context) error {
	clients, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orEmpty(clients))
}

// Create adds a single client.
//
// @Summary      Create client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createClientRequest  true  "Client"
// @Success      201   {object}  domain.Client
// @Failure      403   {object}  ErrorResponse
// @Failure      422   {object}  ErrorResponse
// @Router       /clients [post]
func (h *ClientHandler) Create(c echo.Context) error {
	actor, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req createClientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	client, err := h.service.Create(c.Request().Context(), actor, req.Name, req.Address)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, client)
}

// Delete removes a client. Reports filed against it are kept.
//
// @Summary      Delete client
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Client ID"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /clients/{id} [delete]
func (h *ClientHandler) Delete(c echo.Context) error {
	actor, err := ctxUser(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Client deleted successfully"})
}

// Import bulk-creates clients from an uploaded spreadsheet.
//
// @Summary      Import clients from a spreadsheet
// @Description  First sheet (or CSV) with Name and Address header columns.
// @Tags         clients
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  true  "Spreadsheet (.xlsx or .csv)"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Router       /clients/import-excel [post]
func (h *ClientHandler) Import(c echo.Context) error {
	actor, err := ctxUser(c)
	if err != nil {
		return err
	}

	fh, err := c.FormFile(importFormField)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}
	if _, ok := importExtensions[strings.ToLower(filepath.Ext(fh.Filename))]; !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "file must be an Excel workbook or CSV")
	}

	f, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unable to read uploaded file")
	}
	defer f.Close()

	n, err := h.service.Import(c.Request().Context(), actor, fh.Filename, f)
	if err != nil {
		return err
	}
	metrics.ClientsImportedTotal.Add(float64(n))

	return c.JSON(http.StatusOK, messageResponse{Message: fmt.Sprintf("Successfully imported %d clients", n)})
}
