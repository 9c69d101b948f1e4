package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rogpool/service-reports/internal/api/middleware"
	"github.com/rogpool/service-reports/internal/core/domain"
)

// ctxUser returns the user injected by the Auth middleware. A missing user
// means the route was registered without Auth; fail closed with 401.
func ctxUser(c echo.Context) (*domain.User, error) {
	user := middleware.UserFrom(c)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	return user, nil
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
