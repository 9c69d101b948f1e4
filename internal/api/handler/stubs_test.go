package handler

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/rogpool/service-reports/internal/api/middleware"
	"github.com/rogpool/service-reports/internal/core/domain"
	"github.com/rogpool/service-reports/internal/core/ports"
)

var (
	adminUser    = &domain.User{ID: "admin-1", Username: "admin", Role: domain.RoleAdmin}
	employeeUser = &domain.User{ID: "emp-bob", Username: "bob", Role: domain.RoleEmployee}
)

// newContext builds an echo context with the validator installed. A non-nil
// user is injected the way the Auth middleware does it.
func newContext(t *testing.T, method, target, body string, user *domain.User) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if user != nil {
		c.Set(middleware.ContextUser, user)
		c.Set(middleware.ContextToken, "token-"+user.Username)
	}
	return c, rec
}

type stubAuthService struct {
	loginFn  func(ctx context.Context, username, password string) (string, *domain.User, error)
	logoutFn func(ctx context.Context, token string) error
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) Authenticate(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUnauthorized
}

func (s *stubAuthService) Logout(ctx context.Context, token string) error {
	return s.logoutFn(ctx, token)
}

func (s *stubAuthService) EnsureAdmin(context.Context, string, string) (bool, error) {
	return false, nil
}

type stubUserService struct {
	createFn func(ctx context.Context, actor *domain.User, in ports.CreateUserInput) (*domain.User, error)
	listFn   func(ctx context.Context, actor *domain.User) ([]*domain.User, error)
	deleteFn func(ctx context.Context, actor *domain.User, id string) error
}

func (s *stubUserService) Create(ctx context.Context, actor *domain.User, in ports.CreateUserInput) (*domain.User, error) {
	return s.createFn(ctx, actor, in)
}

func (s *stubUserService) List(ctx context.Context, actor *domain.User) ([]*domain.User, error) {
	return s.listFn(ctx, actor)
}

func (s *stubUserService) Delete(ctx context.Context, actor *domain.User, id string) error {
	return s.deleteFn(ctx, actor, id)
}

type stubClientService struct {
	listFn   func(ctx context.Context) ([]*domain.Client, error)
	createFn func(ctx context.Context, actor *domain.User, name, address string) (*domain.Client, error)
	deleteFn func(ctx context.Context, actor *domain.User, id string) error
	importFn func(ctx context.Context, actor *domain.User, filename string, r io.Reader) (int, error)
}

func (s *stubClientService) List(ctx context.Context) ([]*domain.Client, error) {
	return s.listFn(ctx)
}

func (s *stubClientService) Create(ctx context.Context, actor *domain.User, name, address string) (*domain.Client, error) {
	return s.createFn(ctx, actor, name, address)
}

func (s *stubClientService) Delete(ctx context.Context, actor *domain.User, id string) error {
	return s.deleteFn(ctx, actor, id)
}

func (s *stubClientService) Import(ctx context.Context, actor *domain.User, filename string, r io.Reader) (int, error) {
	return s.importFn(ctx, actor, filename, r)
}

type stubReportService struct {
	createFn func(ctx context.Context, actor *domain.User, in ports.CreateReportInput) (*domain.ServiceReport, error)
	listFn   func(ctx context.Context, actor *domain.User) ([]*domain.ServiceReport, error)
	updateFn func(ctx context.Context, actor *domain.User, id string, patch domain.ReportPatch) (*domain.ServiceReport, error)
}

func (s *stubReportService) Create(ctx context.Context, actor *domain.User, in ports.CreateReportInput) (*domain.ServiceReport, error) {
	return s.createFn(ctx, actor, in)
}

func (s *stubReportService) List(ctx context.Context, actor *domain.User) ([]*domain.ServiceReport, error) {
	return s.listFn(ctx, actor)
}

func (s *stubReportService) Update(ctx context.Context, actor *domain.User, id string, patch domain.ReportPatch) (*domain.ServiceReport, error) {
	return s.updateFn(ctx, actor, id, patch)
}

func httpCode(err error) int {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	return 0
}
