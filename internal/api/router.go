package api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/rogpool/service-reports/docs"
	"github.com/rogpool/service-reports/internal/api/handler"
	"github.com/rogpool/service-reports/internal/api/middleware"
	"github.com/rogpool/service-reports/internal/core/domain"
	"github.com/rogpool/service-reports/internal/core/ports"
)

const metricsSubsystem = "poolsvc"

// Options holds the HTTP-level settings of the router.
type Options struct {
	APIPrefix   string
	CORSOrigins []string
	// UploadLimit caps the spreadsheet import body, e.g. "10M". Report
	// bodies carry base64 photos and are not limited.
	UploadLimit string
	// StaticDir, when set, is served as a single-page app with index.html
	// fallback for unknown paths outside the API.
	StaticDir string
	// Registry receives HTTP metrics. Nil uses the default Prometheus registry.
	Registry *prometheus.Registry
}

// Deps are the services and probes the router exposes.
type Deps struct {
	Auth    ports.AuthService
	Users   ports.UserService
	Clients ports.ClientService
	Reports ports.ReportService
	// Checks feed GET /health/ready; a nil check is reported as disabled.
	Checks map[string]handler.DependencyCheck
	Log    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: opts.CORSOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
	}))
	if opts.Registry != nil {
		e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Subsystem:  metricsSubsystem,
			Registerer: opts.Registry,
		}))
		e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: opts.Registry}))
	} else {
		e.Use(echoprometheus.NewMiddleware(metricsSubsystem))
		e.GET("/metrics", echoprometheus.NewHandler())
	}

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.Checks)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- API ---
	authHandler := handler.NewAuthHandler(d.Auth)
	userHandler := handler.NewUserHandler(d.Users)
	clientHandler := handler.NewClientHandler(d.Clients)
	reportHandler := handler.NewReportHandler(d.Reports)

	bearer := middleware.Auth(d.Auth)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	prefix := strings.TrimSuffix(opts.APIPrefix, "/")
	api := e.Group(prefix)

	api.GET("", healthHandler.Root)
	api.GET("/", healthHandler.Root)

	api.POST("/auth/login", authHandler.Login)
	api.GET("/auth/me", authHandler.Me, bearer)
	api.POST("/auth/logout", authHandler.Logout, bearer)

	api.POST("/users", userHandler.Create, bearer, adminOnly)
	api.GET("/users", userHandler.List, bearer, adminOnly)
	api.DELETE("/users/:id", userHandler.Delete, bearer, adminOnly)

	api.GET("/clients", clientHandler.List, bearer)
	api.POST("/clients", clientHandler.Create, bearer, adminOnly)
	api.DELETE("/clients/:id", clientHandler.Delete, bearer, adminOnly)
	importMW := []echo.MiddlewareFunc{bearer, adminOnly}
	if opts.UploadLimit != "" {
		importMW = append(importMW, echomiddleware.BodyLimit(opts.UploadLimit))
	}
	api.POST("/clients/import-excel", clientHandler.Import, importMW...)

	api.POST("/reports", reportHandler.Create, bearer)
	api.GET("/reports", reportHandler.List, bearer)
	api.PUT("/reports/:id", reportHandler.Update, bearer, adminOnly)

	if opts.StaticDir != "" {
		e.Use(echomiddleware.StaticWithConfig(echomiddleware.StaticConfig{
			Root:  opts.StaticDir,
			Index: "index.html",
			HTML5: true,
			Skipper: func(c echo.Context) bool {
				p := c.Request().URL.Path
				return (prefix != "" && strings.HasPrefix(p, prefix)) ||
					strings.HasPrefix(p, "/health") ||
					strings.HasPrefix(p, "/metrics") ||
					strings.HasPrefix(p, "/swagger")
			},
		}))
	}

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
