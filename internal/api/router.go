package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/horarios/admin-console/docs"
	"github.com/horarios/admin-console/internal/api/handler"
	"github.com/horarios/admin-console/internal/api/middleware"
	"github.com/horarios/admin-console/internal/core/domain"
	"github.com/horarios/admin-console/internal/core/ports"
)

// Deps are the collaborators the console router wires into its handlers.
type Deps struct {
	Session ports.SessionService
	// Health lists the dependencies the readiness probe pings, by name.
	Health map[string]ports.Pinger
	// RestoreWait bounds how long guarded routes and login wait for the
	// startup restoration.
	RestoreWait time.Duration
	Log         zerolog.Logger
	// Registry receives the HTTP metrics. Nil means the default registry.
	Registry *prometheus.Registry
}

// Section is a role-gated route prefix.
type Section struct {
	Prefix string
	Roles  []string
}

// Sections are the role areas of the console.
var Sections = []Section{
	{Prefix: "/administrador", Roles: []string{domain.RoleAdministrador}},
	{Prefix: "/cordinador", Roles: []string{domain.RoleCoordinador}},
	{Prefix: "/docente", Roles: []string{domain.RoleDocente}},
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))

	var registerer prometheus.Registerer = prometheus.DefaultRegisterer
	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
	if deps.Registry != nil {
		registerer, gatherer = deps.Registry, deps.Registry
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "console",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	sessionHandler := handler.NewSessionHandler(deps.Session, deps.RestoreWait, deps.Log)
	sectionHandler := handler.NewSectionHandler(deps.Session)
	healthHandler := handler.NewHealthHandler(deps.Health)

	// --- Session ---
	e.POST("/login", sessionHandler.Login)
	e.POST("/logout", sessionHandler.Logout)
	e.GET("/session", sessionHandler.Session)

	// --- Public pages ---
	e.GET("/login", sessionHandler.LoginPage)
	e.GET(domain.PathUnauthorized, sessionHandler.UnauthorizedPage)
	e.GET(domain.PathNoRole, sessionHandler.NoRolePage)

	// --- Role sections ---
	for _, s := range Sections {
		g := e.Group(s.Prefix, middleware.RequireRoles(deps.Session, deps.RestoreWait, s.Roles...))
		g.GET("", sectionHandler.Index)
		g.GET("/", sectionHandler.Index)
		g.GET("/dashboard", sectionHandler.Dashboard)
		g.GET("/perfil", sectionHandler.Perfil)
		g.Any("/api/*", sectionHandler.Proxy)
	}

	// --- Operations ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger emits one zerolog entry per request.
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
