package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/horarios/admin-console/internal/core/domain"
	"github.com/horarios/admin-console/internal/core/ports"
	"github.com/horarios/admin-console/internal/core/service"
	"github.com/horarios/admin-console/internal/metrics"
)

// IdentityKey is the echo context key the guard stores the admitted identity under.
const IdentityKey = "identity"

// RequireRoles admits requests whose session identity holds one of roles.
// While the session is still being restored it waits up to wait for
// restoration to finish and decides again; if it is still pending the
// request gets a neutral 503 placeholder instead of a redirect.
func RequireRoles(session ports.SessionReader, wait time.Duration, roles ...string) echo.MiddlewareFunc {
	allowed := append([]string(nil), roles...)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			state := session.State()
			decision := service.Authorize(state, allowed)

			if decision == domain.DecisionDefer && wait > 0 {
				timer := time.NewTimer(wait)
				select {
				case <-session.Ready():
				case <-timer.C:
				case <-c.Request().Context().Done():
				}
				timer.Stop()
				state = session.State()
				decision = service.Authorize(state, allowed)
			}

			metrics.GuardDecisionsTotal.WithLabelValues(sectionOf(c), decision.String()).Inc()

			switch decision {
			case domain.DecisionAllow:
				c.Set(IdentityKey, state.Identity)
				return next(c)
			case domain.DecisionRedirectLogin:
				return c.Redirect(http.StatusFound, domain.PathLogin)
			case domain.DecisionRedirectUnauthorized:
				return c.Redirect(http.StatusFound, domain.PathUnauthorized)
			default:
				c.Response().Header().Set("Retry-After", "1")
				return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": string(domain.PhaseRestoring)})
			}
		}
	}
}

// IdentityFrom returns the identity the guard admitted, or nil.
func IdentityFrom(c echo.Context) *domain.Identity {
	id, _ := c.Get(IdentityKey).(*domain.Identity)
	return id
}

// sectionOf returns the first segment of the matched route, e.g.
// "administrador" for "/administrador/api/*".
func sectionOf(c echo.Context) string {
	p := strings.TrimLeft(c.Path(), "/")
	if i := strings.IndexByte(p, '/'); i >= 0 {
		p = p[:i]
	}
	if p == "" {
		return "unmatched"
	}
	return p
}
