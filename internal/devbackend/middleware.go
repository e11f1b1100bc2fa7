package devbackend

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	ctxUser   = "user"
	ctxClaims = "claims"
)

// unauthenticated is the body Laravel's auth guard answers with.
var unauthenticated = map[string]string{"message": "Unauthenticated."}

// bearerToken extracts the token of an "Authorization: Bearer" header.
func bearerToken(c echo.Context) (string, bool) {
	parts := strings.SplitN(c.Request().Header.Get("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// Auth validates the bearer JWT and injects the user and its claims into
// the context.
func Auth(svc *AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, unauthenticated)
			}
			user, claims, err := svc.Authenticate(token)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, unauthenticated)
			}
			c.Set(ctxUser, user)
			c.Set(ctxClaims, claims)
			return next(c)
		}
	}
}
