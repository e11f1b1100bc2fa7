package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/horarios/admin-console/internal/api/handler"
	"github.com/horarios/admin-console/internal/core/domain"
	"github.com/horarios/admin-console/internal/core/service"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that renders every
// failure as {"error": UiError}. The status is the backend's when one
// answered, 422 for local validation, 502 when the backend was unreachable
// and 500 otherwise.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, ue := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, handler.ErrorBody{Error: ue})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, domain.UiError) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg := ""
		if he.Message != nil {
			msg = fmt.Sprintf("%v", he.Message)
		}
		return he.Code, service.NormalizeStatus(he.Code, msg)
	}

	ue := service.Normalize(err)

	var rf *domain.RequestFailure
	var ve *domain.ValidationError
	switch {
	case ue.Status >= 400:
		return ue.Status, ue
	case errors.As(err, &ve):
		return http.StatusUnprocessableEntity, ue
	case errors.As(err, &rf) && rf.RequestSent:
		log.Warn().Err(err).Str("path", c.Path()).Msg("backend unreachable")
		return http.StatusBadGateway, ue
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, ue
}
