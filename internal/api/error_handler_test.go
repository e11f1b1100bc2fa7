package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/horarios/admin-console/internal/core/domain"
	"github.com/horarios/admin-console/internal/core/service"
)

func TestHTTPErrorHandler_StatusMapping(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{
			name:    "echo error",
			err:     echo.NewHTTPError(http.StatusNotFound, "Not Found"),
			status:  http.StatusNotFound,
			message: "Not Found",
		},
		{
			name:    "echo error without message",
			err:     &echo.HTTPError{Code: http.StatusMethodNotAllowed},
			status:  http.StatusMethodNotAllowed,
			message: service.MsgRequestFail,
		},
		{
			name: "backend answered",
			err: &domain.RequestFailure{
				Op: "GET /x", RequestSent: true,
				Response: &domain.FailureResponse{Status: 403, Body: []byte(`{"message":"Prohibido"}`)},
			},
			status:  http.StatusForbidden,
			message: "Prohibido",
		},
		{
			name:    "local validation",
			err:     &domain.ValidationError{Fields: map[string][]string{"username": {"requerido"}}},
			status:  http.StatusUnprocessableEntity,
			message: service.MsgValidation,
		},
		{
			name:    "backend unreachable",
			err:     &domain.RequestFailure{Op: "GET /x", RequestSent: true, Err: errors.New("dial tcp: refused")},
			status:  http.StatusBadGateway,
			message: service.MsgNoConnection,
		},
		{
			name:    "unexpected",
			err:     errors.New("boom"),
			status:  http.StatusInternalServerError,
			message: "boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/x", nil), rec)

			NewHTTPErrorHandler(zerolog.Nop())(tt.err, c)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.message, decodeError(t, rec).Message)
		})
	}
}

func TestHTTPErrorHandler_HeadHasNoBody(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodHead, "/x", nil), rec)

	NewHTTPErrorHandler(zerolog.Nop())(errors.New("boom"), c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Zero(t, rec.Body.Len())
}

func TestHTTPErrorHandler_SkipsCommittedResponse(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/x", nil), rec)
	_ = c.NoContent(http.StatusAccepted)

	NewHTTPErrorHandler(zerolog.Nop())(errors.New("late"), c)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Zero(t, rec.Body.Len())
}
