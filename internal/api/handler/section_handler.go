package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/horarios/admin-console/internal/api/middleware"
	"github.com/horarios/admin-console/internal/core/domain"
	"github.com/horarios/admin-console/internal/core/ports"
)

const maxProxyBody = 1 << 20

// SectionHandler serves the pages shared by every role section and forwards
// data calls to the backend with the session credential.
type SectionHandler struct {
	session ports.SessionService
}

func NewSectionHandler(session ports.SessionService) *SectionHandler {
	return &SectionHandler{session: session}
}

type dashboardResponse struct {
	Section     string            `json:"section"`
	DisplayName string            `json:"display_name"`
	Role        string            `json:"role"`
	Menu        []domain.MenuItem `json:"menu"`
}

// Index sends the section root to its dashboard.
func (h *SectionHandler) Index(c echo.Context) error {
	return c.Redirect(http.StatusFound, strings.TrimRight(c.Request().URL.Path, "/")+"/dashboard")
}

// Dashboard returns the section landing view and the role menu.
//
// @Summary      Section dashboard
// @Tags         sections
// @Produce      json
// @Param        section  path      string  true  "administrador, cordinador or docente"
// @Success      200      {object}  dashboardResponse
// @Router       /{section}/dashboard [get]
func (h *SectionHandler) Dashboard(c echo.Context) error {
	id := middleware.IdentityFrom(c)
	if id == nil {
		return echo.ErrUnauthorized
	}
	return c.JSON(http.StatusOK, dashboardResponse{
		Section:     sectionName(c),
		DisplayName: id.DisplayName(),
		Role:        id.Rol.Name,
		Menu:        domain.MenuFor(id.Rol.Name),
	})
}

// Perfil returns the personal data of the signed-in identity.
//
// @Summary      Profile
// @Tags         sections
// @Produce      json
// @Param        section  path      string  true  "administrador, cordinador or docente"
// @Success      200      {object}  domain.Identity
// @Router       /{section}/perfil [get]
func (h *SectionHandler) Perfil(c echo.Context) error {
	id := middleware.IdentityFrom(c)
	if id == nil {
		return echo.ErrUnauthorized
	}
	return c.JSON(http.StatusOK, id)
}

// Proxy forwards /{section}/api/<path> to <backend>/<path> through the
// session, so a rejected credential is refreshed once before the failure
// reaches the caller.
//
// @Summary      Backend pass-through
// @Tags         sections
// @Accept       json
// @Produce      json
// @Param        section  path      string  true  "administrador, cordinador or docente"
// @Param        path     path      string  true  "backend path"
// @Success      200      {object}  object
// @Failure      401      {object}  ErrorBody
// @Failure      422      {object}  ErrorBody
// @Failure      502      {object}  ErrorBody
// @Router       /{section}/api/{path} [get]
func (h *SectionHandler) Proxy(c echo.Context) error {
	path := "/" + strings.TrimLeft(c.Param("*"), "/")
	if q := c.Request().URL.RawQuery; q != "" {
		path += "?" + q
	}

	var body any
	if r := c.Request(); r.Body != nil && r.ContentLength != 0 {
		data, err := io.ReadAll(io.LimitReader(r.Body, maxProxyBody))
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
		}
		if len(data) > 0 {
			raw := json.RawMessage(data)
			if !json.Valid(raw) {
				return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
			}
			body = raw
		}
	}

	var out json.RawMessage
	if err := h.session.Call(c.Request().Context(), c.Request().Method, path, body, &out); err != nil {
		return err
	}
	if len(out) == 0 {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSONBlob(http.StatusOK, out)
}

func sectionName(c echo.Context) string {
	p := strings.Trim(c.Request().URL.Path, "/")
	if i := strings.IndexByte(p, '/'); i >= 0 {
		return p[:i]
	}
	return p
}
