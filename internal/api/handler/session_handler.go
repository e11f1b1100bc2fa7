package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/horarios/admin-console/internal/core/domain"
	"github.com/horarios/admin-console/internal/core/ports"
)

type SessionHandler struct {
	session     ports.SessionService
	restoreWait time.Duration
	log         zerolog.Logger
}

func NewSessionHandler(session ports.SessionService, restoreWait time.Duration, log zerolog.Logger) *SessionHandler {
	return &SessionHandler{session: session, restoreWait: restoreWait, log: log}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	User     *domain.Identity `json:"user"`
	Redirect string           `json:"redirect"`
}

type logoutResponse struct {
	Redirect string `json:"redirect"`
}

type sessionResponse struct {
	Phase       domain.Phase     `json:"phase"`
	Loading     bool             `json:"loading"`
	Identity    *domain.Identity `json:"identity"`
	DisplayName string           `json:"display_name,omitempty"`
	Landing     string           `json:"landing,omitempty"`
}

type pageResponse struct {
	Page    string `json:"page"`
	Message string `json:"message,omitempty"`
}

// Login signs the operator in, replacing any current identity.
//
// @Summary      Sign in
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Backend credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  ErrorBody
// @Failure      401   {object}  ErrorBody
// @Failure      422   {object}  ErrorBody
// @Failure      502   {object}  ErrorBody
// @Router       /login [post]
func (h *SessionHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	h.awaitRestore(c)
	if h.session.State().Identity != nil {
		h.session.Signout(ctx)
	}

	identity, err := h.session.Signin(ctx, req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{User: identity, Redirect: identity.LandingPath()})
}

// Logout ends the session. It always succeeds.
//
// @Summary      Sign out
// @Tags         session
// @Produce      json
// @Success      200  {object}  logoutResponse
// @Router       /logout [post]
func (h *SessionHandler) Logout(c echo.Context) error {
	h.session.Signout(c.Request().Context())
	return c.JSON(http.StatusOK, logoutResponse{Redirect: domain.PathLogin})
}

// Session reports the current session snapshot.
//
// @Summary      Current session
// @Tags         session
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /session [get]
func (h *SessionHandler) Session(c echo.Context) error {
	state := h.session.State()
	resp := sessionResponse{Phase: state.Phase(), Loading: state.Loading, Identity: state.Identity}
	if state.Identity != nil {
		resp.DisplayName = state.Identity.DisplayName()
		resp.Landing = state.Identity.LandingPath()
	}
	return c.JSON(http.StatusOK, resp)
}

// LoginPage describes the sign-in page.
//
// @Summary      Sign-in page
// @Tags         pages
// @Produce      json
// @Success      200  {object}  pageResponse
// @Router       /login [get]
func (h *SessionHandler) LoginPage(c echo.Context) error {
	return c.JSON(http.StatusOK, pageResponse{Page: "login", Message: "Iniciar Sesión"})
}

// UnauthorizedPage is where the guard sends identities outside a section's roles.
//
// @Summary      Unauthorized page
// @Tags         pages
// @Produce      json
// @Success      200  {object}  pageResponse
// @Router       /unauthorized [get]
func (h *SessionHandler) UnauthorizedPage(c echo.Context) error {
	return c.JSON(http.StatusOK, pageResponse{Page: "unauthorized", Message: "No tienes permiso para acceder a esta sección."})
}

// NoRolePage is the landing route of identities whose role has no section.
//
// @Summary      No-role page
// @Tags         pages
// @Produce      json
// @Success      200  {object}  pageResponse
// @Router       /sinrol [get]
func (h *SessionHandler) NoRolePage(c echo.Context) error {
	return c.JSON(http.StatusOK, pageResponse{Page: "sinrol", Message: "Tu usuario no tiene un rol con acceso a la consola."})
}

// awaitRestore keeps a login from racing the startup restoration.
func (h *SessionHandler) awaitRestore(c echo.Context) {
	if h.restoreWait <= 0 {
		return
	}
	timer := time.NewTimer(h.restoreWait)
	defer timer.Stop()
	select {
	case <-h.session.Ready():
	case <-timer.C:
		h.log.Warn().Dur("wait", h.restoreWait).Msg("login proceeding before session restore finished")
	case <-c.Request().Context().Done():
	}
}
