package devbackend

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

const invalidDataMessage = "Los datos proporcionados no son válidos."

type Server struct {
	svc      *AuthService
	validate *validator.Validate
	log      zerolog.Logger

	mu       sync.Mutex
	materias []materia
	nextID   int64
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	User        any    `json:"user"`
}

type materia struct {
	ID     int64  `json:"id"`
	Sigla  string `json:"sigla" validate:"required,max=10"`
	Nombre string `json:"nombre" validate:"required"`
}

func NewServer(svc *AuthService, log zerolog.Logger) *Server {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	})
	return &Server{
		svc:      svc,
		validate: v,
		log:      log,
		materias: []materia{
			{ID: 1, Sigla: "INF110", Nombre: "Introducción a la Informática"},
			{ID: 2, Sigla: "MAT101", Nombre: "Cálculo I"},
		},
		nextID: 3,
	}
}

// Router builds the Echo instance serving the backend under /api.
func (s *Server) Router() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())

	api := e.Group("/api")
	api.Match([]string{http.MethodGet, http.MethodHead}, "", s.root)
	api.Match([]string{http.MethodGet, http.MethodHead}, "/", s.root)
	api.POST("/login", s.login)
	api.POST("/refresh", s.refresh)

	authed := api.Group("", Auth(s.svc))
	authed.POST("/logout", s.logout)
	authed.GET("/usuarios/me", s.me)
	authed.GET("/usuarios/me/", s.me)
	authed.GET("/materias", s.listMaterias)
	authed.POST("/materias", s.createMateria)

	return e
}

func (s *Server) root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Solicitud inválida."})
	}
	if fields := s.fieldErrors(&req); fields != nil {
		return c.JSON(http.StatusUnprocessableEntity, map[string]any{"message": invalidDataMessage, "errors": fields})
	}

	grant, user, err := s.svc.Login(req.Username, req.Password)
	if errors.Is(err, ErrInvalidCredentials) {
		s.log.Info().Str("username", req.Username).Msg("login rejected")
		return c.JSON(http.StatusUnauthorized, map[string]any{
			"error": map[string]string{"message": "Credenciales inválidas", "code": "INVALID_CREDENTIALS"},
		})
	}
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{
		AccessToken: grant.AccessToken,
		TokenType:   grant.TokenType,
		ExpiresIn:   grant.ExpiresIn,
		User:        user.Identity,
	})
}

func (s *Server) refresh(c echo.Context) error {
	token, ok := bearerToken(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, unauthenticated)
	}
	grant, err := s.svc.Refresh(token)
	if err != nil {
		s.log.Info().Err(err).Msg("refresh rejected")
		return c.JSON(http.StatusUnauthorized, unauthenticated)
	}
	return c.JSON(http.StatusOK, loginResponse{
		AccessToken: grant.AccessToken,
		TokenType:   grant.TokenType,
		ExpiresIn:   grant.ExpiresIn,
	})
}

func (s *Server) logout(c echo.Context) error {
	claims, _ := c.Get(ctxClaims).(*Claims)
	if claims != nil {
		s.svc.Logout(claims)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Sesión cerrada"})
}

func (s *Server) me(c echo.Context) error {
	user, _ := c.Get(ctxUser).(*User)
	if user == nil {
		return c.JSON(http.StatusUnauthorized, unauthenticated)
	}
	if !user.Identity.HasRole() {
		return c.JSON(http.StatusOK, map[string]any{
			"id":               user.Identity.ID,
			"username":         user.Identity.Username,
			"nombre":           user.Identity.Nombre,
			"apellido_paterno": user.Identity.ApellidoPaterno,
			"apellido_materno": user.Identity.ApellidoMaterno,
			"email":            user.Identity.Email,
			"rol":              nil,
		})
	}
	return c.JSON(http.StatusOK, user.Identity)
}

func (s *Server) listMaterias(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return c.JSON(http.StatusOK, map[string]any{"data": append([]materia(nil), s.materias...)})
}

func (s *Server) createMateria(c echo.Context) error {
	var m materia
	if err := c.Bind(&m); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Solicitud inválida."})
	}
	if fields := s.fieldErrors(&m); fields != nil {
		return c.JSON(http.StatusUnprocessableEntity, map[string]any{"message": invalidDataMessage, "errors": fields})
	}

	s.mu.Lock()
	m.ID = s.nextID
	s.nextID++
	s.materias = append(s.materias, m)
	s.mu.Unlock()

	return c.JSON(http.StatusCreated, m)
}

// fieldErrors runs struct validation and renders failures Laravel-style.
func (s *Server) fieldErrors(v any) map[string][]string {
	err := s.validate.Struct(v)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return map[string][]string{"_": {err.Error()}}
	}
	fields := make(map[string][]string, len(ve))
	for _, fe := range ve {
		var msg string
		switch fe.Tag() {
		case "required":
			msg = "El campo " + fe.Field() + " es obligatorio."
		case "max":
			msg = "El campo " + fe.Field() + " no debe superar " + fe.Param() + " caracteres."
		default:
			msg = "El campo " + fe.Field() + " no es válido."
		}
		fields[fe.Field()] = append(fields[fe.Field()], msg)
	}
	return fields
}
