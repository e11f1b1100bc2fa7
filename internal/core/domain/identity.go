package domain

import (
	"encoding/json"
	"strings"
)

// Role names known to the console. The backend may define more; unknown
// names are admitted by the guard only where a route lists them.
const (
	RoleAdministrador = "Administrador"
	RoleCoordinador   = "Coordinador"
	RoleDocente       = "Docente"
)

// Role is the authorization category attached to an Identity.
type Role struct {
	ID   int64  `json:"id"`
	Name string `json:"nombre"`
}

// Identity is the authenticated principal as returned by the "who am I" endpoint.
type Identity struct {
	ID              int64   `json:"id"`
	Username        string  `json:"username"`
	Nombre          string  `json:"nombre"`
	ApellidoPaterno string  `json:"apellido_paterno"`
	ApellidoMaterno string  `json:"apellido_materno"`
	Email           string  `json:"email"`
	Direccion       *string `json:"direccion"`
	FechaNacimiento *string `json:"fecha_nacimiento"`
	Sexo            *string `json:"sexo,omitempty"`
	Rol             Role    `json:"rol"`
}

// HasRole reports whether the backend assigned a role. A null "rol" decodes
// to the zero Role.
func (i Identity) HasRole() bool {
	return i.Rol.Name != ""
}

// DisplayName joins the given name and both surnames.
func (i Identity) DisplayName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{i.Nombre, i.ApellidoPaterno, i.ApellidoMaterno} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// Complete reports whether the record carries the fields every Identity must have.
func (i Identity) Complete() bool {
	return i.ID != 0 && i.Username != ""
}

// LandingPath returns the section a freshly signed-in identity is sent to.
func (i Identity) LandingPath() string {
	if !i.HasRole() {
		return PathUnauthorized
	}
	switch i.Rol.Name {
	case RoleAdministrador:
		return "/administrador"
	case RoleCoordinador:
		return "/cordinador"
	case RoleDocente:
		return "/docente"
	default:
		return PathNoRole
	}
}

// Clone returns a deep copy so snapshots never share pointers with the store.
func (i *Identity) Clone() *Identity {
	if i == nil {
		return nil
	}
	c := *i
	c.Direccion = cloneString(i.Direccion)
	c.FechaNacimiento = cloneString(i.FechaNacimiento)
	c.Sexo = cloneString(i.Sexo)
	return &c
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// TokenGrant is the token payload returned by the login and refresh endpoints.
// User is kept raw: the "who am I" fetch is the only source of an Identity.
type TokenGrant struct {
	AccessToken string          `json:"access_token"`
	TokenType   string          `json:"token_type"`
	ExpiresIn   int64           `json:"expires_in"`
	User        json.RawMessage `json:"user,omitempty"`
}
