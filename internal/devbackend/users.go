package devbackend

import (
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/horarios/admin-console/internal/core/domain"
)

// User is a seeded account: the public identity plus its password hash.
type User struct {
	Identity     domain.Identity
	PasswordHash string
}

// UserStore is an in-memory user table keyed by username.
type UserStore struct {
	mu    sync.RWMutex
	users map[string]*User
}

func NewUserStore() *UserStore {
	return &UserStore{users: make(map[string]*User)}
}

// Add hashes password with cost and stores identity under its username.
func (s *UserStore) Add(identity domain.Identity, password string, cost int) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[identity.Username]; exists {
		return fmt.Errorf("user %q already exists", identity.Username)
	}
	s.users[identity.Username] = &User{Identity: *identity.Clone(), PasswordHash: string(hash)}
	return nil
}

// Find returns a copy of the user or nil.
func (s *UserStore) Find(username string) *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[username]
	if !ok {
		return nil
	}
	return &User{Identity: *u.Identity.Clone(), PasswordHash: u.PasswordHash}
}

func strptr(s string) *string { return &s }

// SeedIdentities are the accounts the development backend starts with: one
// per console role plus one without a role.
func SeedIdentities() []domain.Identity {
	return []domain.Identity{
		{
			ID: 1, Username: "admin", Nombre: "Ana", ApellidoPaterno: "Rojas", ApellidoMaterno: "Vaca",
			Email: "admin@horarios.test", Direccion: strptr("Av. Busch 1020"),
			Rol: domain.Role{ID: 1, Name: domain.RoleAdministrador},
		},
		{
			ID: 2, Username: "coordinador", Nombre: "Carlos", ApellidoPaterno: "Suárez", ApellidoMaterno: "Paz",
			Email: "coordinador@horarios.test",
			Rol:   domain.Role{ID: 2, Name: domain.RoleCoordinador},
		},
		{
			ID: 3, Username: "docente", Nombre: "Diana", ApellidoPaterno: "Méndez", ApellidoMaterno: "Soria",
			Email: "docente@horarios.test", FechaNacimiento: strptr("1988-04-12"), Sexo: strptr("F"),
			Rol: domain.Role{ID: 3, Name: domain.RoleDocente},
		},
		{
			ID: 4, Username: "invitado", Nombre: "Iván", ApellidoPaterno: "Torrez",
			Email: "invitado@horarios.test",
		},
	}
}

// Seed fills store with SeedIdentities, all sharing password.
func Seed(store *UserStore, password string, cost int) error {
	for _, id := range SeedIdentities() {
		if err := store.Add(id, password, cost); err != nil {
			return err
		}
	}
	return nil
}
