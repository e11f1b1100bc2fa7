package ports

import (
	"context"

	"github.com/horarios/admin-console/internal/core/domain"
)

// SessionReader is the read side of the session store used by the route guard.
type SessionReader interface {
	State() domain.SessionState
	// Ready is closed once startup restoration has finished.
	Ready() <-chan struct{}
}

// SessionService is the collaborator surface offered to console handlers.
type SessionService interface {
	SessionReader
	Initialize(ctx context.Context) domain.SessionState
	Signin(ctx context.Context, username, password string) (*domain.Identity, error)
	Signout(ctx context.Context)
	Call(ctx context.Context, method, path string, body, out any) error
}
