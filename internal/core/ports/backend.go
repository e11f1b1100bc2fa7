package ports

import (
	"context"

	"github.com/horarios/admin-console/internal/core/domain"
)

// AuthBackend is the remote authentication contract consumed by the session store.
// Failures are *domain.RequestFailure values.
type AuthBackend interface {
	Login(ctx context.Context, username, password string) (*domain.TokenGrant, error)
	Logout(ctx context.Context) error
	Refresh(ctx context.Context) (*domain.TokenGrant, error)
	Me(ctx context.Context) (*domain.Identity, error)
}

// BearerSlot is the cross-cutting credential header of the HTTP client adapter.
type BearerSlot interface {
	SetBearer(token string)
	ClearBearer()
}

// Requester issues an arbitrary JSON request against the backend.
type Requester interface {
	Do(ctx context.Context, method, path string, body, out any) error
}
