package ports

import "context"

// CredentialStore persists the single bearer credential across restarts.
// Load returns ok=false when nothing is stored.
type CredentialStore interface {
	Save(ctx context.Context, token string) error
	Load(ctx context.Context) (token string, ok bool, err error)
	Clear(ctx context.Context) error
}

// Pinger is implemented by stores and transports that can report readiness.
type Pinger interface {
	Ping(ctx context.Context) error
}
