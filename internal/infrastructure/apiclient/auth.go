package apiclient

import (
	"context"
	"fmt"

	"github.com/horarios/admin-console/internal/core/domain"
)

// Backend authentication endpoints.
const (
	PathLogin   = "/login"
	PathLogout  = "/logout"
	PathRefresh = "/refresh"
	PathMe      = "/usuarios/me"
)

// AuthAPI implements ports.AuthBackend over a Client.
type AuthAPI struct {
	client *Client
}

func NewAuthAPI(client *Client) *AuthAPI {
	return &AuthAPI{client: client}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (a *AuthAPI) Login(ctx context.Context, username, password string) (*domain.TokenGrant, error) {
	var grant domain.TokenGrant
	if err := a.client.Post(ctx, PathLogin, loginRequest{Username: username, Password: password}, &grant); err != nil {
		return nil, err
	}
	return &grant, nil
}

func (a *AuthAPI) Logout(ctx context.Context) error {
	return a.client.Post(ctx, PathLogout, nil, nil)
}

func (a *AuthAPI) Refresh(ctx context.Context) (*domain.TokenGrant, error) {
	var grant domain.TokenGrant
	if err := a.client.Post(ctx, PathRefresh, nil, &grant); err != nil {
		return nil, err
	}
	return &grant, nil
}

// Me fetches the authenticated identity. Records missing id or username are
// rejected so no partial Identity leaves this package.
func (a *AuthAPI) Me(ctx context.Context) (*domain.Identity, error) {
	var identity domain.Identity
	if err := a.client.Get(ctx, PathMe, &identity); err != nil {
		return nil, err
	}
	if !identity.Complete() {
		return nil, fmt.Errorf("GET %s: %w", PathMe, domain.ErrIncompleteIdentity)
	}
	return &identity, nil
}
