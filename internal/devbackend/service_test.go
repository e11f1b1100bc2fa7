package devbackend

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

func newTestService(t *testing.T) *AuthService {
	t.Helper()
	users := NewUserStore()
	if err := Seed(users, "secreto", bcrypt.MinCost); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return NewAuthService(users, testSecret, time.Hour, 24*time.Hour)
}

func TestAuthService_Login(t *testing.T) {
	svc := newTestService(t)

	grant, user, err := svc.Login("docente", "secreto")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if grant.AccessToken == "" || grant.ExpiresIn != 3600 {
		t.Fatalf("unexpected grant: %+v", grant)
	}
	if user.Identity.Username != "docente" {
		t.Fatalf("unexpected user: %+v", user.Identity)
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(grant.AccessToken, claims, func(*jwt.Token) (any, error) {
		return []byte(testSecret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims.Role != "Docente" || claims.ID == "" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAuthService_LoginRejected(t *testing.T) {
	svc := newTestService(t)

	if _, _, err := svc.Login("docente", "malo"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login("fantasma", "secreto"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestAuthService_LogoutRevokes(t *testing.T) {
	svc := newTestService(t)
	grant, _, _ := svc.Login("admin", "secreto")

	_, claims, err := svc.Authenticate(grant.AccessToken)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	svc.Logout(claims)

	if _, _, err := svc.Authenticate(grant.AccessToken); !errors.Is(err, ErrRevokedToken) {
		t.Fatalf("expected ErrRevokedToken, got %v", err)
	}
	if _, err := svc.Refresh(grant.AccessToken); !errors.Is(err, ErrRevokedToken) {
		t.Fatalf("revoked token must not refresh, got %v", err)
	}
}

func TestAuthService_RefreshExpiredWithinWindow(t *testing.T) {
	svc := newTestService(t)
	start := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return start }
	grant, _, _ := svc.Login("coordinador", "secreto")

	svc.now = func() time.Time { return start.Add(2 * time.Hour) }
	if _, _, err := svc.Authenticate(grant.AccessToken); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expired token must not authenticate, got %v", err)
	}

	fresh, err := svc.Refresh(grant.AccessToken)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if _, _, err := svc.Authenticate(fresh.AccessToken); err != nil {
		t.Fatalf("refreshed token must authenticate: %v", err)
	}
	if _, err := svc.Refresh(grant.AccessToken); !errors.Is(err, ErrRevokedToken) {
		t.Fatalf("old token must be revoked after refresh, got %v", err)
	}
}

func TestAuthService_RefreshOutsideWindow(t *testing.T) {
	svc := newTestService(t)
	start := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return start }
	grant, _, _ := svc.Login("coordinador", "secreto")

	svc.now = func() time.Time { return start.Add(48 * time.Hour) }
	if _, err := svc.Refresh(grant.AccessToken); !errors.Is(err, ErrRefreshExpired) {
		t.Fatalf("expected ErrRefreshExpired, got %v", err)
	}
}

func TestAuthService_RejectsForeignSignature(t *testing.T) {
	svc := newTestService(t)
	forged, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Username:         "admin",
		RegisteredClaims: jwt.RegisteredClaims{ID: "x", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString([]byte("other-secret"))

	if _, _, err := svc.Authenticate(forged); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
	if _, err := svc.Refresh(forged); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("forged token must not refresh, got %v", err)
	}
}
