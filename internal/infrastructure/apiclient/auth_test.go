package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/horarios/admin-console/internal/core/domain"
)

func newAuthServer(t *testing.T, me string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /login", func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Password != "secreto" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":{"message":"Credenciales inválidas","code":"AUTH_FAILED"}}`))
			return
		}
		_, _ = w.Write([]byte(`{"access_token":"tok","token_type":"bearer","expires_in":3600,"user":{"id":1}}`))
	})
	mux.HandleFunc("POST /refresh", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"access_token":"tok-2","token_type":"bearer","expires_in":3600}`))
	})
	mux.HandleFunc("POST /logout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("GET /usuarios/me", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(me))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestAuthAPI_LoginAndRefresh(t *testing.T) {
	srv := newAuthServer(t, `{}`)
	client := New(srv.URL)
	api := NewAuthAPI(client)

	grant, err := api.Login(context.Background(), "ana", "secreto")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if grant.AccessToken != "tok" || grant.ExpiresIn != 3600 {
		t.Fatalf("unexpected grant: %+v", grant)
	}

	client.SetBearer(grant.AccessToken)
	grant, err = api.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	if grant.AccessToken != "tok-2" {
		t.Fatalf("unexpected refreshed token: %s", grant.AccessToken)
	}

	if err := api.Logout(context.Background()); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
}

func TestAuthAPI_LoginRejected(t *testing.T) {
	srv := newAuthServer(t, `{}`)
	_, err := NewAuthAPI(New(srv.URL)).Login(context.Background(), "ana", "mala")
	if !domain.IsUnauthorized(err) {
		t.Fatalf("expected 401 failure, got %v", err)
	}
}

func TestAuthAPI_Me(t *testing.T) {
	srv := newAuthServer(t, `{"id":7,"username":"lperez","nombre":"Luis","apellido_paterno":"Pérez","apellido_materno":"Gil","email":"l@x.mx","direccion":null,"fecha_nacimiento":null,"rol":{"id":2,"nombre":"Coordinador"}}`)

	id, err := NewAuthAPI(New(srv.URL)).Me(context.Background())
	if err != nil {
		t.Fatalf("Me returned error: %v", err)
	}
	if id.ID != 7 || id.Rol.Name != domain.RoleCoordinador {
		t.Fatalf("unexpected identity: %+v", id)
	}
	if id.DisplayName() != "Luis Pérez Gil" {
		t.Fatalf("unexpected display name: %q", id.DisplayName())
	}
}

func TestAuthAPI_MeNullRole(t *testing.T) {
	srv := newAuthServer(t, `{"id":3,"username":"sinrol","rol":null}`)

	id, err := NewAuthAPI(New(srv.URL)).Me(context.Background())
	if err != nil {
		t.Fatalf("Me returned error: %v", err)
	}
	if id.HasRole() {
		t.Fatalf("expected identity without role, got %+v", id.Rol)
	}
}

func TestAuthAPI_MeIncomplete(t *testing.T) {
	srv := newAuthServer(t, `{"nombre":"Sin id"}`)

	_, err := NewAuthAPI(New(srv.URL)).Me(context.Background())
	if !errors.Is(err, domain.ErrIncompleteIdentity) {
		t.Fatalf("expected ErrIncompleteIdentity, got %v", err)
	}
}
