package credstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/horarios/admin-console/internal/core/ports"
)

func exerciseStore(t *testing.T, store ports.CredentialStore) {
	t.Helper()
	ctx := context.Background()

	if _, ok, err := store.Load(ctx); err != nil || ok {
		t.Fatalf("expected empty store, got ok=%v err=%v", ok, err)
	}
	if err := store.Save(ctx, "tok-1"); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if err := store.Save(ctx, "tok-2"); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	token, ok, err := store.Load(ctx)
	if err != nil || !ok || token != "tok-2" {
		t.Fatalf("Load = %q, %v, %v; want tok-2", token, ok, err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear returned error: %v", err)
	}
	if _, ok, _ := store.Load(ctx); ok {
		t.Fatalf("expected credential to be cleared")
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("second Clear returned error: %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	store, err := NewFileStore(t.TempDir(), "")
	if err != nil {
		t.Fatalf("NewFileStore returned error: %v", err)
	}
	exerciseStore(t, store)
}

func TestFileStore_SurvivesReopen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	first, err := NewFileStore(dir, DefaultKey)
	if err != nil {
		t.Fatalf("NewFileStore returned error: %v", err)
	}
	if err := first.Save(context.Background(), "persisted"); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	info, err := os.Stat(first.Path())
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("expected 0600 permissions, got %o", perm)
	}

	second, _ := NewFileStore(dir, DefaultKey)
	token, ok, err := second.Load(context.Background())
	if err != nil || !ok || token != "persisted" {
		t.Fatalf("Load = %q, %v, %v", token, ok, err)
	}
	if err := second.Ping(context.Background()); err != nil {
		t.Fatalf("Ping returned error: %v", err)
	}
}
