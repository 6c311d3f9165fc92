package out_test

import (
	"context"
	"path/filepath"
	"testing"

	progressout "miftah/internal/modules/progress/adapter/out"
	"miftah/internal/modules/progress/domain"
	port "miftah/internal/modules/progress/port/out"
)

func exerciseStore(t *testing.T, store port.KeyValueStore) {
	t.Helper()
	ctx := context.Background()

	if _, ok, err := store.Get(ctx, domain.ProgressKey); err != nil || ok {
		t.Fatalf("missing key should report absent, got ok=%t err=%v", ok, err)
	}
	if err := store.Set(ctx, domain.ProgressKey, `{"streak":1}`); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := store.Set(ctx, domain.ProgressKey, `{"streak":2}`); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, ok, err := store.Get(ctx, domain.ProgressKey)
	if err != nil || !ok || got != `{"streak":2}` {
		t.Fatalf("expected overwritten value, got %q ok=%t err=%v", got, ok, err)
	}
	if err := store.Set(ctx, domain.SessionsKey, `[]`); err != nil {
		t.Fatalf("set sessions: %v", err)
	}
	if err := store.Remove(ctx, domain.ProgressKey); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := store.Remove(ctx, domain.ProgressKey); err != nil {
		t.Fatalf("removing an absent key should succeed: %v", err)
	}
	if _, ok, _ := store.Get(ctx, domain.ProgressKey); ok {
		t.Fatalf("removed key should be absent")
	}
	if v, ok, _ := store.Get(ctx, domain.SessionsKey); !ok || v != `[]` {
		t.Fatalf("other keys must survive a remove, got %q", v)
	}
}

func TestMemoryKeyValueStore(t *testing.T) {
	t.Parallel()
	exerciseStore(t, progressout.NewMemoryKeyValueStore())
}

func TestFileKeyValueStore(t *testing.T) {
	t.Parallel()
	exerciseStore(t, progressout.NewFileKeyValueStore(filepath.Join(t.TempDir(), "kv")))
}

func TestSQLiteKeyValueStore(t *testing.T) {
	t.Parallel()
	dbPath := filepath.Join(t.TempDir(), ".miftah", "miftah.db")
	store, err := progressout.NewSQLiteKeyValueStore(dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	exerciseStore(t, store)
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := progressout.NewSQLiteKeyValueStore(dbPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	if v, ok, err := reopened.Get(context.Background(), domain.SessionsKey); err != nil || !ok || v != `[]` {
		t.Fatalf("value should persist across reopen, got %q ok=%t err=%v", v, ok, err)
	}
}
