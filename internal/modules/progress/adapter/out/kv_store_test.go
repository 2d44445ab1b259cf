package out_test

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"

	progressout "ritualcoach/internal/modules/progress/adapter/out"
	kvport "ritualcoach/internal/modules/progress/port/out"
)

func stores(t *testing.T) map[string]kvport.KVStore {
	t.Helper()
	sqlite, err := progressout.NewSQLiteKVStore(filepath.Join(t.TempDir(), "nested", "ritualcoach.db"))
	if err != nil {
		t.Fatalf("new sqlite store: %v", err)
	}
	t.Cleanup(func() { _ = sqlite.Close() })
	return map[string]kvport.KVStore{
		"memory": progressout.NewMemoryKVStore(),
		"file":   progressout.NewFileKVStore(filepath.Join(t.TempDir(), "store")),
		"sqlite": sqlite,
	}
}

func TestKVStoreContract(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	for name, store := range stores(t) {
		if _, found, err := store.Get(ctx, "ritual-coach-streak"); err != nil || found {
			t.Fatalf("%s: empty store get found=%t err=%v", name, found, err)
		}
		if keys, err := store.ListKeys(ctx, "ritual-coach-"); err != nil || len(keys) != 0 {
			t.Fatalf("%s: empty store list keys=%v err=%v", name, keys, err)
		}

		for _, key := range []string{"ritual-coach-progress-2024-01-02", "ritual-coach-progress-2024-01-01", "ritual-coach-streak", "other-app"} {
			if err := store.Set(ctx, key, []byte(`{"v":1}`)); err != nil {
				t.Fatalf("%s: set %s: %v", name, key, err)
			}
		}
		if err := store.Set(ctx, "ritual-coach-streak", []byte(`{"v":2}`)); err != nil {
			t.Fatalf("%s: overwrite: %v", name, err)
		}
		value, found, err := store.Get(ctx, "ritual-coach-streak")
		if err != nil || !found || string(value) != `{"v":2}` {
			t.Fatalf("%s: expected overwritten value, got %q found=%t err=%v", name, value, found, err)
		}

		keys, err := store.ListKeys(ctx, "ritual-coach-progress")
		if err != nil {
			t.Fatalf("%s: list: %v", name, err)
		}
		want := []string{"ritual-coach-progress-2024-01-01", "ritual-coach-progress-2024-01-02"}
		if !reflect.DeepEqual(keys, want) {
			t.Fatalf("%s: expected %v, got %v", name, want, keys)
		}
		all, err := store.ListKeys(ctx, "")
		if err != nil || len(all) != 4 {
			t.Fatalf("%s: expected 4 keys for empty prefix, got %v err=%v", name, all, err)
		}

		if err := store.Remove(ctx, "ritual-coach-streak"); err != nil {
			t.Fatalf("%s: remove: %v", name, err)
		}
		if err := store.Remove(ctx, "ritual-coach-streak"); err != nil {
			t.Fatalf("%s: removing a missing key must succeed: %v", name, err)
		}
		if _, found, _ := store.Get(ctx, "ritual-coach-streak"); found {
			t.Fatalf("%s: key should be gone", name)
		}
	}
}

func TestFileKVStoreRejectsPathKeys(t *testing.T) {
	t.Parallel()
	store := progressout.NewFileKVStore(t.TempDir())
	for _, key := range []string{"", "../escape", "a/b", ".hidden"} {
		if err := store.Set(context.Background(), key, []byte("x")); err == nil {
			t.Fatalf("key %q should be rejected", key)
		}
	}
}

func TestSQLiteKVStorePersistsAcrossReopen(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "ritualcoach.db")
	first, err := progressout.NewSQLiteKVStore(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := first.Set(context.Background(), "ritual-coach-profile", []byte(`{}`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	second, err := progressout.NewSQLiteKVStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()
	if _, found, err := second.Get(context.Background(), "ritual-coach-profile"); err != nil || !found {
		t.Fatalf("expected persisted key, found=%t err=%v", found, err)
	}
}
