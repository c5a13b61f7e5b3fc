package todo

import (
	"context"
	"fmt"
	"testing"

	"github.com/amonks/todos/internal/kv"
)

// newTestStore returns a Store over an in-memory backend with predictable
// IDs: id-1, id-2, and so on.
func newTestStore(t *testing.T) (*Store, *kv.Memory) {
	t.Helper()

	backend := kv.NewMemory()
	next := 0
	store := NewStore(backend, Options{
		NewID: func() string {
			next++
			return fmt.Sprintf("id-%d", next)
		},
	})
	return store, backend
}

// newStoreWithIDs returns a Store that hands out the given IDs in order.
func newStoreWithIDs(t *testing.T, ids ...string) (*Store, *kv.Memory) {
	t.Helper()

	backend := kv.NewMemory()
	store := NewStore(backend, Options{
		NewID: func() string {
			if len(ids) == 0 {
				t.Fatal("ran out of test IDs")
			}
			id := ids[0]
			ids = ids[1:]
			return id
		},
	})
	return store, backend
}

func mustCreate(t *testing.T, store *Store, title, content string, important bool) *Todo {
	t.Helper()

	created, err := store.Create(context.Background(), Fields{Title: title, Content: content, Important: important})
	if err != nil {
		t.Fatalf("create %q: %v", title, err)
	}
	return created
}

func mustChangeState(t *testing.T, store *Store, id string, state State) *Todo {
	t.Helper()

	changed, err := store.ChangeState(context.Background(), id, state)
	if err != nil {
		t.Fatalf("change state of %s to %s: %v", id, state, err)
	}
	return changed
}

func mustLoad(t *testing.T, store *Store) []Todo {
	t.Helper()

	todos, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return todos
}

func rawBlob(t *testing.T, backend *kv.Memory) []byte {
	t.Helper()

	data, ok, err := backend.Get(context.Background(), StorageKey)
	if err != nil {
		t.Fatalf("get blob: %v", err)
	}
	if !ok {
		t.Fatal("expected a stored blob")
	}
	return data
}
