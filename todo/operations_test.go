package todo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
)

func TestStore_LoadEmpty(t *testing.T) {
	store, backend := newTestStore(t)

	todos := mustLoad(t, store)
	if todos == nil || len(todos) != 0 {
		t.Fatalf("expected empty non-nil collection, got %#v", todos)
	}
	if backend.Sets != 0 {
		t.Fatalf("expected load not to write, got %d sets", backend.Sets)
	}
}

func TestStore_CreateRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, Fields{Title: "  Buy milk  ", Content: "\ttwo liters\n", Important: true})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	todos := mustLoad(t, store)
	if len(todos) != 1 {
		t.Fatalf("expected 1 todo, got %d", len(todos))
	}
	got := todos[0]
	want := Todo{
		ID:            created.ID,
		Title:         "Buy milk",
		Content:       "two liters",
		Important:     true,
		State:         StatePlanning,
		RevisionCount: 0,
	}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
	if got.ID == "" {
		t.Fatal("expected non-empty ID")
	}
	if *created != got {
		t.Fatalf("expected returned todo to match stored todo, got %+v", *created)
	}
}

func TestStore_CreateAppendsInOrder(t *testing.T) {
	store, _ := newTestStore(t)

	for i := 1; i <= 3; i++ {
		mustCreate(t, store, fmt.Sprintf("todo %d", i), "content", false)
	}

	todos := mustLoad(t, store)
	for i, todo := range todos {
		if want := fmt.Sprintf("todo %d", i+1); todo.Title != want {
			t.Errorf("todos[%d].Title = %q, want %q", i, todo.Title, want)
		}
	}
}

func TestStore_CreateSkipsCollidingIDs(t *testing.T) {
	store, _ := newStoreWithIDs(t, "a", "a", "", "b")

	first := mustCreate(t, store, "first", "x", false)
	second := mustCreate(t, store, "second", "x", false)

	if first.ID != "a" || second.ID != "b" {
		t.Fatalf("expected IDs a and b, got %q and %q", first.ID, second.ID)
	}
}

func TestStore_CreateValidation(t *testing.T) {
	tests := []struct {
		name    string
		fields  Fields
		field   string
		wantErr error
	}{
		{"empty title", Fields{Title: "", Content: "x"}, "title", ErrEmptyTitle},
		{"blank content", Fields{Title: "x", Content: "  "}, "content", ErrEmptyContent},
		{"both blank", Fields{Title: " ", Content: "\n"}, "title", ErrEmptyTitle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, backend := newTestStore(t)
			mustCreate(t, store, "existing", "x", false)
			setsBefore := backend.Sets

			_, err := store.Create(context.Background(), tt.fields)
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) || verr.Field != tt.field {
				t.Fatalf("expected ValidationError on %s, got %#v", tt.field, err)
			}

			if backend.Sets != setsBefore {
				t.Fatalf("expected no write, got %d new sets", backend.Sets-setsBefore)
			}
			if todos := mustLoad(t, store); len(todos) != 1 {
				t.Fatalf("expected collection length 1, got %d", len(todos))
			}
		})
	}
}

func TestStore_UpdateFields(t *testing.T) {
	store, _ := newTestStore(t)
	created := mustCreate(t, store, "title", "content", false)

	updated, err := store.UpdateFields(context.Background(), created.ID, Fields{Title: " new title ", Content: "new content", Important: true})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	want := Todo{ID: created.ID, Title: "new title", Content: "new content", Important: true, State: StatePlanning, RevisionCount: 1}
	if *updated != want {
		t.Fatalf("expected %+v, got %+v", want, *updated)
	}
	if got := mustLoad(t, store)[0]; got != want {
		t.Fatalf("expected stored %+v, got %+v", want, got)
	}
}

func TestStore_RevisionMonotonicity(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	created := mustCreate(t, store, "title", "content", false)

	for i := 1; i <= 5; i++ {
		updated, err := store.UpdateFields(ctx, created.ID, Fields{Title: "title", Content: fmt.Sprintf("rev %d", i)})
		if err != nil {
			t.Fatalf("update %d: %v", i, err)
		}
		if updated.RevisionCount != i {
			t.Fatalf("after %d updates expected revision %d, got %d", i, i, updated.RevisionCount)
		}

		// State changes in between must not count as revisions.
		mustChangeState(t, store, created.ID, StatePause)
		changed := mustChangeState(t, store, created.ID, StatePlanning)
		if changed.RevisionCount != i {
			t.Fatalf("state change moved revision to %d, want %d", changed.RevisionCount, i)
		}
	}
}

func TestStore_UpdateFieldsEditability(t *testing.T) {
	tests := []struct {
		state    State
		editable bool
	}{
		{StatePlanning, true},
		{StateProgress, false},
		{StatePause, true},
		{StateFinish, false},
		{StateCanceled, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			store, backend := newTestStore(t)
			created := mustCreate(t, store, "title", "content", false)
			mustChangeState(t, store, created.ID, tt.state)
			before := rawBlob(t, backend)

			_, err := store.UpdateFields(context.Background(), created.ID, Fields{Title: "edited", Content: "edited"})
			if tt.editable {
				if err != nil {
					t.Fatalf("expected update in %s to succeed, got %v", tt.state, err)
				}
				return
			}
			if !errors.Is(err, ErrNotEditable) {
				t.Fatalf("expected ErrNotEditable, got %v", err)
			}
			if !bytes.Equal(before, rawBlob(t, backend)) {
				t.Fatal("expected rejected update to leave storage unchanged")
			}
		})
	}
}

func TestStore_EditabilityGate(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	created := mustCreate(t, store, "title", "content", false)
	mustChangeState(t, store, created.ID, StateProgress)

	if _, err := store.UpdateFields(ctx, created.ID, Fields{Title: "t", Content: "c"}); !errors.Is(err, ErrNotEditable) {
		t.Fatalf("expected ErrNotEditable in progress, got %v", err)
	}

	mustChangeState(t, store, created.ID, StatePause)
	updated, err := store.UpdateFields(ctx, created.ID, Fields{Title: "t", Content: "c"})
	if err != nil {
		t.Fatalf("expected update after pause to succeed, got %v", err)
	}
	if updated.RevisionCount != 1 || updated.State != StatePause {
		t.Fatalf("unexpected todo after update: %+v", *updated)
	}
}

func TestStore_UpdateFieldsErrors(t *testing.T) {
	store, backend := newTestStore(t)
	ctx := context.Background()
	created := mustCreate(t, store, "title", "content", false)
	setsBefore := backend.Sets

	if _, err := store.UpdateFields(ctx, "missing", Fields{Title: "t", Content: "c"}); !errors.Is(err, ErrTodoNotFound) {
		t.Fatalf("expected ErrTodoNotFound, got %v", err)
	}
	if _, err := store.UpdateFields(ctx, created.ID, Fields{Title: "t", Content: " "}); !errors.Is(err, ErrEmptyContent) {
		t.Fatalf("expected ErrEmptyContent, got %v", err)
	}
	if backend.Sets != setsBefore {
		t.Fatal("expected failed updates not to write")
	}
}

func TestStore_ChangeStateIdempotent(t *testing.T) {
	store, backend := newTestStore(t)
	created := mustCreate(t, store, "title", "content", true)
	first := mustChangeState(t, store, created.ID, StateProgress)
	blob := rawBlob(t, backend)
	setsBefore := backend.Sets

	second := mustChangeState(t, store, created.ID, StateProgress)
	if *first != *second {
		t.Fatalf("expected same record, got %+v then %+v", *first, *second)
	}
	if second.RevisionCount != 0 {
		t.Fatalf("expected revision 0, got %d", second.RevisionCount)
	}
	if backend.Sets != setsBefore+1 {
		t.Fatalf("expected repeated state change to still write once, got %d sets", backend.Sets-setsBefore)
	}
	if !bytes.Equal(blob, rawBlob(t, backend)) {
		t.Fatal("expected repeated state change to leave the blob unchanged")
	}
}

func TestStore_ChangeStateAnyToAny(t *testing.T) {
	for _, from := range ValidStates() {
		for _, to := range ValidStates() {
			t.Run(fmt.Sprintf("%s to %s", from, to), func(t *testing.T) {
				store, _ := newTestStore(t)
				created := mustCreate(t, store, "title", "content", false)
				mustChangeState(t, store, created.ID, from)

				changed := mustChangeState(t, store, created.ID, to)
				if changed.State != to {
					t.Fatalf("expected %s, got %s", to, changed.State)
				}
			})
		}
	}
}

func TestStore_ChangeStateErrors(t *testing.T) {
	store, backend := newTestStore(t)
	ctx := context.Background()
	created := mustCreate(t, store, "title", "content", false)
	setsBefore := backend.Sets

	_, err := store.ChangeState(ctx, created.ID, State("done"))
	if !errors.Is(err, ErrValidation) || !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected invalid state validation error, got %v", err)
	}
	if _, err := store.ChangeState(ctx, created.ID, State("PLANNING")); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected raw state to be case sensitive, got %v", err)
	}
	if _, err := store.ChangeState(ctx, "missing", StateFinish); !errors.Is(err, ErrTodoNotFound) {
		t.Fatalf("expected ErrTodoNotFound, got %v", err)
	}
	if backend.Sets != setsBefore {
		t.Fatal("expected failed state changes not to write")
	}
}

func TestStore_DeleteRemovesExactlyOne(t *testing.T) {
	store, backend := newTestStore(t)
	var ids []string
	for i := 1; i <= 7; i++ {
		created := mustCreate(t, store, fmt.Sprintf("todo %d", i), fmt.Sprintf("content %d", i), i%2 == 0)
		ids = append(ids, created.ID)
	}
	mustChangeState(t, store, ids[1], StateFinish)

	var before []json.RawMessage
	if err := json.Unmarshal(rawBlob(t, backend), &before); err != nil {
		t.Fatalf("unmarshal before: %v", err)
	}

	if err := store.Delete(context.Background(), ids[2]); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var after []json.RawMessage
	if err := json.Unmarshal(rawBlob(t, backend), &after); err != nil {
		t.Fatalf("unmarshal after: %v", err)
	}
	if len(after) != 6 {
		t.Fatalf("expected 6 records, got %d", len(after))
	}

	want := append(append([]json.RawMessage{}, before[:2]...), before[3:]...)
	for i := range want {
		if !bytes.Equal(want[i], after[i]) {
			t.Errorf("record %d changed:\nbefore: %s\nafter:  %s", i, want[i], after[i])
		}
	}
	for _, todo := range mustLoad(t, store) {
		if todo.ID == ids[2] {
			t.Fatalf("deleted todo %s still present", ids[2])
		}
	}
}

func TestStore_DeleteMissingIsNoop(t *testing.T) {
	store, backend := newTestStore(t)
	mustCreate(t, store, "title", "content", false)
	setsBefore := backend.Sets

	if err := store.Delete(context.Background(), "missing"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if backend.Sets != setsBefore {
		t.Fatal("expected no write for missing id")
	}
	if todos := mustLoad(t, store); len(todos) != 1 {
		t.Fatalf("expected 1 todo, got %d", len(todos))
	}
}

func TestStore_DeleteLast(t *testing.T) {
	store, backend := newTestStore(t)
	created := mustCreate(t, store, "title", "content", false)

	if err := store.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got := string(rawBlob(t, backend)); got != "[]\n" {
		t.Fatalf("expected empty array blob, got %q", got)
	}
}

func TestStore_Show(t *testing.T) {
	store, _ := newTestStore(t)
	created := mustCreate(t, store, "title", "content", false)

	shown, err := store.Show(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if *shown != *created {
		t.Fatalf("expected %+v, got %+v", *created, *shown)
	}

	if _, err := store.Show(context.Background(), "missing"); !errors.Is(err, ErrTodoNotFound) {
		t.Fatalf("expected ErrTodoNotFound, got %v", err)
	}
}

func TestStore_Reset(t *testing.T) {
	store, backend := newTestStore(t)
	ctx := context.Background()
	mustCreate(t, store, "title", "content", false)

	if err := store.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if _, ok, _ := backend.Get(ctx, StorageKey); ok {
		t.Fatal("expected key to be removed")
	}
	if todos := mustLoad(t, store); len(todos) != 0 {
		t.Fatalf("expected empty collection, got %d", len(todos))
	}

	backend.RemoveErr = errors.New("disk gone")
	if err := store.Reset(ctx); !errors.Is(err, ErrStorageWrite) {
		t.Fatalf("expected ErrStorageWrite, got %v", err)
	}
}

func TestStore_ReadFailures(t *testing.T) {
	tests := []struct {
		name string
		blob string
	}{
		{"invalid json", `{not json`},
		{"object instead of array", `{"id":"a"}`},
		{"missing field", `[{"id":"a","title":"t","content":"c","important":false,"state":"planning"}]`},
		{"unknown state", `[{"id":"a","title":"t","content":"c","important":false,"state":"done","revisionCount":0}]`},
		{"negative revision", `[{"id":"a","title":"t","content":"c","important":false,"state":"planning","revisionCount":-1}]`},
		{"fractional revision", `[{"id":"a","title":"t","content":"c","important":false,"state":"planning","revisionCount":1.5}]`},
		{"blank title", `[{"id":"a","title":"  ","content":"c","important":false,"state":"planning","revisionCount":0}]`},
		{"empty id", `[{"id":"","title":"t","content":"c","important":false,"state":"planning","revisionCount":0}]`},
		{"duplicate id", `[` +
			`{"id":"a","title":"t","content":"c","important":false,"state":"planning","revisionCount":0},` +
			`{"id":"a","title":"u","content":"d","important":true,"state":"pause","revisionCount":2}]`},
		{"trailing data", `[] []`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, backend := newTestStore(t)
			ctx := context.Background()
			if err := backend.Set(ctx, StorageKey, []byte(tt.blob)); err != nil {
				t.Fatalf("seed: %v", err)
			}

			_, err := store.Load(ctx)
			if !errors.Is(err, ErrStorageRead) {
				t.Fatalf("expected ErrStorageRead, got %v", err)
			}
			if !errors.Is(err, ErrMalformedCollection) {
				t.Fatalf("expected ErrMalformedCollection, got %v", err)
			}
			var serr *StorageError
			if !errors.As(err, &serr) || serr.Op != OpRead || serr.Key != StorageKey {
				t.Fatalf("expected read StorageError on %s, got %#v", StorageKey, err)
			}

			// Mutations fail the same way and leave the blob alone.
			if _, err := store.Create(ctx, Fields{Title: "t", Content: "c"}); !errors.Is(err, ErrStorageRead) {
				t.Fatalf("expected create to fail with ErrStorageRead, got %v", err)
			}
			if got := string(rawBlob(t, backend)); got != tt.blob {
				t.Fatalf("expected blob to be untouched, got %q", got)
			}
		})
	}
}

func TestStore_BlankBlobIsEmpty(t *testing.T) {
	store, backend := newTestStore(t)
	ctx := context.Background()
	if err := backend.Set(ctx, StorageKey, []byte("  \n")); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if todos := mustLoad(t, store); len(todos) != 0 {
		t.Fatalf("expected empty collection, got %d", len(todos))
	}
}

func TestStore_BackendGetFailure(t *testing.T) {
	store, backend := newTestStore(t)
	backend.GetErr = errors.New("unreachable")

	_, err := store.Load(context.Background())
	if !errors.Is(err, ErrStorageRead) || !errors.Is(err, backend.GetErr) {
		t.Fatalf("expected ErrStorageRead wrapping backend error, got %v", err)
	}
}

func TestStore_WriteFailure(t *testing.T) {
	store, backend := newTestStore(t)
	ctx := context.Background()
	created := mustCreate(t, store, "title", "content", false)
	backend.SetErr = errors.New("disk full")

	checks := []struct {
		name string
		run  func() error
	}{
		{"create", func() error {
			_, err := store.Create(ctx, Fields{Title: "t", Content: "c"})
			return err
		}},
		{"update", func() error {
			_, err := store.UpdateFields(ctx, created.ID, Fields{Title: "t", Content: "c"})
			return err
		}},
		{"change state", func() error {
			_, err := store.ChangeState(ctx, created.ID, StateFinish)
			return err
		}},
		{"delete", func() error {
			return store.Delete(ctx, created.ID)
		}},
	}

	for _, check := range checks {
		t.Run(check.name, func(t *testing.T) {
			err := check.run()
			if !errors.Is(err, ErrStorageWrite) {
				t.Fatalf("expected ErrStorageWrite, got %v", err)
			}
			if errors.Is(err, ErrStorageRead) {
				t.Fatalf("write failure should not report as read failure: %v", err)
			}
			var serr *StorageError
			if !errors.As(err, &serr) || serr.Op != OpWrite {
				t.Fatalf("expected write StorageError, got %#v", err)
			}
		})
	}

	backend.SetErr = nil
	if todos := mustLoad(t, store); len(todos) != 1 || todos[0] != *created {
		t.Fatalf("expected original collection after failed writes, got %+v", todos)
	}
}

func TestStore_EncodedLayout(t *testing.T) {
	store, backend := newStoreWithIDs(t, "3f1c")
	mustCreate(t, store, "Write report", "Quarterly numbers", true)

	want := `[
  {
    "id": "3f1c",
    "title": "Write report",
    "content": "Quarterly numbers",
    "important": true,
    "state": "planning",
    "revisionCount": 0
  }
]
`
	if got := string(rawBlob(t, backend)); got != want {
		t.Fatalf("unexpected blob:\n%s\nwant:\n%s", got, want)
	}
}
