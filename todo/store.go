package todo

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/amonks/todos/internal/ids"
)

// Backend is an opaque key-value store holding serialized blobs.
type Backend interface {
	// Get returns the value stored at key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Set replaces the value stored at key.
	Set(ctx context.Context, key string, value []byte) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}

// Store provides read-modify-write access to the todo collection.
//
// Store does no locking of its own: it assumes one logical writer. When two
// callers overlap, the later write replaces the whole collection.
type Store struct {
	backend Backend
	key     string
	logger  *slog.Logger
	newID   func() string
}

// Options configures a Store.
type Options struct {
	// Logger receives operation logs. If nil, logs are discarded.
	Logger *slog.Logger

	// NewID generates record IDs. If nil, ids.New is used.
	NewID func() string
}

// NewStore returns a Store persisting to backend under StorageKey.
func NewStore(backend Backend, opts Options) *Store {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	newID := opts.NewID
	if newID == nil {
		newID = ids.New
	}
	return &Store{
		backend: backend,
		key:     StorageKey,
		logger:  logger,
		newID:   newID,
	}
}

// readTodos loads and validates the full collection.
func (s *Store) readTodos(ctx context.Context) ([]Todo, error) {
	data, ok, err := s.backend.Get(ctx, s.key)
	if err != nil {
		s.logger.ErrorContext(ctx, "read todos", "key", s.key, "error", err)
		return nil, &StorageError{Op: OpRead, Key: s.key, Err: err}
	}
	if !ok {
		return []Todo{}, nil
	}

	todos, err := decodeCollection(data)
	if err != nil {
		s.logger.ErrorContext(ctx, "decode todos", "key", s.key, "error", err)
		return nil, &StorageError{Op: OpRead, Key: s.key, Err: err}
	}
	return todos, nil
}

// writeTodos replaces the full collection.
func (s *Store) writeTodos(ctx context.Context, todos []Todo) error {
	data, err := encodeCollection(todos)
	if err != nil {
		return &StorageError{Op: OpWrite, Key: s.key, Err: err}
	}
	if err := s.backend.Set(ctx, s.key, data); err != nil {
		s.logger.ErrorContext(ctx, "write todos", "key", s.key, "error", err)
		return &StorageError{Op: OpWrite, Key: s.key, Err: err}
	}
	s.logger.DebugContext(ctx, "wrote todos", "key", s.key, "count", len(todos))
	return nil
}

// freshID returns a generated ID not used by any of todos.
func (s *Store) freshID(todos []Todo) string {
	taken := make(map[string]struct{}, len(todos))
	for _, t := range todos {
		taken[t.ID] = struct{}{}
	}
	for {
		id := s.newID()
		if _, ok := taken[id]; id != "" && !ok {
			return id
		}
	}
}

// IDIndex returns an index of all todo IDs in the store.
func (s *Store) IDIndex(ctx context.Context) (IDIndex, error) {
	todos, err := s.readTodos(ctx)
	if err != nil {
		return IDIndex{}, err
	}
	return NewIDIndex(todos), nil
}

// Resolve returns the full ID of the todo matching a unique ID prefix.
func (s *Store) Resolve(ctx context.Context, prefix string) (string, error) {
	index, err := s.IDIndex(ctx)
	if err != nil {
		return "", err
	}
	return index.Resolve(prefix)
}

// Reset removes the stored collection entirely.
func (s *Store) Reset(ctx context.Context) error {
	if err := s.backend.Remove(ctx, s.key); err != nil {
		return &StorageError{Op: OpWrite, Key: s.key, Err: fmt.Errorf("remove: %w", err)}
	}
	s.logger.InfoContext(ctx, "reset todos", "key", s.key)
	return nil
}
