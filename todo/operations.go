package todo

import (
	"context"
	"fmt"
)

// Load returns the full collection in insertion order.
// An absent blob yields an empty collection.
func (s *Store) Load(ctx context.Context) ([]Todo, error) {
	todos, err := s.readTodos(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.DebugContext(ctx, "load", "op", "load", "count", len(todos))
	return todos, nil
}

// Show returns the todo with the given ID.
func (s *Store) Show(ctx context.Context, id string) (*Todo, error) {
	todos, err := s.readTodos(ctx)
	if err != nil {
		return nil, err
	}
	i := findTodo(todos, id)
	if i < 0 {
		return nil, notFoundError(id)
	}
	todo := todos[i]
	return &todo, nil
}

// Create appends a new todo in the planning state.
func (s *Store) Create(ctx context.Context, fields Fields) (*Todo, error) {
	fields = normalizeFields(fields)
	if err := ValidateFields(fields); err != nil {
		return nil, err
	}

	todos, err := s.readTodos(ctx)
	if err != nil {
		return nil, err
	}

	todo := Todo{
		ID:            s.freshID(todos),
		Title:         fields.Title,
		Content:       fields.Content,
		Important:     fields.Important,
		State:         StatePlanning,
		RevisionCount: 0,
	}
	todos = append(todos, todo)

	if err := s.writeTodos(ctx, todos); err != nil {
		return nil, err
	}
	s.logger.DebugContext(ctx, "created todo", "op", "create", "id", todo.ID, "count", len(todos))
	return &todo, nil
}

// UpdateFields replaces the title, content and importance of a todo and
// increments its revision count. The todo must be in an editable state.
func (s *Store) UpdateFields(ctx context.Context, id string, fields Fields) (*Todo, error) {
	fields = normalizeFields(fields)
	if err := ValidateFields(fields); err != nil {
		return nil, err
	}

	todos, err := s.readTodos(ctx)
	if err != nil {
		return nil, err
	}
	i := findTodo(todos, id)
	if i < 0 {
		return nil, notFoundError(id)
	}
	if !todos[i].Editable() {
		return nil, fmt.Errorf("%w: %s is %s", ErrNotEditable, id, todos[i].State)
	}

	todos[i].Title = fields.Title
	todos[i].Content = fields.Content
	todos[i].Important = fields.Important
	todos[i].RevisionCount++

	if err := s.writeTodos(ctx, todos); err != nil {
		return nil, err
	}
	todo := todos[i]
	s.logger.DebugContext(ctx, "updated todo", "op", "update", "id", todo.ID, "revision", todo.RevisionCount)
	return &todo, nil
}

// ChangeState moves a todo to state. Any state may follow any other,
// including itself. The revision count is left untouched.
func (s *Store) ChangeState(ctx context.Context, id string, state State) (*Todo, error) {
	if err := ValidateState(state); err != nil {
		return nil, err
	}

	todos, err := s.readTodos(ctx)
	if err != nil {
		return nil, err
	}
	i := findTodo(todos, id)
	if i < 0 {
		return nil, notFoundError(id)
	}

	previous := todos[i].State
	todos[i].State = state

	if err := s.writeTodos(ctx, todos); err != nil {
		return nil, err
	}
	todo := todos[i]
	s.logger.DebugContext(ctx, "changed state", "op", "state", "id", todo.ID, "from", previous, "to", state)
	return &todo, nil
}

// Delete removes the todo with the given ID. Deleting an ID that is not in
// the collection does nothing.
func (s *Store) Delete(ctx context.Context, id string) error {
	todos, err := s.readTodos(ctx)
	if err != nil {
		return err
	}
	i := findTodo(todos, id)
	if i < 0 {
		s.logger.DebugContext(ctx, "delete of missing todo", "op", "delete", "id", id)
		return nil
	}

	remaining := make([]Todo, 0, len(todos)-1)
	remaining = append(remaining, todos[:i]...)
	remaining = append(remaining, todos[i+1:]...)

	if err := s.writeTodos(ctx, remaining); err != nil {
		return err
	}
	s.logger.DebugContext(ctx, "deleted todo", "op", "delete", "id", id, "count", len(remaining))
	return nil
}

func findTodo(todos []Todo, id string) int {
	for i := range todos {
		if todos[i].ID == id {
			return i
		}
	}
	return -1
}

func notFoundError(id string) error {
	return fmt.Errorf("%w: %s", ErrTodoNotFound, id)
}
