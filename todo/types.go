// Package todo implements a single-user task list persisted as one blob.
//
// The whole list is stored as a JSON array under a single key in a
// key-value Backend. Every mutating operation reads the full collection,
// changes one record, and writes the full collection back.
//
// The public API mirrors the operations a UI needs:
//   - Load, Show, Resolve for querying
//   - Create, UpdateFields for content
//   - ChangeState for lifecycle transitions
//   - Delete, Reset for removal
package todo

// State represents the lifecycle state of a todo.
type State string

const (
	// StatePlanning is the initial state of every new todo.
	StatePlanning State = "planning"

	// StateProgress indicates the todo is being worked on.
	StateProgress State = "progress"

	// StatePause indicates work on the todo is on hold.
	StatePause State = "pause"

	// StateFinish indicates the todo has been completed.
	StateFinish State = "finish"

	// StateCanceled indicates the todo was abandoned.
	StateCanceled State = "canceled"
)

// ValidStates returns all valid state values.
func ValidStates() []State {
	return []State{StatePlanning, StateProgress, StatePause, StateFinish, StateCanceled}
}

// IsValid returns true if the state is a known valid value.
func (s State) IsValid() bool {
	for _, valid := range ValidStates() {
		if s == valid {
			return true
		}
	}
	return false
}

// IsEditable reports whether title, content and importance may change
// while a todo is in this state.
func (s State) IsEditable() bool {
	switch s {
	case StatePlanning, StatePause:
		return true
	default:
		return false
	}
}

// StorageKey is the backend key holding the serialized collection.
const StorageKey = "@todos"
