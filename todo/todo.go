package todo

// Todo represents a single task.
type Todo struct {
	// ID is a unique identifier (UUID v4), assigned at creation.
	ID string `json:"id"`

	// Title is the short summary of the todo.
	Title string `json:"title"`

	// Content describes the work in detail.
	Content string `json:"content"`

	// Important flags the todo for attention.
	Important bool `json:"important"`

	// State is the current lifecycle state.
	State State `json:"state"`

	// RevisionCount counts successful content updates.
	RevisionCount int `json:"revisionCount"`
}

// Editable reports whether the todo's content may currently be changed.
func (t Todo) Editable() bool {
	return t.State.IsEditable()
}

// Fields holds the user-editable content of a todo.
type Fields struct {
	Title     string `json:"title" validate:"notblank"`
	Content   string `json:"content" validate:"notblank"`
	Important bool   `json:"important"`
}
