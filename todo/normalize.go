package todo

import (
	"strings"

	internalstrings "github.com/amonks/todos/internal/strings"
	"github.com/amonks/todos/internal/validation"
)

func normalizeState(state State) State {
	return State(internalstrings.NormalizeLowerTrimSpace(string(state)))
}

// ParseState converts user input into a State, ignoring case and
// surrounding whitespace.
func ParseState(value string) (State, error) {
	state := normalizeState(State(value))
	if !state.IsValid() {
		return "", invalidStateError(value)
	}
	return state, nil
}

func invalidStateError(value string) error {
	return &ValidationError{
		Field: "state",
		Err:   validation.InvalidValueError(ErrInvalidState, value, ValidStates()),
	}
}

func normalizeFields(fields Fields) Fields {
	return Fields{
		Title:     strings.TrimSpace(fields.Title),
		Content:   strings.TrimSpace(fields.Content),
		Important: fields.Important,
	}
}
