package todo

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	internalstrings "github.com/amonks/todos/internal/strings"
	"github.com/go-playground/validator/v10"
)

var (
	// ErrValidation is the parent of every input validation failure.
	ErrValidation = errors.New("validation failed")

	// ErrEmptyTitle is returned when a todo title is blank.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrEmptyContent is returned when a todo content is blank.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrInvalidState is returned when a state is not one of ValidStates.
	ErrInvalidState = errors.New("invalid state")

	// ErrTodoNotFound is returned when a todo with the given ID doesn't exist.
	ErrTodoNotFound = errors.New("todo not found")

	// ErrAmbiguousTodoIDPrefix is returned when an ID prefix matches multiple todos.
	ErrAmbiguousTodoIDPrefix = errors.New("ambiguous todo ID prefix")

	// ErrNotEditable is returned when content is changed in a non-editable state.
	ErrNotEditable = errors.New("cannot edit in current state")

	// ErrStorageRead is the parent of every failure to read the collection.
	ErrStorageRead = errors.New("storage read failed")

	// ErrStorageWrite is the parent of every failure to write the collection.
	ErrStorageWrite = errors.New("storage write failed")

	// ErrMalformedCollection is returned when the stored blob is not a valid collection.
	ErrMalformedCollection = errors.New("malformed todo collection")

	// ErrDuplicateID is returned when the stored collection repeats an ID.
	ErrDuplicateID = errors.New("duplicate todo id")

	// ErrEmptyID is returned when a stored todo has no ID.
	ErrEmptyID = errors.New("todo id cannot be empty")

	// ErrNegativeRevisionCount is returned when a stored todo has a negative revision count.
	ErrNegativeRevisionCount = errors.New("revision count cannot be negative")
)

var fieldValidator = sync.OnceValue(func() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return !internalstrings.IsBlank(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("register notblank validation: %v", err))
	}
	return v
})

// ValidateFields checks that title and content are not blank.
func ValidateFields(fields Fields) error {
	err := fieldValidator().Struct(fields)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	for _, fieldErr := range fieldErrs {
		switch fieldErr.Field() {
		case "title":
			return &ValidationError{Field: "title", Err: ErrEmptyTitle}
		case "content":
			return &ValidationError{Field: "content", Err: ErrEmptyContent}
		}
	}
	return &ValidationError{Field: fieldErrs[0].Field(), Err: fieldErrs[0]}
}

// ValidateState checks that state is one of ValidStates.
func ValidateState(state State) error {
	if !state.IsValid() {
		return invalidStateError(string(state))
	}
	return nil
}

// ValidateTodo checks if a stored todo struct is valid.
func ValidateTodo(t *Todo) error {
	if t.ID == "" {
		return ErrEmptyID
	}
	if err := ValidateFields(Fields{Title: t.Title, Content: t.Content}); err != nil {
		return err
	}
	if !t.State.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidState, t.State)
	}
	if t.RevisionCount < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeRevisionCount, t.RevisionCount)
	}
	return nil
}
