package todo

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed collection.schema.json
var collectionSchemaSource string

const collectionSchemaURL = "collection.schema.json"

var collectionSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	return jsonschema.CompileString(collectionSchemaURL, collectionSchemaSource)
})

// decodeCollection parses and validates a stored collection blob.
// A blank blob decodes to an empty collection.
func decodeCollection(data []byte) ([]Todo, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []Todo{}, nil
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	var raw any
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCollection, err)
	}
	if decoder.More() {
		return nil, fmt.Errorf("%w: trailing data after collection", ErrMalformedCollection)
	}

	schema, err := collectionSchema()
	if err != nil {
		return nil, fmt.Errorf("compile collection schema: %w", err)
	}
	if err := schema.Validate(raw); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedCollection, schemaErrorMessage(err))
	}

	var todos []Todo
	if err := json.Unmarshal(data, &todos); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCollection, err)
	}

	seen := make(map[string]struct{}, len(todos))
	for i := range todos {
		if err := ValidateTodo(&todos[i]); err != nil {
			return nil, fmt.Errorf("%w: [%d]: %v", ErrMalformedCollection, i, err)
		}
		if _, ok := seen[todos[i].ID]; ok {
			return nil, fmt.Errorf("%w: %w %s", ErrMalformedCollection, ErrDuplicateID, todos[i].ID)
		}
		seen[todos[i].ID] = struct{}{}
	}

	if todos == nil {
		todos = []Todo{}
	}
	return todos, nil
}

// encodeCollection serializes the collection as an indented JSON array.
func encodeCollection(todos []Todo) ([]byte, error) {
	if todos == nil {
		todos = []Todo{}
	}
	data, err := json.MarshalIndent(todos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal todos: %w", err)
	}
	return append(data, '\n'), nil
}

// schemaErrorMessage reports the first leaf cause of a schema failure.
func schemaErrorMessage(err error) string {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err.Error()
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	path := jsonPointerToPath(ve.InstanceLocation)
	if path == "" {
		return ve.Message
	}
	return fmt.Sprintf("%s: %s", path, ve.Message)
}

func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	var path strings.Builder
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			fmt.Fprintf(&path, "[%d]", idx)
			continue
		}
		if path.Len() > 0 {
			path.WriteByte('.')
		}
		path.WriteString(part)
	}
	return path.String()
}
