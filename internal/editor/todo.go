package editor

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/BurntSushi/toml"
	internalstrings "github.com/amonks/todos/internal/strings"
	"github.com/amonks/todos/todo"
)

// TodoData represents the data used to render the TOML template.
type TodoData struct {
	// IsUpdate is true when editing an existing todo.
	IsUpdate bool
	// ID is the todo ID (only for updates).
	ID string
	// State is shown for reference on updates; it is not editable here.
	State string
	// Title is the todo title.
	Title string
	// Important flags the todo.
	Important bool
	// Content is the todo body, written below the front matter.
	Content string
}

// DefaultCreateData returns TodoData for creating a new todo.
func DefaultCreateData() TodoData {
	return TodoData{}
}

// DataFromTodo creates TodoData from an existing todo for editing.
func DataFromTodo(t *todo.Todo) TodoData {
	return TodoData{
		IsUpdate:  true,
		ID:        t.ID,
		State:     string(t.State),
		Title:     t.Title,
		Important: t.Important,
		Content:   t.Content,
	}
}

var todoTemplate = template.Must(template.New("todo").Parse(`
{{- if .IsUpdate }}# todo {{ .ID }} ({{ .State }})
{{ end -}}
title = {{ printf "%q" .Title }}
important = {{ .Important }}
---
{{ .Content }}
`))

// RenderTodoTOML renders the todo data as a TOML document for editing.
func RenderTodoTOML(data TodoData) (string, error) {
	var buf bytes.Buffer
	if err := todoTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}
	return buf.String(), nil
}

// ParsedTodo represents the parsed result from the editor output.
type ParsedTodo struct {
	Title     string `toml:"title"`
	Important bool   `toml:"important"`
	Content   string `toml:"-"`
}

// Fields converts the parsed document into todo fields.
func (p *ParsedTodo) Fields() todo.Fields {
	return todo.Fields{Title: p.Title, Content: p.Content, Important: p.Important}
}

// ParseTodoTOML parses the editor output and validates it.
func ParseTodoTOML(content string) (*ParsedTodo, error) {
	frontmatter, body := splitFrontmatter(internalstrings.NormalizeNewlines(content))

	var parsed ParsedTodo
	meta, err := toml.Decode(frontmatter, &parsed)
	if err != nil {
		return nil, fmt.Errorf("parse TOML: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("parse TOML: unknown key %s", undecoded[0])
	}
	parsed.Title = strings.TrimSpace(parsed.Title)
	parsed.Content = strings.TrimSpace(body)

	if err := todo.ValidateFields(parsed.Fields()); err != nil {
		return nil, err
	}
	return &parsed, nil
}

func splitFrontmatter(content string) (string, string) {
	content = strings.TrimLeft(content, "\n")
	if content == "" {
		return "", ""
	}

	lines := strings.Split(content, "\n")
	separatorIndex := -1
	for i, line := range lines {
		if strings.TrimSpace(line) == "---" {
			separatorIndex = i
			break
		}
	}
	if separatorIndex == -1 {
		return content, ""
	}

	frontmatter := strings.Join(lines[:separatorIndex], "\n")
	body := strings.Join(lines[separatorIndex+1:], "\n")
	return frontmatter, body
}

func createTodoTempFile() (*os.File, error) {
	return os.CreateTemp("", "todos-*.md")
}

// EditTodo opens the editor for a todo and returns the parsed result.
// Pass nil to create a new todo.
func EditTodo(existing *todo.Todo) (*ParsedTodo, error) {
	if existing == nil {
		return EditTodoWithData(DefaultCreateData())
	}
	return EditTodoWithData(DataFromTodo(existing))
}

// EditTodoWithData opens the editor with pre-populated data and returns the parsed result.
func EditTodoWithData(data TodoData) (*ParsedTodo, error) {
	content, err := RenderTodoTOML(data)
	if err != nil {
		return nil, err
	}

	tmpfile, err := createTodoTempFile()
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpfile.Name()
	defer os.Remove(tmpPath)

	if _, err := tmpfile.WriteString(content); err != nil {
		tmpfile.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if err := tmpfile.Close(); err != nil {
		return nil, fmt.Errorf("close temp file: %w", err)
	}

	if err := Edit(tmpPath); err != nil {
		return nil, err
	}

	edited, err := os.ReadFile(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("read edited file: %w", err)
	}

	return ParseTodoTOML(string(edited))
}
