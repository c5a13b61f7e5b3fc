package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/amonks/todos/todo"
)

// resolveContentFromStdin reads content from reader when content is "-".
func resolveContentFromStdin(content string, reader io.Reader) (string, error) {
	if content != "-" {
		return content, nil
	}

	input, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("read content from stdin: %w", err)
	}

	return strings.TrimRight(string(input), "\r\n"), nil
}

func shouldUseUpdateEditor(hasUpdateFlags bool, editFlag bool, noEditFlag bool, interactive bool) bool {
	if editFlag {
		return true
	}
	if noEditFlag {
		return false
	}
	if hasUpdateFlags {
		return false
	}
	return interactive
}

func fieldsFromTodo(t *todo.Todo) todo.Fields {
	return todo.Fields{
		Title:     t.Title,
		Content:   t.Content,
		Important: t.Important,
	}
}
