package main

import (
	"github.com/amonks/todos/internal/ui"
	"github.com/amonks/todos/todo"
)

func idHighlighter(prefixLengths map[string]int, highlight func(string, int) string) func(string) string {
	return func(id string) string {
		if id == "" {
			return id
		}
		return highlight(id, ui.PrefixLength(prefixLengths, id))
	}
}

func todoIDPrefixLengths(todos []todo.Todo) map[string]int {
	return todo.NewIDIndex(todos).PrefixLengths()
}
