package main

import (
	"fmt"
	"io"

	"github.com/amonks/todos/internal/markdown"
	"github.com/amonks/todos/internal/ui"
	"github.com/amonks/todos/todo"
)

const todoDetailLineWidth = 80

// printTodoDetail prints detailed information about a todo.
func printTodoDetail(w io.Writer, t todo.Todo, styler *ui.Styler, highlight func(string) string) {
	fmt.Fprintf(w, "ID:        %s\n", highlight(t.ID))
	fmt.Fprintf(w, "Title:     %s\n", t.Title)
	fmt.Fprintf(w, "State:     %s\n", styler.StateBadge(string(t.State)))
	fmt.Fprintf(w, "Important: %s\n", yesNo(t.Important))
	fmt.Fprintf(w, "Revisions: %d\n", t.RevisionCount)

	if !t.Editable() {
		fmt.Fprintf(w, "\n%s\n", styler.Warning("Cannot edit in current state"))
	}

	fmt.Fprintf(w, "\nContent:\n%s\n", formatTodoContent(t.Content))
}

func formatTodoContent(value string) string {
	rendered := markdown.Render(todoDetailLineWidth, 2, []byte(value))
	if len(rendered) == 0 {
		return "  -"
	}
	return string(rendered)
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
