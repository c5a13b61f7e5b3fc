package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/amonks/todos/internal/ui"
	"github.com/amonks/todos/todo"
)

// printTodoTable prints todos in a table format.
func printTodoTable(w io.Writer, todos []todo.Todo, styler *ui.Styler) {
	if len(todos) == 0 {
		fmt.Fprintln(w, "No todos found.")
		return
	}

	fmt.Fprint(w, formatTodoTable(todos, todoIDPrefixLengths(todos), styler))
}

func formatTodoTable(todos []todo.Todo, prefixLengths map[string]int, styler *ui.Styler) string {
	builder := ui.NewTableBuilder([]string{"ID", "STATE", "!", "REV", "TITLE"}, len(todos))
	highlight := idHighlighter(prefixLengths, styler.HighlightID)

	for _, t := range todos {
		builder.AddRow([]string{
			highlight(t.ID),
			styler.StateBadge(string(t.State)),
			styler.Important(t.Important),
			strconv.Itoa(t.RevisionCount),
			ui.TruncateTableCell(t.Title),
		})
	}

	return builder.String()
}
