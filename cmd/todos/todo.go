package main

import (
	"errors"
	"fmt"

	"github.com/amonks/todos/internal/editor"
	"github.com/amonks/todos/internal/listflags"
	"github.com/amonks/todos/internal/ui"
	"github.com/amonks/todos/todo"
	"github.com/spf13/cobra"
)

// list
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List todos in the order they were created",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var listJSON bool

// show
var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show detailed information about a todo",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var showJSON bool

// create
var createCmd = &cobra.Command{
	Use:   "create [title]",
	Short: "Create a new todo",
	Long: `Create a new todo in the planning state.

By default, opens $EDITOR to edit a TOML representation of the todo
when running interactively. Use --no-edit to skip the editor, or
--edit to force opening the editor even when not interactive.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCreate,
}

var (
	createContent   string
	createImportant bool
	createEdit      bool
	createNoEdit    bool
)

// update
var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update the title, content or importance of a todo",
	Long: `Update the title, content or importance of a todo.

Only todos in the planning or pause state can be updated. Each update
increments the todo's revision count.

By default, opens $EDITOR when running interactively and no update flags
are provided. Use --no-edit to skip the editor, or --edit to force it.`,
	Args: cobra.ExactArgs(1),
	RunE: runUpdate,
}

var (
	updateTitle     string
	updateContent   string
	updateImportant bool
	updateEdit      bool
	updateNoEdit    bool
)

// state
var stateCmd = &cobra.Command{
	Use:   "state <id> <state>",
	Short: "Move a todo to any state",
	Long: `Move a todo to any state.

Valid states are planning, progress, pause, finish and canceled. Any state
may follow any other.`,
	Args: cobra.ExactArgs(2),
	RunE: runState,
}

// delete
var deleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "Delete one or more todos",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDelete,
}

var deleteYes bool

// stateShortcut describes a command that moves todos to a fixed state.
type stateShortcut struct {
	name  string
	short string
	state todo.State
	verb  string
}

var stateShortcuts = []stateShortcut{
	{name: "plan", short: "Move one or more todos back to planning", state: todo.StatePlanning, verb: "Planned"},
	{name: "start", short: "Mark one or more todos as in progress", state: todo.StateProgress, verb: "Started"},
	{name: "pause", short: "Put one or more todos on hold", state: todo.StatePause, verb: "Paused"},
	{name: "finish", short: "Mark one or more todos as finished", state: todo.StateFinish, verb: "Finished"},
	{name: "cancel", short: "Cancel one or more todos", state: todo.StateCanceled, verb: "Canceled"},
}

func init() {
	rootCmd.AddCommand(listCmd, showCmd, createCmd, updateCmd, stateCmd, deleteCmd)
	for _, shortcut := range stateShortcuts {
		rootCmd.AddCommand(newStateShortcutCmd(shortcut))
	}

	listflags.AddJSONFlag(listCmd, &listJSON)
	listflags.AddJSONFlag(showCmd, &showJSON)

	createCmd.Flags().StringVarP(&createContent, "content", "c", "", "Content (use '-' to read from stdin)")
	createCmd.Flags().BoolVarP(&createImportant, "important", "i", false, "Mark the todo as important")
	createCmd.Flags().BoolVarP(&createEdit, "edit", "e", false, "Open $EDITOR (default if interactive)")
	createCmd.Flags().BoolVar(&createNoEdit, "no-edit", false, "Do not open $EDITOR")

	updateCmd.Flags().StringVar(&updateTitle, "title", "", "New title")
	updateCmd.Flags().StringVarP(&updateContent, "content", "c", "", "New content (use '-' to read from stdin)")
	updateCmd.Flags().BoolVarP(&updateImportant, "important", "i", false, "Mark the todo as important (use --important=false to clear)")
	updateCmd.Flags().BoolVarP(&updateEdit, "edit", "e", false, "Open $EDITOR (default if interactive and no flags)")
	updateCmd.Flags().BoolVar(&updateNoEdit, "no-edit", false, "Do not open $EDITOR")

	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Do not ask for confirmation")
}

func newStateShortcutCmd(shortcut stateShortcut) *cobra.Command {
	return &cobra.Command{
		Use:   shortcut.name + " <id>...",
		Short: shortcut.short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChangeStates(cmd, args, shortcut.state, shortcut.verb)
		},
	}
}

func runList(cmd *cobra.Command, args []string) error {
	session, err := openTodoStore(cmd)
	if err != nil {
		return err
	}
	defer session.Close()

	todos, err := session.store.Load(commandContext(cmd))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if listJSON {
		return encodeJSON(out, todos)
	}
	printTodoTable(out, todos, ui.NewStyler(out))
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	session, err := openTodoStore(cmd)
	if err != nil {
		return err
	}
	defer session.Close()

	ctx := commandContext(cmd)
	todos, err := session.store.Load(ctx)
	if err != nil {
		return err
	}
	index := todo.NewIDIndex(todos)
	id, err := index.Resolve(args[0])
	if err != nil {
		return err
	}
	item, err := session.store.Show(ctx, id)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if showJSON {
		return encodeJSON(out, item)
	}
	styler := ui.NewStyler(out)
	printTodoDetail(out, *item, styler, idHighlighter(index.PrefixLengths(), styler.HighlightID))
	return nil
}

func runCreate(cmd *cobra.Command, args []string) error {
	if hasChangedFlags(cmd, "content") {
		content, err := resolveContentFromStdin(createContent, cmd.InOrStdin())
		if err != nil {
			return err
		}
		createContent = content
	}

	fields := todo.Fields{Content: createContent, Important: createImportant}
	if len(args) > 0 {
		fields.Title = args[0]
	}

	// Determine whether to open editor:
	// - --edit forces editor
	// - --no-edit skips editor
	// - otherwise, open editor if interactive
	useEditor := createEdit || (!createNoEdit && editor.IsInteractive())
	if useEditor {
		data := editor.DefaultCreateData()
		data.Title = fields.Title
		data.Content = fields.Content
		data.Important = fields.Important

		parsed, err := editor.EditTodoWithData(data)
		if err != nil {
			return err
		}
		fields = parsed.Fields()
	} else if len(args) == 0 {
		return fmt.Errorf("title is required (use --edit to open editor)")
	}

	session, err := openTodoStore(cmd)
	if err != nil {
		return err
	}
	defer session.Close()

	ctx := commandContext(cmd)
	created, err := session.store.Create(ctx, fields)
	if err != nil {
		return err
	}

	todos, err := session.store.Load(ctx)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	highlight := idHighlighter(todoIDPrefixLengths(todos), ui.NewStyler(out).HighlightID)
	fmt.Fprintf(out, "Created todo %s: %s\n", highlight(created.ID), created.Title)
	return nil
}

func runUpdate(cmd *cobra.Command, args []string) error {
	if hasChangedFlags(cmd, "content") {
		content, err := resolveContentFromStdin(updateContent, cmd.InOrStdin())
		if err != nil {
			return err
		}
		updateContent = content
	}

	session, err := openTodoStore(cmd)
	if err != nil {
		return err
	}
	defer session.Close()

	ctx := commandContext(cmd)
	resolved, err := resolveTodoIDs(ctx, session.store, args)
	if err != nil {
		return err
	}
	existing, err := session.store.Show(ctx, resolved[0])
	if err != nil {
		return err
	}

	hasFlags := hasChangedFlags(cmd, "title", "content", "important")
	fields := fieldsFromTodo(existing)
	if hasChangedFlags(cmd, "title") {
		fields.Title = updateTitle
	}
	if hasChangedFlags(cmd, "content") {
		fields.Content = updateContent
	}
	if hasChangedFlags(cmd, "important") {
		fields.Important = updateImportant
	}

	useEditor := shouldUseUpdateEditor(hasFlags, updateEdit, updateNoEdit, editor.IsInteractive())
	if useEditor {
		if !existing.Editable() {
			return fmt.Errorf("%w: %s is %s", todo.ErrNotEditable, existing.ID, existing.State)
		}
		data := editor.DataFromTodo(existing)
		data.Title = fields.Title
		data.Content = fields.Content
		data.Important = fields.Important

		parsed, err := editor.EditTodoWithData(data)
		if err != nil {
			return err
		}
		fields = parsed.Fields()
	} else if !hasFlags {
		return errors.New("nothing to update (use --title, --content, --important or --edit)")
	}

	updated, err := session.store.UpdateFields(ctx, existing.ID, fields)
	if err != nil {
		return err
	}

	todos, err := session.store.Load(ctx)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	highlight := idHighlighter(todoIDPrefixLengths(todos), ui.NewStyler(out).HighlightID)
	fmt.Fprintf(out, "Updated %s: %s (revision %d)\n", highlight(updated.ID), updated.Title, updated.RevisionCount)
	return nil
}

func runState(cmd *cobra.Command, args []string) error {
	state, err := todo.ParseState(args[1])
	if err != nil {
		return err
	}
	return runChangeStates(cmd, args[:1], state, "Moved")
}

func runChangeStates(cmd *cobra.Command, args []string, state todo.State, verb string) error {
	session, err := openTodoStore(cmd)
	if err != nil {
		return err
	}
	defer session.Close()

	ctx := commandContext(cmd)
	todos, err := session.store.Load(ctx)
	if err != nil {
		return err
	}
	index := todo.NewIDIndex(todos)
	resolved := make([]string, 0, len(args))
	for _, arg := range args {
		id, err := index.Resolve(arg)
		if err != nil {
			return err
		}
		resolved = append(resolved, id)
	}

	out := cmd.OutOrStdout()
	styler := ui.NewStyler(out)
	highlight := idHighlighter(index.PrefixLengths(), styler.HighlightID)
	for _, id := range resolved {
		changed, err := session.store.ChangeState(ctx, id, state)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s %s (%s): %s\n", verb, highlight(changed.ID), styler.StateBadge(string(changed.State)), changed.Title)
	}
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	session, err := openTodoStore(cmd)
	if err != nil {
		return err
	}
	defer session.Close()

	ctx := commandContext(cmd)
	todos, err := session.store.Load(ctx)
	if err != nil {
		return err
	}
	index := todo.NewIDIndex(todos)

	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	styler := ui.NewStyler(out)
	highlight := idHighlighter(index.PrefixLengths(), styler.HighlightID)

	resolved := make([]string, 0, len(args))
	for _, arg := range args {
		id, err := index.Resolve(arg)
		if errors.Is(err, todo.ErrTodoNotFound) {
			fmt.Fprintf(errOut, "No todo matches %s; nothing to delete\n", arg)
			continue
		}
		if err != nil {
			return err
		}
		resolved = append(resolved, id)
	}

	prompter := stdioPrompter{in: cmd.InOrStdin(), out: out}
	for _, id := range resolved {
		existing, err := session.store.Show(ctx, id)
		if errors.Is(err, todo.ErrTodoNotFound) {
			continue
		}
		if err != nil {
			return err
		}

		confirmed, err := confirmAction(prompter, editor.IsInteractive(), deleteYes,
			fmt.Sprintf("Delete todo %s (%s)?", highlight(id), existing.Title))
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Fprintf(out, "Kept %s: %s\n", highlight(id), existing.Title)
			continue
		}

		if err := session.store.Delete(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(out, "Deleted %s: %s\n", highlight(id), existing.Title)
	}
	return nil
}
