package main

import (
	"fmt"

	"github.com/amonks/todos/internal/editor"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Remove every todo",
	Args:  cobra.NoArgs,
	RunE:  runReset,
}

var resetYes bool

func init() {
	rootCmd.AddCommand(resetCmd)
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "Do not ask for confirmation")
}

func runReset(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	prompter := stdioPrompter{in: cmd.InOrStdin(), out: out}
	confirmed, err := confirmAction(prompter, editor.IsInteractive(), resetYes, "Remove all todos?")
	if err != nil {
		return err
	}
	if !confirmed {
		fmt.Fprintln(out, "Nothing removed.")
		return nil
	}

	session, err := openTodoStore(cmd)
	if err != nil {
		return err
	}
	defer session.Close()

	if err := session.store.Reset(commandContext(cmd)); err != nil {
		return err
	}
	fmt.Fprintln(out, "Removed all todos.")
	return nil
}
