package main

import (
	"fmt"

	"github.com/amonks/todos/todo"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Append a set of sample todos",
	Args:  cobra.NoArgs,
	RunE:  runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

// sampleTodo is a todo added by seed. Revisions are replayed as
// content updates before the state change.
type sampleTodo struct {
	fields    todo.Fields
	state     todo.State
	revisions int
}

var sampleTodos = []sampleTodo{
	{
		fields: todo.Fields{
			Title:     "Prepare Grocery List",
			Content:   "Buy fresh produce, dairy, and pantry items for the week.",
			Important: true,
		},
		state:     todo.StatePlanning,
		revisions: 1,
	},
	{
		fields: todo.Fields{
			Title:   "Team Meeting",
			Content: "Discuss project updates and upcoming deadlines with the team.",
		},
		state: todo.StateProgress,
	},
	{
		fields: todo.Fields{
			Title:     "Plan Weekend Getaway",
			Content:   "Research locations, book a hotel, and create an itinerary.",
			Important: true,
		},
		state:     todo.StatePause,
		revisions: 2,
	},
	{
		fields: todo.Fields{
			Title:     "Finish UI Design",
			Content:   "Complete the design for the app's home screen and navigation.",
			Important: true,
		},
		state:     todo.StateFinish,
		revisions: 3,
	},
	{
		fields: todo.Fields{
			Title:   "Cancel Gym Membership",
			Content: "Call gym and cancel membership due to relocation.",
		},
		state:     todo.StateCanceled,
		revisions: 1,
	},
	{
		fields: todo.Fields{
			Title:   "Read Book on Productivity",
			Content: "Finish reading 'Atomic Habits' by James Clear.",
		},
		state: todo.StatePlanning,
	},
	{
		fields: todo.Fields{
			Title:     "Update Personal Website",
			Content:   "Add new portfolio items and update the blog section.",
			Important: true,
		},
		state:     todo.StateProgress,
		revisions: 1,
	},
}

func runSeed(cmd *cobra.Command, args []string) error {
	session, err := openTodoStore(cmd)
	if err != nil {
		return err
	}
	defer session.Close()

	if err := seedTodos(cmd, session.store, sampleTodos); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added %d sample todos.\n", len(sampleTodos))
	return nil
}

func seedTodos(cmd *cobra.Command, store *todo.Store, samples []sampleTodo) error {
	ctx := commandContext(cmd)
	for _, sample := range samples {
		created, err := store.Create(ctx, sample.fields)
		if err != nil {
			return fmt.Errorf("seed %q: %w", sample.fields.Title, err)
		}
		for range sample.revisions {
			if _, err := store.UpdateFields(ctx, created.ID, sample.fields); err != nil {
				return fmt.Errorf("seed %q: %w", sample.fields.Title, err)
			}
		}
		if sample.state == created.State {
			continue
		}
		if _, err := store.ChangeState(ctx, created.ID, sample.state); err != nil {
			return fmt.Errorf("seed %q: %w", sample.fields.Title, err)
		}
	}
	return nil
}
