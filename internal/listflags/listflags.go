// Package listflags registers flags shared by output commands.
package listflags

import "github.com/spf13/cobra"

// AddJSONFlag adds a shared --json flag to commands that print todos.
func AddJSONFlag(cmd *cobra.Command, target *bool) {
	if target == nil {
		cmd.Flags().Bool("json", false, "Output as JSON")
		return
	}

	cmd.Flags().BoolVar(target, "json", false, "Output as JSON")
}
