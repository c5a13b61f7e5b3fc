// Package main implements the todos CLI.
package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		var exitErr interface{ ExitCode() int }
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "todos",
	Short:        "A single-user to-do list",
	SilenceUsage: true,
}

var (
	globalDataDir  string
	globalLogLevel string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&globalDataDir, "data-dir", "", "Directory holding the todo collection")
	rootCmd.PersistentFlags().StringVar(&globalLogLevel, "log-level", "", "Log level (debug, info, warn, error)")
}
