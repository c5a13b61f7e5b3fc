package main

import (
	"fmt"

	"github.com/amonks/todos/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the todo list over HTTP",
	Long: `Serve the todo list over HTTP until interrupted.

Routes:
  GET    /todos
  POST   /todos
  GET    /todos/{id}
  PUT    /todos/{id}
  PUT    /todos/{id}/state
  DELETE /todos/{id}`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var serveAddr string

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Address to listen on (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	session, err := openTodoStore(cmd)
	if err != nil {
		return err
	}
	defer session.Close()

	addr := session.config.Server.Addr
	if hasChangedFlags(cmd, "addr") {
		addr = serveAddr
	}

	srv, err := server.New(server.Options{Store: session.store, Logger: session.logger})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Serving todos on http://%s\n", addr)
	return srv.Serve(addr)
}
