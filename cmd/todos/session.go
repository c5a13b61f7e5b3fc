package main

import (
	"context"
	"log/slog"

	"github.com/amonks/todos/internal/config"
	"github.com/amonks/todos/internal/kv"
	"github.com/amonks/todos/internal/logs"
	"github.com/amonks/todos/internal/paths"
	"github.com/amonks/todos/internal/todoenv"
	"github.com/amonks/todos/todo"
	"github.com/spf13/cobra"
)

// todoSession holds what a command needs to talk to the store.
type todoSession struct {
	config *config.Config
	logger *slog.Logger
	store  *todo.Store

	closeLog func() error
}

// loadConfig merges config files, environment, and global flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cwd, err := paths.WorkingDir()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(cwd)
	if err != nil {
		return nil, err
	}
	todoenv.Apply(cfg)

	if hasChangedFlags(cmd, "data-dir") {
		cfg.Storage.Dir = globalDataDir
	}
	if hasChangedFlags(cmd, "log-level") {
		cfg.Log.Level = globalLogLevel
	}

	dir, err := paths.ExpandHome(cfg.Storage.Dir)
	if err != nil {
		return nil, err
	}
	cfg.Storage.Dir = dir
	return cfg, nil
}

// openTodoStore opens the file-backed store configured for cmd.
func openTodoStore(cmd *cobra.Command) (*todoSession, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	level, err := logs.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	logger, closeLog, err := logs.New(logs.Options{
		Level:   level,
		Stderr:  cmd.ErrOrStderr(),
		File:    cfg.Log.File,
		Journal: cfg.Log.Journal,
	})
	if err != nil {
		return nil, err
	}

	backend := kv.NewFile(cfg.Storage.Dir)
	logger.Debug("open store", "dir", backend.Dir())

	return &todoSession{
		config:   cfg,
		logger:   logger,
		store:    todo.NewStore(backend, todo.Options{Logger: logger}),
		closeLog: closeLog,
	}, nil
}

// Close releases the log file, if any.
func (s *todoSession) Close() {
	if err := s.closeLog(); err != nil {
		s.logger.Warn("close log file", "error", err)
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// resolveTodoIDs expands unique ID prefixes into full IDs.
func resolveTodoIDs(ctx context.Context, store *todo.Store, args []string) ([]string, error) {
	index, err := store.IDIndex(ctx)
	if err != nil {
		return nil, err
	}
	resolved := make([]string, 0, len(args))
	for _, arg := range args {
		id, err := index.Resolve(arg)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, id)
	}
	return resolved, nil
}
