package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/amonks/todos/internal/todoenv"
)

// EnsureHomeDirs creates the default config and data directories under homeDir.
func EnsureHomeDirs(homeDir string) error {
	if err := os.MkdirAll(filepath.Join(homeDir, ".config", "todos"), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.MkdirAll(filepath.Join(homeDir, ".local", "share", "todos"), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	return nil
}

// SetupTestHome creates a temp home directory, ensures config/data dirs, and
// sets HOME. Todo environment overrides are cleared.
func SetupTestHome(t testing.TB) string {
	t.Helper()

	homeDir := t.TempDir()
	if err := EnsureHomeDirs(homeDir); err != nil {
		t.Fatalf("setup home dir: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv(todoenv.DataDirEnvVar, "")
	t.Setenv(todoenv.LogLevelEnvVar, "")
	return homeDir
}
