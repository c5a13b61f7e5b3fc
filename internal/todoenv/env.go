// Package todoenv applies environment overrides to the loaded config.
package todoenv

import (
	"os"
	"strings"

	"github.com/amonks/todos/internal/config"
)

const (
	// DataDirEnvVar overrides the storage directory.
	DataDirEnvVar = "TODOS_DATA_DIR"

	// LogLevelEnvVar overrides the log level.
	LogLevelEnvVar = "TODOS_LOG_LEVEL"
)

// Apply overrides cfg with any non-blank environment values.
func Apply(cfg *config.Config) {
	if dir := strings.TrimSpace(os.Getenv(DataDirEnvVar)); dir != "" {
		cfg.Storage.Dir = dir
	}
	if level := strings.TrimSpace(os.Getenv(LogLevelEnvVar)); level != "" {
		cfg.Log.Level = level
	}
}
