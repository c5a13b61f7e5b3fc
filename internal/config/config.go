// Package config handles loading todos.toml configuration files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/amonks/todos/internal/paths"
)

// ProjectFile is the name of the per-directory config file.
const ProjectFile = "todos.toml"

// Defaults applied after merging.
const (
	DefaultLogLevel   = "warn"
	DefaultServerAddr = "127.0.0.1:7327"
)

// Config represents the merged configuration.
type Config struct {
	Storage Storage `toml:"storage"`
	Log     Log     `toml:"log"`
	Server  Server  `toml:"server"`
}

// Storage configures the file backend.
type Storage struct {
	// Dir is the directory holding the collection. Defaults to
	// ~/.local/share/todos.
	Dir string `toml:"dir"`
}

// Log configures logging.
type Log struct {
	Level   string `toml:"level"`
	File    string `toml:"file"`
	Journal bool   `toml:"journal"`
}

// Server configures the HTTP surface.
type Server struct {
	Addr string `toml:"addr"`
}

// Load loads the global config file and the project file in dir, with
// project values taking precedence. Missing files are not an error.
func Load(dir string) (*Config, error) {
	globalPath, err := paths.ConfigPath()
	if err != nil {
		return nil, err
	}

	globalCfg, globalMeta, err := loadConfigFile(globalPath)
	if err != nil {
		return nil, err
	}

	projectCfg, projectMeta, err := loadConfigFile(filepath.Join(dir, ProjectFile))
	if err != nil {
		return nil, err
	}

	merged := mergeConfigs(globalCfg, projectCfg, globalMeta, projectMeta)
	if err := merged.applyDefaults(); err != nil {
		return nil, err
	}
	return merged, nil
}

func loadConfigFile(path string) (*Config, toml.MetaData, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, toml.MetaData{}, nil
	}
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg Config
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: unknown key %s", path, undecoded[0])
	}

	return &cfg, meta, nil
}

func mergeConfigs(globalCfg, projectCfg *Config, globalMeta, projectMeta toml.MetaData) *Config {
	if globalCfg == nil {
		globalCfg = &Config{}
	}
	if projectCfg == nil {
		projectCfg = &Config{}
	}

	merged := Config{}
	merged.Storage.Dir = mergeString(projectMeta.IsDefined("storage", "dir"), projectCfg.Storage.Dir, globalCfg.Storage.Dir)
	merged.Log.Level = mergeString(projectMeta.IsDefined("log", "level"), projectCfg.Log.Level, globalCfg.Log.Level)
	merged.Log.File = mergeString(projectMeta.IsDefined("log", "file"), projectCfg.Log.File, globalCfg.Log.File)
	merged.Server.Addr = mergeString(projectMeta.IsDefined("server", "addr"), projectCfg.Server.Addr, globalCfg.Server.Addr)
	if projectMeta.IsDefined("log", "journal") {
		merged.Log.Journal = projectCfg.Log.Journal
	} else if globalMeta.IsDefined("log", "journal") {
		merged.Log.Journal = globalCfg.Log.Journal
	}

	return &merged
}

func mergeString(projectDefined bool, projectValue, globalValue string) string {
	value := globalValue
	if projectDefined {
		value = projectValue
	}
	return strings.TrimSpace(value)
}

func (c *Config) applyDefaults() error {
	if c.Storage.Dir == "" {
		dir, err := paths.DefaultDataDir()
		if err != nil {
			return err
		}
		c.Storage.Dir = dir
	}
	dir, err := paths.ExpandHome(c.Storage.Dir)
	if err != nil {
		return err
	}
	c.Storage.Dir = dir

	if c.Log.File != "" {
		file, err := paths.ExpandHome(c.Log.File)
		if err != nil {
			return err
		}
		c.Log.File = file
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultServerAddr
	}
	return nil
}
