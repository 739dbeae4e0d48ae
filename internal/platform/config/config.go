package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	stateDir = ".timelog"
	fileName = "config.yaml"
)

type Config struct {
	DataDir         string
	DBPath          string
	ActivePath      string
	NotesDir        string
	Notes           bool
	AllowIncomplete bool
	LogLevel        string
}

// fileConfig is the optional on-disk overlay read from <data>/.timelog/config.yaml.
type fileConfig struct {
	DBPath          string `yaml:"db_path,omitempty"`
	NotesDir        string `yaml:"notes_dir,omitempty"`
	Notes           *bool  `yaml:"notes,omitempty"`
	AllowIncomplete *bool  `yaml:"allow_incomplete,omitempty"`
	LogLevel        string `yaml:"log_level,omitempty"`
}

func New(dataDir string) (Config, error) {
	if dataDir == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}
	cfg := Config{
		DataDir:    dataDir,
		DBPath:     filepath.Join(dataDir, stateDir, "session-history.sqlite"),
		ActivePath: filepath.Join(dataDir, stateDir, "active-session.json"),
		NotesDir:   filepath.Join(dataDir, "sessions"),
		LogLevel:   "info",
	}
	if err := cfg.overlay(Path(dataDir)); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Path returns the config file location for a data dir.
func Path(dataDir string) string {
	return filepath.Join(dataDir, stateDir, fileName)
}

func (c *Config) overlay(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	file := fileConfig{}
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	if file.DBPath != "" {
		c.DBPath = c.resolve(file.DBPath)
	}
	if file.NotesDir != "" {
		c.NotesDir = c.resolve(file.NotesDir)
	}
	if file.Notes != nil {
		c.Notes = *file.Notes
	}
	if file.AllowIncomplete != nil {
		c.AllowIncomplete = *file.AllowIncomplete
	}
	if file.LogLevel != "" {
		c.LogLevel = file.LogLevel
	}
	return nil
}

func (c *Config) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.DataDir, path)
}
