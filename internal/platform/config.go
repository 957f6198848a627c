package platform

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the optional darkboard.yaml file.
//
//	data_file: boards/notes.dat   # relative to the config file
//	log_level: debug
//	read_only: false
//	watch_pattern: "*.dat"
type Config struct {
	DataFile     string `yaml:"data_file"`
	LogLevel     string `yaml:"log_level"`
	ReadOnly     bool   `yaml:"read_only"`
	WatchPattern string `yaml:"watch_pattern"`
}

// LoadConfig reads a config file. A missing file yields the zero Config.
// A relative data_file is resolved against the file's directory.
func LoadConfig(path string) (Config, error) {
	var cfg Config

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}

	if cfg.DataFile != "" && !filepath.IsAbs(cfg.DataFile) {
		cfg.DataFile = filepath.Join(filepath.Dir(path), cfg.DataFile)
	}
	if _, err := cfg.Level(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Level maps log_level to a slog level. Empty means Info.
func (c Config) Level() (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
}
