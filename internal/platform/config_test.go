package platform_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/darkboard/darkboard/internal/platform"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, platform.ConfigFileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("Missing File", func(t *testing.T) {
		cfg, err := platform.LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg != (platform.Config{}) {
			t.Errorf("expected zero config, got %+v", cfg)
		}
	})

	t.Run("Relative Data File", func(t *testing.T) {
		dir := t.TempDir()
		path := writeConfig(t, dir, "data_file: boards/notes.dat\nlog_level: debug\nread_only: true\nwatch_pattern: \"*.dat\"\n")

		cfg, err := platform.LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig failed: %v", err)
		}
		if want := filepath.Join(dir, "boards", "notes.dat"); cfg.DataFile != want {
			t.Errorf("expected %s, got %s", want, cfg.DataFile)
		}
		if !cfg.ReadOnly || cfg.WatchPattern != "*.dat" {
			t.Errorf("unexpected config %+v", cfg)
		}
		lvl, err := cfg.Level()
		if err != nil || lvl != slog.LevelDebug {
			t.Errorf("expected debug level, got %v (%v)", lvl, err)
		}
	})

	t.Run("Empty File", func(t *testing.T) {
		cfg, err := platform.LoadConfig(writeConfig(t, t.TempDir(), ""))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.DataFile != "" {
			t.Errorf("expected empty data file, got %s", cfg.DataFile)
		}
	})

	t.Run("Unknown Field", func(t *testing.T) {
		if _, err := platform.LoadConfig(writeConfig(t, t.TempDir(), "data_fiel: x\n")); err == nil {
			t.Error("expected error for unknown field")
		}
	})

	t.Run("Bad Level", func(t *testing.T) {
		if _, err := platform.LoadConfig(writeConfig(t, t.TempDir(), "log_level: loud\n")); err == nil {
			t.Error("expected error for unknown log level")
		}
	})
}

func TestFindConfig(t *testing.T) {
	root := t.TempDir()
	want := writeConfig(t, root, "log_level: info\n")

	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	got, err := platform.FindConfig(nested)
	if err != nil {
		t.Fatalf("FindConfig failed: %v", err)
	}
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}

	// A directory named like the config file does not count.
	other := t.TempDir()
	if err := os.Mkdir(filepath.Join(other, platform.ConfigFileName), 0755); err != nil {
		t.Fatal(err)
	}
	if p, err := platform.FindConfig(other); err == nil && filepath.Dir(p) == other {
		t.Errorf("directory must not be taken for a config file")
	}
}
