package hamui

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig(t *testing.T) {
	t.Run("MissingFileYieldsDefaults", func(t *testing.T) {
		cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
		if err != nil {
			t.Fatal(err)
		}
		if cfg != DefaultConfig() {
			t.Errorf("got %+v, want defaults", cfg)
		}
	})

	t.Run("ParsesFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		content := "poll_timeout_ms = 16\nmouse_capture = false\nalt_screen = true\nlog_file = \"/tmp/hamui.log\"\n"
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatal(err)
		}
		if cfg.PollTimeoutMs != 16 || cfg.MouseCapture || !cfg.AltScreen {
			t.Errorf("got %+v", cfg)
		}
		if cfg.LogFile != "/tmp/hamui.log" {
			t.Errorf("log file = %q", cfg.LogFile)
		}
		if cfg.pollTimeout() != 16*time.Millisecond {
			t.Errorf("poll timeout = %v", cfg.pollTimeout())
		}
	})

	t.Run("MalformedFileErrors", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte("poll_timeout_ms = {"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadConfig(path); err == nil {
			t.Error("expected a parse error")
		}
	})

	t.Run("Defaults", func(t *testing.T) {
		cfg := DefaultConfig()
		if !cfg.MouseCapture || !cfg.AltScreen || cfg.PollTimeoutMs != 0 {
			t.Errorf("unexpected defaults %+v", cfg)
		}
	})
}
