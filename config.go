package hamui

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config carries the runtime knobs for a frame session.
type Config struct {
	// PollTimeoutMs bounds how long a tick waits for input. Zero means
	// never block.
	PollTimeoutMs int `toml:"poll_timeout_ms"`

	// MouseCapture enables mouse event reporting.
	MouseCapture bool `toml:"mouse_capture"`

	// AltScreen renders on the alternate screen buffer.
	AltScreen bool `toml:"alt_screen"`

	// LogFile enables debug logging to the given path. Empty disables
	// logging entirely; a TUI owns the terminal, so logs never go there.
	LogFile string `toml:"log_file"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		MouseCapture: true,
		AltScreen:    true,
	}
}

// DefaultConfigPath returns the per-user config file location.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".hamui", "config.toml")
}

// LoadConfig reads a TOML config file. A missing file yields the defaults
// without error; a malformed file is an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		path = DefaultConfigPath()
	}
	if path == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := toml.Unmarshal(content, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) pollTimeout() time.Duration {
	return time.Duration(c.PollTimeoutMs) * time.Millisecond
}
