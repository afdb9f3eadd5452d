package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Run contains deletion run tuning.
type Run struct {
	// Workers is the worker pool size. Zero means the logical CPU count.
	Workers int `toml:"workers"`
	// ProgressIntervalMS is how often the progress display polls the broker.
	ProgressIntervalMS int `toml:"progress_interval_ms"`
}

// Paths contains directory configuration.
type Paths struct {
	// StateDir holds the run journal and lock files.
	StateDir string `toml:"state_dir"`
	// LogDir receives the sweeper log file. Empty disables file logging.
	LogDir string `toml:"log_dir"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Safety contains additions to the built-in protected path set.
type Safety struct {
	// AdditionalProtected paths are refused like system directories; they
	// cannot be overridden with --force.
	AdditionalProtected []string `toml:"additional_protected"`
}

// Journal contains run journal configuration.
type Journal struct {
	Enabled bool `toml:"enabled"`
}

// Config encapsulates all configuration values for sweeper.
type Config struct {
	Run     Run     `toml:"run"`
	Paths   Paths   `toml:"paths"`
	Logging Logging `toml:"logging"`
	Safety  Safety  `toml:"safety"`
	Journal Journal `toml:"journal"`
}

// DefaultConfigPath returns the absolute path of the default config location.
func DefaultConfigPath() (string, error) {
	return ExpandPath("~/.config/sweeper/config.toml")
}

// Load locates, parses, normalizes, and validates a configuration file. When
// path is empty the default location is tried; a missing file yields pure
// defaults. Returns the config, the resolved path, and whether a file was read.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		if err := toml.NewDecoder(file).Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := ExpandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return "", false, fmt.Errorf("config file not found: %s", expanded)
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	return defaultPath, false, nil
}

// EnsureDirectories creates the state and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.StateDir, c.Paths.LogDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// JournalPath returns the run journal database location.
func (c *Config) JournalPath() string {
	return filepath.Join(c.Paths.StateDir, "journal.db")
}

// LockDir returns the directory holding per-target run locks.
func (c *Config) LockDir() string {
	return filepath.Join(c.Paths.StateDir, "locks")
}

// WriteSample writes the annotated sample configuration to path, refusing to
// overwrite an existing file.
func WriteSample(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	return os.WriteFile(path, []byte(sampleConfig), 0o644)
}
