package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/pelletier/go-toml/v2"

	"github.com/dendrascience/extsort/internal/logger"
)

// Config holds the settings of one extsort run.
type Config struct {
	// Workers is the number of copies allowed in flight.
	Workers int `toml:"workers"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`
	// Strict turns per-file failures into a non-zero exit status.
	Strict bool `toml:"strict"`
	// Lock guards the destination against a concurrent run.
	Lock bool `toml:"lock"`
	// LockDir holds lock files; empty means the system temp directory.
	LockDir string `toml:"lock_dir"`
	// Report, when set, is where the JSON run report is written.
	Report string `toml:"report"`
	// Summary prints a per-bucket table after the run.
	Summary bool `toml:"summary"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Workers:  runtime.NumCPU(),
		LogLevel: "info",
		Strict:   true,
		Lock:     true,
	}
}

// Load reads the TOML file at path over the defaults and validates the
// result. Unknown keys are rejected so typos do not pass silently.
func Load(path string) (Config, error) {
	cfg := Default()

	file, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	decoder := toml.NewDecoder(file)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("parse config: %s", strict.String())
		}
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the settings are usable.
func (c Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if !logger.ValidLevel(c.LogLevel) {
		return fmt.Errorf("log_level must be one of debug, info, warn, error, got %q", c.LogLevel)
	}
	return nil
}
