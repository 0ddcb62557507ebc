// Package config provides configuration helpers for go-trackbed commands.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/teslashibe/go-trackbed/pkg/motion"
	"github.com/teslashibe/go-trackbed/pkg/source"
)

// Defaults used when neither flags nor environment say otherwise.
const (
	DefaultManifest     = "sources.txt"
	DefaultLogLevel     = "info"
	DefaultPollInterval = 5 * time.Millisecond
)

// ErrInvalid is returned when a tuning file fails validation.
var ErrInvalid = errors.New("config: invalid")

// Config is the tuning loaded from an optional YAML file.
type Config struct {
	LogLevel     string              `yaml:"log_level"`
	PollInterval time.Duration       `yaml:"poll_interval"` // How long each frame waits for a key
	Motion       motion.Config       `yaml:"motion"`
	Camera       source.CameraConfig `yaml:"camera"`
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		LogLevel:     DefaultLogLevel,
		PollInterval: DefaultPollInterval,
		Motion:       motion.DefaultConfig(),
		Camera:       source.DefaultCameraConfig(),
	}
}

// Load reads a YAML tuning file over the defaults.
// An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.Camera = cfg.Camera.Resolve()

	if errs := cfg.Validate(); len(errs) > 0 {
		return cfg, fmt.Errorf("%w: %s: %v", ErrInvalid, path, errs)
	}
	return cfg, nil
}

// Validate checks every section and returns all problems found.
func (c *Config) Validate() []string {
	var errs []string

	if c.PollInterval < time.Millisecond {
		errs = append(errs, "poll_interval must be at least 1ms")
	}
	for _, e := range c.Motion.Validate() {
		errs = append(errs, "motion: "+e)
	}
	for _, e := range c.Camera.Validate() {
		errs = append(errs, "camera: "+e)
	}

	return errs
}

// ManifestPath returns the manifest path from TESTBED_MANIFEST env var.
// Falls back to DefaultManifest if not set.
func ManifestPath() string {
	return envOr("TESTBED_MANIFEST", DefaultManifest)
}

// ConfigPath returns the tuning file path from TESTBED_CONFIG env var, or "".
func ConfigPath() string {
	return os.Getenv("TESTBED_CONFIG")
}

// LogLevel returns the log level from TESTBED_LOG_LEVEL env var.
// Falls back to the provided default if not set.
func LogLevel(defaultLevel string) string {
	return envOr("TESTBED_LOG_LEVEL", defaultLevel)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
