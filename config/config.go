package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Executor names accepted by the executor setting.
const (
	ExecutorProcess = "process"
	ExecutorThread  = "thread"
)

var validate = validator.New()

// Config holds the run settings that may come from a YAML file. Command-line
// flags override any value set here.
type Config struct {
	Size       string `yaml:"size" validate:"omitempty,oneof=small medium large"`
	Workers    int    `yaml:"workers" validate:"gte=0"`
	Executor   string `yaml:"executor" validate:"omitempty,oneof=process thread"`
	TmpDir     string `yaml:"tmp_dir"`
	JSON       bool   `yaml:"json"`
	NoProgress bool   `yaml:"no_progress"`
	LogLevel   string `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`
}

// Default returns the settings used when no file or flag sets a value.
func Default() Config {
	return Config{
		Size:     "medium",
		Executor: ExecutorProcess,
		LogLevel: "info",
	}
}

// Load reads the YAML file at path on top of Default and validates the
// result.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks every field against its allowed values.
func (c Config) Validate() error {
	return validate.Struct(c)
}

// ParseLogLevel converts a level name into a slog.Level.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}
