package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dhamidi/sfprofile/format"
)

// DefaultPath is read by the command line when --config is not given.
const DefaultPath = ".sfprofile.yaml"

const (
	DefaultFormat        = "text"
	DefaultWatchDebounce = 100 * time.Millisecond
)

type Config struct {
	// Format names the output encoding: text, line, json, yaml or dump.
	Format string `yaml:"format"`

	// Verbosity is passed to commonlog; 0 keeps warnings and errors only.
	Verbosity int `yaml:"verbosity"`

	// LogFile receives log output instead of stderr when set.
	LogFile string `yaml:"log_file"`

	Watch WatchConfig `yaml:"watch"`
}

type WatchConfig struct {
	// Debounce is the quiet period after a file event before re-parsing.
	Debounce time.Duration `yaml:"debounce"`
}

func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

func ApplyDefaults(cfg *Config) {
	if cfg.Format == "" {
		cfg.Format = DefaultFormat
	}
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = DefaultWatchDebounce
	}
}

// Load reads a YAML configuration file, applies defaults and environment
// overrides, and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse configuration file %q: %w", path, err)
	}

	return finish(&cfg)
}

// LoadOptional behaves like Load but falls back to the defaults when path
// does not exist.
func LoadOptional(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return finish(&Config{})
	}
	return cfg, err
}

func finish(cfg *Config) (*Config, error) {
	ApplyDefaults(cfg)
	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides configuration from SFPROFILE_FORMAT,
// SFPROFILE_VERBOSITY, SFPROFILE_LOG_FILE and SFPROFILE_WATCH_DEBOUNCE.
func ApplyEnv(cfg *Config) error {
	if val := os.Getenv("SFPROFILE_FORMAT"); val != "" {
		cfg.Format = val
	}
	if val := os.Getenv("SFPROFILE_VERBOSITY"); val != "" {
		n, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("SFPROFILE_VERBOSITY: %w", err)
		}
		cfg.Verbosity = n
	}
	if val := os.Getenv("SFPROFILE_LOG_FILE"); val != "" {
		cfg.LogFile = val
	}
	if val := os.Getenv("SFPROFILE_WATCH_DEBOUNCE"); val != "" {
		d, err := time.ParseDuration(val)
		if err != nil {
			return fmt.Errorf("SFPROFILE_WATCH_DEBOUNCE: %w", err)
		}
		cfg.Watch.Debounce = d
	}
	return nil
}

type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type ValidationError struct {
	Errors []FieldError
}

func (e ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "configuration validation failed with %d errors:\n", len(e.Errors))
	for _, err := range e.Errors {
		fmt.Fprintf(&sb, "  - %s\n", err.Error())
	}
	return sb.String()
}

func Validate(cfg *Config) error {
	var errs []FieldError

	if !slices.Contains(format.Names, cfg.Format) {
		errs = append(errs, FieldError{
			Field:   "format",
			Message: fmt.Sprintf("unknown format %q (expected one of %s)", cfg.Format, strings.Join(format.Names, ", ")),
		})
	}
	if cfg.Verbosity < 0 {
		errs = append(errs, FieldError{Field: "verbosity", Message: "must not be negative"})
	}
	if cfg.Watch.Debounce < 0 {
		errs = append(errs, FieldError{Field: "watch.debounce", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}
