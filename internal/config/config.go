// Package config loads croqujs settings from an optional TOML file and
// CROQUJS_* environment variables.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "croqujs"
	// ConfigFileName is looked up in the working directory when no config
	// file is given explicitly.
	ConfigFileName = "croqujs.toml"
	// EnvPrefix prefixes environment overrides, e.g. CROQUJS_LIBRARY_ROOT.
	EnvPrefix = "CROQUJS"
	// LibraryDirName is the bundled library directory next to the executable.
	LibraryDirName = "lib"
)

var (
	// ErrInvalidConfig is wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrConfigNotFound is returned when an explicit config file is missing.
	ErrConfigNotFound = errors.New("config file not found")
)

// Config holds the settings shared by every command.
type Config struct {
	// LibraryRoot is searched for dependencies after the script's own
	// directory. Empty selects the lib directory next to the executable.
	LibraryRoot string `mapstructure:"library_root" toml:"library_root"`
	// RuntimeShim replaces the built-in runtime shim of exported pages.
	RuntimeShim string `mapstructure:"runtime_shim" toml:"runtime_shim"`
	// DefaultTitle titles pages exported from unsaved scripts.
	DefaultTitle string `mapstructure:"default_title" toml:"default_title"`
	// Parallel bounds how many scripts check resolves at once.
	Parallel int `mapstructure:"parallel" toml:"parallel"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"log_level" toml:"log_level"`
}

// InvalidConfigError reports a setting with an unusable value.
type InvalidConfigError struct {
	Field  string
	Value  any
	Reason string
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// LoadOptions selects where configuration is read from.
type LoadOptions struct {
	// ConfigFilePath is used exclusively when set and must exist.
	ConfigFilePath string
	// WorkDir is searched for ConfigFileName. Empty means the current
	// directory.
	WorkDir string
}

// DefaultConfig returns the settings used when nothing overrides them.
func DefaultConfig() *Config {
	return &Config{
		DefaultTitle: "Untitled",
		Parallel:     runtime.NumCPU(),
		LogLevel:     "warn",
	}
}

// Load builds the configuration from defaults, the config file and the
// environment, in increasing priority. It also returns the path of the config
// file that was read, or "" when none was.
func Load(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("library_root", defaults.LibraryRoot)
	v.SetDefault("runtime_shim", defaults.RuntimeShim)
	v.SetDefault("default_title", defaults.DefaultTitle)
	v.SetDefault("parallel", defaults.Parallel)
	v.SetDefault("log_level", defaults.LogLevel)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	resolvedPath, err := configFilePath(opts)
	if err != nil {
		return nil, "", err
	}

	if resolvedPath != "" {
		if err := loadTOMLIntoViper(v, resolvedPath); err != nil {
			return nil, "", err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}

	return &cfg, resolvedPath, nil
}

// Validate checks values that decoding alone cannot reject.
func (c *Config) Validate() error {
	if c.Parallel < 1 {
		return &InvalidConfigError{Field: "parallel", Value: c.Parallel, Reason: "must be at least 1"}
	}

	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return &InvalidConfigError{Field: "log_level", Value: c.LogLevel, Reason: "must be debug, info, warn or error"}
	}

	if strings.TrimSpace(c.DefaultTitle) == "" {
		return &InvalidConfigError{Field: "default_title", Value: c.DefaultTitle, Reason: "must not be blank"}
	}

	return nil
}

// Level returns the parsed log level. Validate must have succeeded.
func (c *Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.WarnLevel
	}

	return level
}

// ResolveLibraryRoot returns the configured library root, or the lib
// directory next to the running executable. It returns "" when neither is
// available.
func (c *Config) ResolveLibraryRoot() string {
	if c.LibraryRoot != "" {
		return c.LibraryRoot
	}

	exe, err := os.Executable()
	if err != nil {
		return ""
	}

	return filepath.Join(filepath.Dir(exe), LibraryDirName)
}

// Render encodes cfg as TOML.
func Render(cfg *Config) ([]byte, error) {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to render config: %w", err)
	}

	return data, nil
}

func configFilePath(opts LoadOptions) (string, error) {
	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return "", fmt.Errorf("%w: %s", ErrConfigNotFound, opts.ConfigFilePath)
		}

		return opts.ConfigFilePath, nil
	}

	local := filepath.Join(opts.WorkDir, ConfigFileName)
	if fileExists(local) {
		return local, nil
	}

	return "", nil
}

// loadTOMLIntoViper decodes a TOML file into a map and merges it into v, so
// defaults are kept for absent keys and the environment still wins.
func loadTOMLIntoViper(v *viper.Viper, path string) error {
	// #nosec G304 - the config path is chosen by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var configMap map[string]any
	if err := toml.Unmarshal(data, &configMap); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)

	return err == nil && !info.IsDir()
}
