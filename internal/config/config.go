package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// FileName is the config file looked up in the repository directory
const FileName = ".gitkit.yaml"

// EnvPrefix prefixes environment overrides, e.g. GITKIT_GIT_TIMEOUT
const EnvPrefix = "GITKIT"

// Config holds all gitkit configuration
type Config struct {
	Git     GitConfig     `mapstructure:"git"`
	Log     LogConfig     `mapstructure:"log"`
	Tracing TracingConfig `mapstructure:"tracing"`
	Output  OutputConfig  `mapstructure:"output"`
}

// GitConfig controls how the git executable is found and run
type GitConfig struct {
	Binary          string        `mapstructure:"binary"`
	Timeout         time.Duration `mapstructure:"timeout"`
	PrimaryBranch   string        `mapstructure:"primary_branch"`
	LocatorCacheTTL time.Duration `mapstructure:"locator_cache_ttl"`
}

// LogConfig controls the optional rotating log file
type LogConfig struct {
	File       string `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
}

// TracingConfig controls OpenTelemetry spans around git invocations
type TracingConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Exporter string `mapstructure:"exporter"`
	Endpoint string `mapstructure:"endpoint"`
}

// OutputConfig controls how results are printed
type OutputConfig struct {
	Format string `mapstructure:"format"`
	Color  string `mapstructure:"color"`
}

// Load reads configuration for the repository at dir. If configFile is set
// it is read instead of searching for FileName. A missing file is not an
// error; defaults and environment overrides still apply.
func Load(dir, configFile string) (*Config, error) {
	v := newViper()

	if configFile != "" {
		if _, err := os.Stat(configFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed to read config %s: %w", configFile, err)
			}
			return decode(v)
		}
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", configFile, err)
		}
		return decode(v)
	}

	v.SetConfigName(strings.TrimSuffix(FileName, ".yaml"))
	v.SetConfigType("yaml")
	if dir != "" {
		v.AddConfigPath(dir)
	}
	if userDir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(userDir, "gitkit"))
	}

	// Read config file (ignore not found errors)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}
	return decode(v)
}

// Default returns the configuration used when nothing is configured
func Default() *Config {
	cfg, err := decode(newViper())
	if err != nil {
		// defaults always decode
		panic(err)
	}
	return cfg
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults sets all default values for configuration
func setDefaults(v *viper.Viper) {
	v.SetDefault("git.binary", DefaultGitBinary)
	v.SetDefault("git.timeout", DefaultGitTimeout)
	v.SetDefault("git.primary_branch", DefaultPrimaryBranch)
	v.SetDefault("git.locator_cache_ttl", DefaultLocatorCacheTTL)

	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size", DefaultLogMaxSize)
	v.SetDefault("log.max_backups", DefaultLogMaxBackups)
	v.SetDefault("log.max_age", DefaultLogMaxAge)

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.exporter", ExporterStdout)
	v.SetDefault("tracing.endpoint", DefaultTracingEndpoint)

	v.SetDefault("output.format", FormatText)
	v.SetDefault("output.color", ColorAuto)
}

// Validate rejects values no component can act on
func (c *Config) Validate() error {
	if c.Git.Binary == "" {
		return fmt.Errorf("git.binary must not be empty")
	}
	if c.Git.Timeout < 0 {
		return fmt.Errorf("git.timeout must not be negative, got %s", c.Git.Timeout)
	}
	if c.Git.PrimaryBranch == "" {
		return fmt.Errorf("git.primary_branch must not be empty")
	}
	if c.Log.MaxSize <= 0 || c.Log.MaxBackups < 0 || c.Log.MaxAge <= 0 {
		return fmt.Errorf("log rotation settings must be positive")
	}
	if !slices.Contains([]string{ExporterStdout, ExporterOTLP}, c.Tracing.Exporter) {
		return fmt.Errorf("tracing.exporter must be %q or %q, got %q", ExporterStdout, ExporterOTLP, c.Tracing.Exporter)
	}
	if !slices.Contains([]string{FormatText, FormatJSON, FormatYAML}, c.Output.Format) {
		return fmt.Errorf("output.format must be text, json or yaml, got %q", c.Output.Format)
	}
	if !slices.Contains([]string{ColorAuto, ColorAlways, ColorNever}, c.Output.Color) {
		return fmt.Errorf("output.color must be auto, always or never, got %q", c.Output.Color)
	}
	return nil
}
