package config

import (
	"fmt"
	"os"

	"github.com/compozy/conventional-release/internal/domain"
	"github.com/spf13/viper"
)

// DefaultConfigFile is the configuration file consulted when no
// --config-file flag is given.
const DefaultConfigFile = ".release-config.toml"

// Config is the full file-backed configuration.
type Config struct {
	Version VersionConfig `mapstructure:"version"`
}

// VersionConfig controls version resolution and tag composition.
type VersionConfig struct {
	InitialVersion string     `mapstructure:"initial_version"`
	TagPrefix      string     `mapstructure:"tag_prefix"`
	TagSuffix      string     `mapstructure:"tag_suffix"`
	Files          []FileRule `mapstructure:"files"`
}

// FileRule is one file-content substitution applied during a release.
// Marker is a literal substring to replace; Template, when present, contains
// the placeholder {version}, otherwise the version string replaces the
// marker directly.
type FileRule struct {
	Path     string `mapstructure:"path"`
	Marker   string `mapstructure:"marker"`
	Template string `mapstructure:"template"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Version: VersionConfig{
			InitialVersion: "0.1.0",
			TagPrefix:      "v",
		},
	}
}

// Load reads the TOML configuration from path. A missing file is not an
// error; defaults apply. A present but malformed file is a ConfigError.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	defaults := DefaultConfig()
	v.SetDefault("version.initial_version", defaults.Version.InitialVersion)
	v.SetDefault("version.tag_prefix", defaults.Version.TagPrefix)
	v.SetDefault("version.tag_suffix", defaults.Version.TagSuffix)
	if err := v.ReadInConfig(); err != nil {
		return nil, &domain.ConfigError{Path: path, Err: err}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, &domain.ConfigError{Path: path, Err: err}
	}
	if err := cfg.Validate(); err != nil {
		return nil, &domain.ConfigError{Path: path, Err: err}
	}
	return &cfg, nil
}

// Validate checks invariants the rest of the system relies on.
func (c *Config) Validate() error {
	if c.Version.InitialVersion == "" {
		return fmt.Errorf("version.initial_version cannot be empty")
	}
	if _, err := domain.NewVersion(c.Version.InitialVersion); err != nil {
		return fmt.Errorf("invalid version.initial_version %q: %w", c.Version.InitialVersion, err)
	}
	for i, rule := range c.Version.Files {
		if rule.Path == "" {
			return fmt.Errorf("version.files[%d]: path cannot be empty", i)
		}
		if rule.Marker == "" {
			return fmt.Errorf("version.files[%d]: marker cannot be empty", i)
		}
	}
	return nil
}

// InitialVersion returns the configured initial version as a parsed value.
// Callers run Validate (via Load) first, so this cannot fail afterwards.
func (c *Config) InitialVersion() (*domain.Version, error) {
	return domain.NewVersion(c.Version.InitialVersion)
}
