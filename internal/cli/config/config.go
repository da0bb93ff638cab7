// Package config loads projmeta CLI settings from projmeta.yaml, PROJMETA_*
// environment variables and command-line flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Output formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// EnvPrefix prefixes environment overrides, e.g. PROJMETA_MANIFEST.
const EnvPrefix = "PROJMETA"

// Config represents the projmeta CLI configuration.
type Config struct {
	// Manifest is the default manifest file for query commands.
	Manifest   string    `mapstructure:"manifest"`
	Format     string    `mapstructure:"format"`
	IgnoreCase bool      `mapstructure:"ignore_case"`
	Strict     bool      `mapstructure:"strict"`
	NoColor    bool      `mapstructure:"no_color"`
	Gen        GenConfig `mapstructure:"gen"`
}

// GenConfig configures the gen command.
type GenConfig struct {
	OutputDir string `mapstructure:"output_dir"`
	Package   string `mapstructure:"package"`
	Filename  string `mapstructure:"filename"`
}

// Binder binds command-line flags onto configuration keys.
type Binder func(v *viper.Viper) error

// Load reads configuration. An empty path searches projmeta.yaml in the
// working directory and tolerates its absence; an explicit path must exist.
func Load(path string, bind Binder) (*Config, error) {
	v := viper.New()

	v.SetDefault("manifest", "projmeta.manifest.yaml")
	v.SetDefault("format", FormatTable)
	v.SetDefault("ignore_case", false)
	v.SetDefault("strict", false)
	v.SetDefault("no_color", false)
	v.SetDefault("gen.output_dir", ".")
	v.SetDefault("gen.package", "")
	v.SetDefault("gen.filename", "projmeta_gen.go")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("projmeta")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if bind != nil {
		if err := bind(v); err != nil {
			return nil, fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	cfg.Format = strings.ToLower(strings.TrimSpace(cfg.Format))

	switch cfg.Format {
	case FormatTable, FormatJSON, FormatYAML:
		return nil
	default:
		return fmt.Errorf("format must be one of table, json, yaml, got: %s", cfg.Format)
	}
}
