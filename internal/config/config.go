// Package config loads the generator configuration from strata.yaml,
// the environment, and command-line flags, in increasing priority.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/syssam/strata/schema/field"
)

// Config file names, checked in order.
const (
	FileName    = "strata.yaml"
	FileNameAlt = "strata.yml"
)

// Datetime serialization modes.
const (
	DatetimeUnixMillis = "unix-millis"
	DatetimeText       = "text"
)

// Defaults applied before any other source.
const (
	DefaultPackage = "model"
	DefaultOutDir  = "model"
	DefaultSchema  = "schema/*.sql"
)

// Config carries one generation run's settings.
type Config struct {
	// Package is the package name of the generated files.
	Package string `koanf:"package"`
	// OutDir is the directory the generated files are written to.
	OutDir string `koanf:"out_dir"`
	// Schema is the glob matching the definition files.
	Schema string `koanf:"schema"`
	// Datetime selects how time values are bound: unix-millis or text.
	Datetime string `koanf:"datetime"`
	// Verbose enables debug logging.
	Verbose bool `koanf:"verbose"`
}

// Serializer returns the value serializer selected by the datetime
// mode.
func (c *Config) Serializer() field.ValueSerializer {
	if c.Datetime == DatetimeText {
		return field.TextTimeSerializer{}
	}
	return field.UnixMilliSerializer{}
}

// findConfigFile returns the config file to use: the explicit path
// when given, otherwise the first of strata.yaml and strata.yml that
// exists.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{FileName, FileNameAlt} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// Load builds the configuration from defaults, the config file, the
// environment (STRATA_ prefix), and explicitly set flags, each layer
// overriding the one before it.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]any{
		"package":  DefaultPackage,
		"out_dir":  DefaultOutDir,
		"schema":   DefaultSchema,
		"datetime": DatetimeUnixMillis,
		"verbose":  false,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path := findConfigFile(cfgFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("STRATA_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "STRATA_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Datetime != DatetimeUnixMillis && cfg.Datetime != DatetimeText {
		return nil, fmt.Errorf("invalid datetime mode %q: want %s or %s",
			cfg.Datetime, DatetimeUnixMillis, DatetimeText)
	}
	return &cfg, nil
}
