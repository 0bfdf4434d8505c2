package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// envPrefix prefixes every environment override, e.g. PENSIONCALC_LOG_LEVEL
const envPrefix = "PENSIONCALC"

// Settings are the runtime options shared by the command-line tools. They
// come from flags, PENSIONCALC_* environment variables and an optional
// settings file, in that order of precedence.
type Settings struct {
	Policy      string `mapstructure:"policy"`
	Format      string `mapstructure:"format"`
	LogLevel    string `mapstructure:"log_level"`
	LogFormat   string `mapstructure:"log_format"`
	Debug       bool   `mapstructure:"debug"`
	Compounding string `mapstructure:"compounding"`
}

// DefaultSettings returns the settings used when nothing is configured
func DefaultSettings() Settings {
	return Settings{
		Format:    "console",
		LogLevel:  "warn",
		LogFormat: "console",
	}
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	d := DefaultSettings()
	v.SetDefault("policy", d.Policy)
	v.SetDefault("format", d.Format)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)
	v.SetDefault("debug", d.Debug)
	v.SetDefault("compounding", d.Compounding)
	return v
}

// flagKeys maps command-line flag names onto settings keys
var flagKeys = map[string]string{
	"policy":      "policy",
	"format":      "format",
	"log-level":   "log_level",
	"log-format":  "log_format",
	"debug":       "debug",
	"compounding": "compounding",
}

// LoadSettings resolves settings from an optional YAML file and flags. Only
// flags that the user actually set override the file and the environment.
func LoadSettings(settingsPath string, flags *pflag.FlagSet) (*Settings, error) {
	v := newViper()

	if settingsPath != "" {
		v.SetConfigFile(settingsPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read settings file %q: %w", settingsPath, err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
			}
		}
	}

	return unmarshalSettings(v)
}

func unmarshalSettings(v *viper.Viper) (*Settings, error) {
	s := &Settings{}
	if err := v.Unmarshal(s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	s.Format = strings.ToLower(strings.TrimSpace(s.Format))
	s.LogLevel = strings.ToLower(strings.TrimSpace(s.LogLevel))
	if s.Debug {
		s.LogLevel = "debug"
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("settings validation failed: %w", err)
	}
	return s, nil
}

// Validate rejects unknown log levels and formats
func (s Settings) Validate() error {
	switch s.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level %q must be one of debug, info, warn, error", s.LogLevel)
	}
	switch s.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("log_format %q must be console or json", s.LogFormat)
	}
	if s.Format == "" {
		return fmt.Errorf("format must not be empty")
	}
	return nil
}
