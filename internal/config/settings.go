package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Settings are per-user preferences. They come from the global config file,
// WTK_* environment variables and command line flags, in increasing priority.
type Settings struct {
	Verbose     bool          `mapstructure:"verbose"`
	NoColor     bool          `mapstructure:"no_color"`
	HookTimeout time.Duration `mapstructure:"hook_timeout"`
	Remote      string        `mapstructure:"remote"`
	Output      string        `mapstructure:"output"`
}

const (
	settingsName = "config"
	envPrefix    = "WTK"
)

// settingFlags maps setting keys to the flag names that override them.
var settingFlags = map[string]string{
	"verbose":  "verbose",
	"no_color": "no-color",
	"remote":   "remote",
	"output":   "output",
}

// GetGlobalConfigDir returns the directory holding the user settings file.
func GetGlobalConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "worktree-kit"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}

	return filepath.Join(home, ".config", "worktree-kit"), nil
}

// LoadSettings reads config.yaml from dir (if present) and layers environment
// variables and any matching flags from flags on top.
func LoadSettings(dir string, flags *pflag.FlagSet) (*Settings, error) {
	v := viper.New()

	v.SetConfigName(settingsName)
	v.SetConfigType("yaml")
	if dir != "" {
		v.AddConfigPath(dir)
	}

	v.SetDefault("verbose", false)
	v.SetDefault("no_color", false)
	v.SetDefault("hook_timeout", "5m")
	v.SetDefault("remote", "origin")
	v.SetDefault("output", "text")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for key, name := range settingFlags {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag %s: %w", name, err)
				}
			}
		}
	}

	if dir != "" {
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading settings: %w", err)
			}
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("parsing settings: %w", err)
	}

	if settings.HookTimeout <= 0 {
		return nil, fmt.Errorf("hook_timeout must be positive, got %s", settings.HookTimeout)
	}
	switch settings.Output {
	case "text", "json", "yaml":
	default:
		return nil, fmt.Errorf("output must be one of text, json, yaml, got %q", settings.Output)
	}

	return &settings, nil
}
