package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Environment variables.
const (
	// EnvPrefix prefixes every override, e.g. SCROLLKIT_LIST_BUFFER.
	EnvPrefix = "SCROLLKIT"

	// EnvHome overrides the configuration directory.
	EnvHome = "SCROLLKIT_HOME"

	configFileName = "config.yaml"
	logFileName    = "scrollkit.log"
)

// FlagKeys maps configuration keys to the CLI flags that override them.
//
//nolint:gochecknoglobals // Read-only lookup table.
var FlagKeys = map[string]string{
	"list.mode":      "mode",
	"list.item_size": "item-size",
	"list.estimate":  "estimate",
	"list.buffer":    "buffer",
	"list.prerender": "prerender",
	"list.debounce":  "debounce",
	"list.threshold": "threshold",
	"demo.items":     "items",
	"demo.seed":      "seed",
	"demo.max_lines": "max-lines",
	"logging.level":  "log-level",
	"logging.format": "log-format",
	"logging.file":   "log-file",
}

// HomeDir returns the scrollkit configuration directory: $SCROLLKIT_HOME, or
// ~/.scrollkit when unset.
func HomeDir() string {
	if dir := os.Getenv(EnvHome); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".scrollkit"
	}
	return filepath.Join(home, ".scrollkit")
}

// DefaultPath returns the default configuration file path.
func DefaultPath() string {
	return filepath.Join(HomeDir(), configFileName)
}

// DefaultLogPath is where the interactive demo logs when no log file is
// configured, since it owns the terminal.
func DefaultLogPath() string {
	return filepath.Join(HomeDir(), "logs", logFileName)
}

// Load reads the configuration with the precedence defaults < file < env < flags.
//
// An empty path means DefaultPath, which may be missing. An explicit path must
// exist. flags may be nil; only flags listed in FlagKeys and present in the set
// are bound, and only changed flags override.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		missing := errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
		if explicit || !missing {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	if flags != nil {
		for key, name := range FlagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag --%s: %w", name, err)
				}
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// setDefaults registers every key so env overrides and Unmarshal see them.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("schema_version", d.SchemaVersion)
	v.SetDefault("list.mode", d.List.Mode)
	v.SetDefault("list.item_size", d.List.ItemSize)
	v.SetDefault("list.estimate", d.List.Estimate)
	v.SetDefault("list.buffer", d.List.Buffer)
	v.SetDefault("list.prerender", d.List.Prerender)
	v.SetDefault("list.debounce", d.List.Debounce)
	v.SetDefault("list.threshold", d.List.Threshold)
	v.SetDefault("demo.items", d.Demo.Items)
	v.SetDefault("demo.seed", d.Demo.Seed)
	v.SetDefault("demo.max_lines", d.Demo.MaxLines)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.file", d.Logging.File)
}

// Marshal encodes cfg as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return data, nil
}

// Save writes cfg to path, creating the directory if needed. Existing files
// are only replaced when force is true.
func Save(cfg *Config, path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("configuration file already exists at %s (use --force to overwrite)", path)
	}

	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	if err = os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	// Write to temporary file first, then rename for atomicity
	tmp := path + ".tmp"
	if err = os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	if err = os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replacing config: %w", err)
	}
	return nil
}
