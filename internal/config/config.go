package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/semver/v3"

	"github.com/rshade/scrollkit/internal/virtual"
)

// CurrentSchemaVersion is written by `config init` and accepted by the loader.
const CurrentSchemaVersion = "1.0.0"

// supportedSchema is the semver constraint a config file must satisfy.
const supportedSchema = "^1"

// Size modes accepted in list.mode.
const (
	ModeFixed   = "fixed"
	ModeDynamic = "dynamic"
)

// Demo defaults.
const (
	DefaultDemoItems    = 10_000
	DefaultDemoMaxLines = 4
	DefaultItemSize     = 1
)

// Configuration errors.
var (
	ErrUnsupportedSchema = errors.New("unsupported config schema version")
	ErrInvalidMode       = errors.New("list mode must be fixed or dynamic")
	ErrInvalidDemo       = errors.New("invalid demo configuration")
	ErrInvalidLogFormat  = errors.New("log format must be console or json")
)

// Config is the scrollkit configuration file.
type Config struct {
	SchemaVersion string        `yaml:"schema_version" mapstructure:"schema_version"`
	List          ListConfig    `yaml:"list"           mapstructure:"list"`
	Demo          DemoConfig    `yaml:"demo"           mapstructure:"demo"`
	Logging       LoggingConfig `yaml:"logging"        mapstructure:"logging"`
}

// ListConfig configures the windowed list engine.
type ListConfig struct {
	// Mode is "fixed" or "dynamic".
	Mode string `yaml:"mode" mapstructure:"mode"`

	// ItemSize is the size of every item in fixed mode.
	ItemSize int `yaml:"item_size" mapstructure:"item_size"`

	// Estimate is the size of unmeasured items in dynamic mode.
	Estimate int `yaml:"estimate" mapstructure:"estimate"`

	// Buffer is the overscan in items.
	Buffer int `yaml:"buffer" mapstructure:"buffer"`

	// Prerender is the number of items rendered before the viewport is measured.
	Prerender int `yaml:"prerender" mapstructure:"prerender"`

	// Debounce is the quiet period before a full pass, e.g. "16ms".
	Debounce time.Duration `yaml:"debounce" mapstructure:"debounce"`

	// Threshold forces a pass once scrolling moved this many rows.
	Threshold int `yaml:"threshold" mapstructure:"threshold"`
}

// DemoConfig configures the generated demo dataset.
type DemoConfig struct {
	// Items is the number of generated rows.
	Items int `yaml:"items" mapstructure:"items"`

	// Seed makes the dataset reproducible.
	Seed int64 `yaml:"seed" mapstructure:"seed"`

	// MaxLines bounds the number of text lines per item in dynamic mode.
	MaxLines int `yaml:"max_lines" mapstructure:"max_lines"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		SchemaVersion: CurrentSchemaVersion,
		List: ListConfig{
			Mode:      ModeDynamic,
			ItemSize:  DefaultItemSize,
			Estimate:  virtual.DefaultEstimate,
			Buffer:    virtual.DefaultBuffer,
			Debounce:  virtual.DefaultDebounce,
			Threshold: 0,
		},
		Demo: DemoConfig{
			Items:    DefaultDemoItems,
			Seed:     1,
			MaxLines: DefaultDemoMaxLines,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// ToVirtual converts the list section to an engine configuration.
func (l ListConfig) ToVirtual() (virtual.Config, error) {
	var mode virtual.SizeMode
	switch l.Mode {
	case ModeFixed:
		mode = virtual.Fixed{ItemSize: l.ItemSize}
	case ModeDynamic, "":
		mode = virtual.Dynamic{Estimate: l.Estimate}
	default:
		return virtual.Config{}, fmt.Errorf("%w, got %q", ErrInvalidMode, l.Mode)
	}

	cfg := virtual.Config{
		Mode:      mode,
		Buffer:    l.Buffer,
		Prerender: l.Prerender,
		Debounce:  l.Debounce,
		Threshold: l.Threshold,
	}
	if err := cfg.Validate(); err != nil {
		return virtual.Config{}, err
	}
	return cfg, nil
}

// MarshalYAML writes the debounce in its string form instead of nanoseconds.
func (l ListConfig) MarshalYAML() (interface{}, error) {
	return struct {
		Mode      string `yaml:"mode"`
		ItemSize  int    `yaml:"item_size"`
		Estimate  int    `yaml:"estimate"`
		Buffer    int    `yaml:"buffer"`
		Prerender int    `yaml:"prerender"`
		Debounce  string `yaml:"debounce"`
		Threshold int    `yaml:"threshold"`
	}{
		Mode:      l.Mode,
		ItemSize:  l.ItemSize,
		Estimate:  l.Estimate,
		Buffer:    l.Buffer,
		Prerender: l.Prerender,
		Debounce:  l.Debounce.String(),
		Threshold: l.Threshold,
	}, nil
}

// Validate checks the whole configuration.
func (c *Config) Validate() error {
	if err := checkSchema(c.SchemaVersion); err != nil {
		return err
	}
	if _, err := c.List.ToVirtual(); err != nil {
		return fmt.Errorf("list: %w", err)
	}
	if c.Demo.Items < 0 {
		return fmt.Errorf("%w: items must be >= 0, got %d", ErrInvalidDemo, c.Demo.Items)
	}
	if c.Demo.MaxLines < 1 {
		return fmt.Errorf("%w: max_lines must be >= 1, got %d", ErrInvalidDemo, c.Demo.MaxLines)
	}
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("%w, got %q", ErrInvalidLogFormat, c.Logging.Format)
	}
	return nil
}

// checkSchema accepts an empty version (pre-versioned files) or any 1.x version.
func checkSchema(version string) error {
	if version == "" {
		return nil
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrUnsupportedSchema, version, err)
	}
	constraint, err := semver.NewConstraint(supportedSchema)
	if err != nil {
		return fmt.Errorf("parsing schema constraint: %w", err)
	}
	if !constraint.Check(v) {
		return fmt.Errorf("%w: %s does not satisfy %s", ErrUnsupportedSchema, v, supportedSchema)
	}
	return nil
}
