package virtual

import (
	"errors"
	"fmt"
	"time"
)

// Default engine configuration.
const (
	// DefaultBuffer is the number of overscan items rendered on each side of the viewport.
	DefaultBuffer = 2

	// DefaultDebounce is the quiet period after the last scroll event before a full pass.
	DefaultDebounce = 16 * time.Millisecond

	// DefaultEstimate is the size assumed for dynamic items that have not been measured.
	DefaultEstimate = 1
)

// ErrInvalidConfig is the sentinel wrapped by every ConfigError.
var ErrInvalidConfig = errors.New("invalid list configuration")

// ConfigError reports a configuration field that failed validation.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrInvalidConfig, e.Field, e.Reason)
}

// Unwrap lets callers match ConfigError with errors.Is(err, ErrInvalidConfig).
func (e *ConfigError) Unwrap() error { return ErrInvalidConfig }

// SizeMode selects how item sizes are known. It is either Fixed or Dynamic and is
// chosen once, at configuration time.
type SizeMode interface {
	validate() error
	String() string
}

// Fixed gives every item the same size. Offsets are computed by multiplication
// and measurements are ignored.
type Fixed struct {
	ItemSize int
}

// Dynamic sizes items individually. Items with an explicit size use it, the rest
// start at Estimate until SetSize records a measurement.
type Dynamic struct {
	Estimate int
}

func (f Fixed) validate() error {
	if f.ItemSize <= 0 {
		return &ConfigError{Field: "item_size", Reason: fmt.Sprintf("must be > 0 in fixed mode, got %d", f.ItemSize)}
	}
	return nil
}

func (f Fixed) String() string { return fmt.Sprintf("fixed(%d)", f.ItemSize) }

func (d Dynamic) validate() error {
	if d.Estimate <= 0 {
		return &ConfigError{Field: "estimate", Reason: fmt.Sprintf("must be > 0 in dynamic mode, got %d", d.Estimate)}
	}
	return nil
}

func (d Dynamic) String() string { return fmt.Sprintf("dynamic(~%d)", d.Estimate) }

// Config holds the engine settings.
type Config struct {
	// Mode is Fixed or Dynamic.
	Mode SizeMode

	// Buffer is the overscan, in items, added to both ends of the visible range.
	Buffer int

	// Prerender is the number of leading items rendered while the viewport has
	// not been measured yet. Zero renders nothing until the first resize.
	Prerender int

	// Debounce delays full recompute passes until scrolling has been quiet this long.
	// Zero recomputes on every event.
	Debounce time.Duration

	// Threshold forces an immediate pass once the offset has moved this far from
	// the last computed offset. Zero disables the forced path.
	Threshold int
}

// DefaultConfig returns a dynamic-mode configuration with default buffer and debounce.
func DefaultConfig() Config {
	return Config{
		Mode:     Dynamic{Estimate: DefaultEstimate},
		Buffer:   DefaultBuffer,
		Debounce: DefaultDebounce,
	}
}

// Validate reports the first malformed field as a *ConfigError.
func (c Config) Validate() error {
	if c.Mode == nil {
		return &ConfigError{Field: "mode", Reason: "must be set"}
	}
	if err := c.Mode.validate(); err != nil {
		return err
	}
	if c.Buffer < 0 {
		return &ConfigError{Field: "buffer", Reason: fmt.Sprintf("must be >= 0, got %d", c.Buffer)}
	}
	if c.Prerender < 0 {
		return &ConfigError{Field: "prerender", Reason: fmt.Sprintf("must be >= 0, got %d", c.Prerender)}
	}
	if c.Debounce < 0 {
		return &ConfigError{Field: "debounce", Reason: fmt.Sprintf("must be >= 0, got %s", c.Debounce)}
	}
	if c.Threshold < 0 {
		return &ConfigError{Field: "threshold", Reason: fmt.Sprintf("must be >= 0, got %d", c.Threshold)}
	}
	return nil
}
