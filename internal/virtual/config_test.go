package virtual_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/scrollkit/internal/virtual"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		cfg       virtual.Config
		wantField string
	}{
		{
			name: "default config is valid",
			cfg:  virtual.DefaultConfig(),
		},
		{
			name: "fixed mode with positive size",
			cfg:  virtual.Config{Mode: virtual.Fixed{ItemSize: 20}, Buffer: 2},
		},
		{
			name:      "missing mode",
			cfg:       virtual.Config{Buffer: 2},
			wantField: "mode",
		},
		{
			name:      "zero fixed size",
			cfg:       virtual.Config{Mode: virtual.Fixed{ItemSize: 0}},
			wantField: "item_size",
		},
		{
			name:      "negative fixed size",
			cfg:       virtual.Config{Mode: virtual.Fixed{ItemSize: -4}},
			wantField: "item_size",
		},
		{
			name:      "zero dynamic estimate",
			cfg:       virtual.Config{Mode: virtual.Dynamic{}},
			wantField: "estimate",
		},
		{
			name:      "negative buffer",
			cfg:       virtual.Config{Mode: virtual.Fixed{ItemSize: 1}, Buffer: -1},
			wantField: "buffer",
		},
		{
			name:      "negative prerender",
			cfg:       virtual.Config{Mode: virtual.Fixed{ItemSize: 1}, Prerender: -1},
			wantField: "prerender",
		},
		{
			name:      "negative debounce",
			cfg:       virtual.Config{Mode: virtual.Fixed{ItemSize: 1}, Debounce: -time.Millisecond},
			wantField: "debounce",
		},
		{
			name:      "negative threshold",
			cfg:       virtual.Config{Mode: virtual.Fixed{ItemSize: 1}, Threshold: -1},
			wantField: "threshold",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, errors.Is(err, virtual.ErrInvalidConfig))

			var cfgErr *virtual.ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.wantField, cfgErr.Field)
		})
	}
}

func TestNewList_FailsFastOnBadConfig(t *testing.T) {
	list, err := virtual.NewList(virtual.Config{Mode: virtual.Fixed{ItemSize: 0}}, makeItems(3, 0))

	require.ErrorIs(t, err, virtual.ErrInvalidConfig)
	assert.Nil(t, list)
}

func TestSizeMode_String(t *testing.T) {
	assert.Equal(t, "fixed(20)", virtual.Fixed{ItemSize: 20}.String())
	assert.Equal(t, "dynamic(~3)", virtual.Dynamic{Estimate: 3}.String())
}
