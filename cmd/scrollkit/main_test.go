package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rshade/scrollkit/internal/cli"
	"github.com/rshade/scrollkit/pkg/version"
)

func TestMainComponents(t *testing.T) {
	t.Run("version available", func(t *testing.T) {
		assert.NotEmpty(t, version.GetVersion())
	})

	t.Run("cli root command", func(t *testing.T) {
		root := cli.NewRootCmd(version.GetVersion())
		assert.NotNil(t, root)
		assert.Equal(t, "scrollkit", root.Use)
		assert.Equal(t, version.GetVersion(), root.Version)
	})
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "not a terminal",
			err:  cli.ErrNotTerminal,
			want: exitNotTerminal,
		},
		{
			name: "wrapped not a terminal",
			err:  fmt.Errorf("demo needs an interactive terminal: %w", cli.ErrNotTerminal),
			want: exitNotTerminal,
		},
		{
			name: "generic error",
			err:  errors.New("boom"),
			want: exitError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}
