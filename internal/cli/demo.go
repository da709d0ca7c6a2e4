package cli

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/scrollkit/internal/config"
	"github.com/rshade/scrollkit/internal/demo"
	"github.com/rshade/scrollkit/internal/tui"
)

// stdoutIsTerminal is replaced in tests.
//
//nolint:gochecknoglobals // Test seam for TTY detection.
var stdoutIsTerminal = func() bool { return isTerminal(os.Stdout) }

// newDemoCmd creates the interactive demo command.
func newDemoCmd(a *app) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Scroll a large generated list interactively",
		Long: `Opens a full-screen list of generated rows. Only the rows inside the
viewport plus the overscan buffer are rendered; the status line shows the
visible and rendered ranges, the slot pool and how many scroll events were
collapsed into recompute passes.

Keys: up/down (k/j), pgup/pgdown, home/end (g/G), mouse wheel, s to shuffle
the rows, q to quit. Logs go to a file because the list owns the terminal.`,
		Example: `  # Fixed-height rows
  scrollkit demo --mode fixed --items 1000000

  # Rows of varying height, reloading list settings when the config changes
  scrollkit demo --mode dynamic --max-lines 6 --watch`,
		Annotations: map[string]string{annotationTerminal: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDemo(cmd, a, watch)
		},
	}

	addListFlags(cmd.Flags())
	addDatasetFlags(cmd.Flags())
	cmd.Flags().BoolVar(&watch, "watch", false, "reload buffer, debounce and threshold when the config file changes")

	return cmd
}

func runDemo(cmd *cobra.Command, a *app, watch bool) error {
	if !stdoutIsTerminal() {
		return fmt.Errorf("demo needs an interactive terminal: %w", ErrNotTerminal)
	}

	model, err := newDemoModel(a.cfg, a)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	if watch {
		path := a.path()
		err = config.Watch(ctx, path, cmd.Flags(), func(cfg *config.Config, err error) {
			p.Send(tui.ConfigReloadMsg{Config: cfg, Err: err})
		})
		if err != nil {
			return fmt.Errorf("watching config: %w", err)
		}
		a.logger.Info().Ctx(ctx).Str("path", path).Msg("watching config")
	}

	if _, err = p.Run(); err != nil {
		return fmt.Errorf("failed to run interactive TUI: %w", err)
	}
	return nil
}

// newDemoModel generates the dataset and builds the demo screen from cfg.
func newDemoModel(cfg *config.Config, a *app) (*tui.DemoModel, error) {
	listCfg, err := cfg.List.ToVirtual()
	if err != nil {
		return nil, fmt.Errorf("invalid list configuration: %w", err)
	}

	maxLines := cfg.Demo.MaxLines
	if cfg.List.Mode == config.ModeFixed {
		// Fixed rows show their header plus as many body lines as fit.
		maxLines = max(cfg.List.ItemSize-1, 1)
	}

	rows := demo.Generate(demo.Options{Count: cfg.Demo.Items, Seed: cfg.Demo.Seed, MaxLines: maxLines})
	a.logger.Debug().Int("rows", len(rows)).Int64("seed", cfg.Demo.Seed).Msg("dataset generated")

	return tui.NewDemoModel(tui.DemoOptions{
		Rows:   rows,
		List:   listCfg,
		Seed:   cfg.Demo.Seed,
		Logger: a.logger,
	})
}
