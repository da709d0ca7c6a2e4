package cli

import (
	"errors"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/scrollkit/internal/config"
	"github.com/rshade/scrollkit/internal/logging"
)

// Command annotations read by the root PersistentPreRunE.
const (
	// annotationConfigOptional lets a command run when the config file is
	// missing or invalid; the load error is kept in app.cfgErr.
	annotationConfigOptional = "scrollkit/config-optional"

	// annotationTerminal marks commands that own the terminal, so logs go to a file.
	annotationTerminal = "scrollkit/terminal"
)

// ErrNotTerminal is returned by interactive commands when stdout is not a terminal.
var ErrNotTerminal = errors.New("stdout is not a terminal")

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// app is the state shared by every command of one invocation.
type app struct {
	// configPath is the --config value, empty for the default location.
	configPath string

	cfg    *config.Config
	cfgErr error

	logger    zerolog.Logger
	logResult *logging.LogPathResult
}

// path returns the config file this invocation reads.
func (a *app) path() string {
	if a.configPath != "" {
		return a.configPath
	}
	return config.DefaultPath()
}

// NewRootCmd creates the root Cobra command for the scrollkit CLI.
// It loads configuration, wires up logging and tracing, and adds the demo,
// window, bench and config subcommands.
func NewRootCmd(ver string) *cobra.Command {
	a := &app{logger: zerolog.Nop()}

	cmd := &cobra.Command{
		Use:           "scrollkit",
		Short:         "Windowed list engine for terminal UIs",
		Long:          "scrollkit renders only the visible slice of large lists and recycles render slots while scrolling.",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.loadConfig(cmd); err != nil {
				return err
			}
			result := setupLogging(cmd, a)
			a.logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, a)
		},
	}

	defaults := config.Default()
	cmd.PersistentFlags().StringVar(&a.configPath, "config", "",
		"config file (default $SCROLLKIT_HOME/config.yaml or ~/.scrollkit/config.yaml)")
	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("log-level", defaults.Logging.Level, "log level (trace, debug, info, warn, error)")
	cmd.PersistentFlags().String("log-format", defaults.Logging.Format, "log format (console, json)")
	cmd.PersistentFlags().String("log-file", "", "write logs to this file instead of stderr")

	cmd.AddCommand(newDemoCmd(a), newWindowCmd(a), newBenchCmd(a), newConfigCmd(a))

	return cmd
}

// loadConfig reads the configuration with the command's flags bound. Commands
// annotated config-optional fall back to defaults and keep the error.
func (a *app) loadConfig(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath, cmd.Flags())
	if err == nil {
		a.cfg, a.cfgErr = cfg, nil
		return nil
	}
	if cmd.Annotations[annotationConfigOptional] == "" {
		return err
	}
	a.cfg, a.cfgErr = config.Default(), err
	return nil
}

const rootCmdExample = `  # Scroll 100,000 generated rows of varying height
  scrollkit demo --items 100000 --mode dynamic

  # Compute one window and print it as JSON
  scrollkit window --mode fixed --item-size 20 --items 10000 --extent 100 --offset 500 --output json

  # Compare recompute passes against scroll events
  scrollkit bench --bursts 10 --burst-size 200

  # Write the default configuration
  scrollkit config init`

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(newConfigInitCmd(a), newConfigShowCmd(a), newConfigValidateCmd(a))
	return cmd
}

