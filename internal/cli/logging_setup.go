package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rshade/scrollkit/internal/config"
	"github.com/rshade/scrollkit/internal/logging"
)

// setupLogging configures logging from the loaded config (file, environment
// and flags already merged) and stores the logger and a trace ID in the
// command context.
func setupLogging(cmd *cobra.Command, a *app) logging.LogPathResult {
	loggingCfg := a.cfg.Logging

	debug, _ := cmd.Flags().GetBool("debug")
	if debug {
		loggingCfg.Level = "debug"
		loggingCfg.Format = logging.FormatConsole
		loggingCfg.File = ""
	}

	// Commands that draw on the terminal never log to it.
	if cmd.Annotations[annotationTerminal] != "" && loggingCfg.File == "" {
		loggingCfg.File = config.DefaultLogPath()
	}

	if loggingCfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(loggingCfg.File), 0o750); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: could not create log directory: %v\n", err)
		}
	}

	result := logging.NewLoggerWithPath(loggingCfg.ToLoggingConfig())
	a.logger = logging.ComponentLogger(result.Logger, "cli")

	if result.UsingFile {
		logging.PrintLogPathMessage(cmd.ErrOrStderr(), result.FilePath)
	} else if result.FallbackUsed {
		logging.PrintFallbackWarning(cmd.ErrOrStderr(), result.FallbackReason)
	}

	ctx := cmd.Context()
	traceID := logging.GetOrGenerateTraceID(ctx)
	ctx = logging.ContextWithTraceID(ctx, traceID)
	ctx = a.logger.With().Str("trace_id", traceID).Logger().WithContext(ctx)
	cmd.SetContext(ctx)

	a.logger.Info().Ctx(ctx).Str("command", cmd.Name()).Str("trace_id", traceID).Msg("command started")
	if a.cfgErr != nil {
		a.logger.Warn().Err(a.cfgErr).Msg("configuration not loaded, using defaults")
	}

	return result
}

// cleanupLogging closes the log file handle.
func cleanupLogging(cmd *cobra.Command, a *app) error {
	a.logger.Debug().Ctx(cmd.Context()).Str("command", cmd.Name()).Msg("command finished")
	if a.logResult != nil {
		return a.logResult.Close()
	}
	return nil
}
