package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/scrollkit/internal/config"
)

// newConfigValidateCmd creates the config validate command for validating configuration.
func newConfigValidateCmd(a *app) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validates the configuration file for syntax and semantic correctness.

This includes:
- YAML syntax
- Schema version (must satisfy ^1)
- List settings: mode, item size, estimate, buffer, prerender, debounce, threshold
- Demo dataset settings and log format`,
		Example: `  # Validate current configuration
  scrollkit config validate

  # Validate a specific file and show the effective values
  scrollkit config validate --config ./scrollkit.yaml --verbose`,
		Annotations: map[string]string{annotationConfigOptional: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.cfgErr != nil {
				return fmt.Errorf("configuration validation failed: %w", a.cfgErr)
			}
			cmd.Printf("Configuration is valid\n")
			if verbose {
				printVerboseDetails(cmd, a.path(), a.cfg)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")

	return cmd
}

// printVerboseDetails prints detailed configuration information.
func printVerboseDetails(cmd *cobra.Command, path string, cfg *config.Config) {
	cmd.Println()
	cmd.Println("Configuration details:")
	cmd.Printf("  File: %s\n", path)
	cmd.Printf("  Schema version: %s\n", cfg.SchemaVersion)
	cmd.Printf("  List mode: %s\n", cfg.List.Mode)
	if cfg.List.Mode == config.ModeFixed {
		cmd.Printf("  Item size: %d\n", cfg.List.ItemSize)
	} else {
		cmd.Printf("  Estimate: %d\n", cfg.List.Estimate)
	}
	cmd.Printf("  Buffer: %d\n", cfg.List.Buffer)
	cmd.Printf("  Prerender: %d\n", cfg.List.Prerender)
	cmd.Printf("  Debounce: %s\n", cfg.List.Debounce)
	cmd.Printf("  Threshold: %d\n", cfg.List.Threshold)
	cmd.Printf("  Demo items: %d\n", cfg.Demo.Items)
	cmd.Printf("  Logging level: %s\n", cfg.Logging.Level)
	cmd.Printf("  Log file: %s\n", cfg.Logging.File)
}
