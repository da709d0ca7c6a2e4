package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/scrollkit/internal/config"
)

// newConfigInitCmd creates the config init command for initializing configuration.
func newConfigInitCmd(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Long: `Creates a new configuration file with default values at --config, or at
$SCROLLKIT_HOME/config.yaml (default ~/.scrollkit/config.yaml).`,
		Example: `  # Create the default configuration
  scrollkit config init

  # Create configuration, overwriting existing
  scrollkit config init --force`,
		Annotations: map[string]string{annotationConfigOptional: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := a.path()
			if err := config.Save(config.Default(), path, force); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}
			a.logger.Info().Ctx(cmd.Context()).Str("path", path).Msg("configuration initialized")

			cmd.Printf("Configuration initialized successfully\n")
			cmd.Printf("Configuration file: %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")

	return cmd
}
