package cli

import (
	"github.com/spf13/cobra"

	"github.com/rshade/scrollkit/internal/config"
)

// newConfigShowCmd prints the effective configuration: defaults, file,
// environment and flags merged.
func newConfigShowCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Example: `  # Show the configuration with an environment override applied
  SCROLLKIT_LIST_BUFFER=8 scrollkit config show`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := config.Marshal(a.cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	addListFlags(cmd.Flags())
	addDatasetFlags(cmd.Flags())

	return cmd
}
