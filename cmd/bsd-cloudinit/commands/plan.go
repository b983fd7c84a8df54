package commands

import (
	"github.com/spf13/cobra"

	"github.com/rrbarreto/bsd-cloudinit-pfsense/cmd/bsd-cloudinit/handlers"
	"github.com/rrbarreto/bsd-cloudinit-pfsense/internal/config"
)

// Plan returns the plan command.
func Plan() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "plan <user-data>",
		Short: "Show the order in which directives would run",
		Long: `Plan parses a cloud-config document and prints its directives in execution
order with their priority keys, without running anything.

Example:
  bsd-cloudinit plan ./user-data.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.Plan(cmd.Context(), cmd.OutOrStdout(), configPath, args[0])
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigPath, "Path to the configuration file")

	return cmd
}
