package commands

import (
	"github.com/spf13/cobra"

	"github.com/rrbarreto/bsd-cloudinit-pfsense/cmd/bsd-cloudinit/handlers"
	"github.com/rrbarreto/bsd-cloudinit-pfsense/internal/config"
)

// Run returns the run command.
func Run() *cobra.Command {
	var opts handlers.RunOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute the cloud-config directives of this instance",
		Long: `Run discovers the metadata service, fetches the cloud-config document and
executes its directives in priority order.

A directive that is unknown or fails is logged and skipped; the remaining
directives still run. An invalid document aborts before any directive runs.

Example:
  bsd-cloudinit run -c /usr/local/etc/bsd-cloudinit.yaml
  bsd-cloudinit run --user-data s3://bootstrap/fw01/user-data`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Run(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", config.DefaultConfigPath, "Path to the configuration file")
	cmd.Flags().StringVar(&opts.UserData, "user-data", "", "Read user data from a file or s3://bucket/key instead of the metadata service")

	return cmd
}
