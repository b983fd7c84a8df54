// Package commands defines the CLI command structure and flag bindings.
//
// Command execution is delegated to handler functions in the handlers
// package.
package commands

import "github.com/spf13/cobra"

// Root returns the root command for the bsd-cloudinit CLI.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "bsd-cloudinit",
		Short:         "First-boot provisioning for FreeBSD and pfSense images",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(Run())
	cmd.AddCommand(Plan())

	// Administrator side
	cmd.AddCommand(Keygen())
	cmd.AddCommand(DecryptPassword())

	cmd.AddCommand(Version())

	return cmd
}
