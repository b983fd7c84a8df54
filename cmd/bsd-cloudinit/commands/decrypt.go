package commands

import (
	"github.com/spf13/cobra"

	"github.com/rrbarreto/bsd-cloudinit-pfsense/cmd/bsd-cloudinit/handlers"
)

// DecryptPassword returns the decrypt-password command.
func DecryptPassword() *cobra.Command {
	var keyPath string

	cmd := &cobra.Command{
		Use:   "decrypt-password [encrypted]",
		Short: "Decrypt a password returned to the metadata service",
		Long: `Decrypt-password recovers the administrator password posted by
set_user_password, using the private key of the instance's SSH key.

The base64 ciphertext is read from the argument or from stdin.

Example:
  bsd-cloudinit decrypt-password -i ~/.ssh/cloudinit_rsa < password.b64`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var encoded string
			if len(args) == 1 {
				encoded = args[0]
			}
			return handlers.DecryptPassword(cmd.InOrStdin(), cmd.OutOrStdout(), keyPath, encoded)
		},
	}

	cmd.Flags().StringVarP(&keyPath, "identity", "i", "", "Path to the RSA private key (required)")
	_ = cmd.MarkFlagRequired("identity")

	return cmd
}
