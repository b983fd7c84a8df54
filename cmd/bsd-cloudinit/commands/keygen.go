package commands

import (
	"github.com/spf13/cobra"

	"github.com/rrbarreto/bsd-cloudinit-pfsense/cmd/bsd-cloudinit/handlers"
	"github.com/rrbarreto/bsd-cloudinit-pfsense/internal/util/keygen"
)

// Keygen returns the keygen command.
func Keygen() *cobra.Command {
	var (
		output  string
		bits    int
		comment string
	)

	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate an RSA key pair for password encryption",
		Long: `Keygen writes an RSA private key and its OpenSSH public key.

Register the public key as the instance's SSH key; the password provisioned
by set_user_password is encrypted with it and can be recovered with
decrypt-password.

Example:
  bsd-cloudinit keygen -o ~/.ssh/cloudinit_rsa`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Keygen(cmd.OutOrStdout(), output, bits, comment)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "cloudinit_rsa", "Path of the private key; the public key gets a .pub suffix")
	cmd.Flags().IntVar(&bits, "bits", keygen.DefaultBits, "RSA key size")
	cmd.Flags().StringVar(&comment, "comment", "", "Comment appended to the public key")

	return cmd
}
