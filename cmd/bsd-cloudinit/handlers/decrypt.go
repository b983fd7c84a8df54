package handlers

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rrbarreto/bsd-cloudinit-pfsense/internal/password"
)

// DecryptPassword handles the decrypt-password command. The encrypted
// password is read from in when encoded is empty.
func DecryptPassword(in io.Reader, out io.Writer, keyPath, encoded string) error {
	// #nosec G304
	key, err := os.ReadFile(keyPath)
	if err != nil {
		return fmt.Errorf("failed to read private key: %w", err)
	}

	if strings.TrimSpace(encoded) == "" {
		data, err := io.ReadAll(in)
		if err != nil {
			return fmt.Errorf("failed to read encrypted password: %w", err)
		}
		encoded = string(data)
	}
	if strings.TrimSpace(encoded) == "" {
		return fmt.Errorf("no encrypted password given")
	}

	plain, err := password.DecryptPassword(key, encoded)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, plain)
	return err
}
