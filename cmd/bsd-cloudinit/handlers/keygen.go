package handlers

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/rrbarreto/bsd-cloudinit-pfsense/internal/util/keygen"
)

// Keygen handles the keygen command. It writes the private key to path and
// the public key to path.pub, refusing to overwrite either.
func Keygen(out io.Writer, path string, bits int, comment string) error {
	pubPath := path + ".pub"
	for _, p := range []string{path, pubPath} {
		if _, err := os.Stat(p); err == nil {
			return fmt.Errorf("%s already exists", p)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to check %s: %w", p, err)
		}
	}

	keyPair, err := keygen.GenerateRSAKeyPair(bits, comment)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, keyPair.PrivateKey, 0o600); err != nil {
		return fmt.Errorf("failed to write private key: %w", err)
	}
	if err := os.WriteFile(pubPath, keyPair.PublicKey, 0o644); err != nil { //nolint:gosec // public key
		return fmt.Errorf("failed to write public key: %w", err)
	}

	fmt.Fprintf(out, "Private key: %s\n", path)
	fmt.Fprintf(out, "Public key:  %s\n\n", pubPath)
	fmt.Fprintln(out, keyPair.AuthorizedKey())
	return nil
}
