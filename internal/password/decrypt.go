package password

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/ssh"
)

// ErrDecryption is returned when an encrypted password cannot be recovered.
var ErrDecryption = errors.New("password decryption failed")

// DecryptPassword reverses EncryptPassword with the administrator's private
// key, given as PEM or in the OpenSSH private key format. Encrypted keys are
// not supported.
func DecryptPassword(privateKey []byte, encoded string) (string, error) {
	raw, err := ssh.ParseRawPrivateKey(privateKey)
	if err != nil {
		return "", fmt.Errorf("%w: failed to parse private key: %v", ErrDecryption, err)
	}
	key, ok := raw.(*rsa.PrivateKey)
	if !ok {
		return "", fmt.Errorf("%w: private key is %T, not RSA", ErrDecryption, raw)
	}

	ciphertext, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return "", fmt.Errorf("%w: invalid base64: %v", ErrDecryption, err)
	}

	plain, err := rsa.DecryptPKCS1v15(rand.Reader, key, ciphertext) //nolint:staticcheck // required by the metadata protocol
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecryption, err)
	}
	return string(plain), nil
}
