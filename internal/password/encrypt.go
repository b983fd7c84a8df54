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

var (
	// ErrInvalidPublicKey is returned for keys that are not OpenSSH RSA keys.
	ErrInvalidPublicKey = errors.New("invalid SSH RSA public key")
	// ErrEncryption is returned when RSA encryption fails.
	ErrEncryption = errors.New("password encryption failed")
)

// PublicKeyContext holds a parsed RSA public key until Close is called.
type PublicKeyContext struct {
	key *rsa.PublicKey
}

// LoadSSHRSAPublicKey parses an authorized_keys line such as
// "ssh-rsa AAAA... comment".
func LoadSSHRSAPublicKey(authorizedKey string) (*PublicKeyContext, error) {
	pub, _, _, _, err := ssh.ParseAuthorizedKey([]byte(strings.TrimSpace(authorizedKey)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}

	cpk, ok := pub.(ssh.CryptoPublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: key type %s has no crypto key", ErrInvalidPublicKey, pub.Type())
	}
	rsaKey, ok := cpk.CryptoPublicKey().(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: key type %s is not RSA", ErrInvalidPublicKey, pub.Type())
	}

	return &PublicKeyContext{key: rsaKey}, nil
}

// PublicEncrypt encrypts data with PKCS #1 v1.5 padding, which is what
// "nova get-password" and "openssl rsautl -decrypt" expect.
func (c *PublicKeyContext) PublicEncrypt(data []byte) ([]byte, error) {
	if c == nil || c.key == nil {
		return nil, fmt.Errorf("%w: key context is closed", ErrEncryption)
	}
	out, err := rsa.EncryptPKCS1v15(rand.Reader, c.key, data) //nolint:staticcheck // required by the metadata protocol
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncryption, err)
	}
	return out, nil
}

// Close releases the key. Further PublicEncrypt calls fail.
func (c *PublicKeyContext) Close() error {
	if c != nil {
		c.key = nil
	}
	return nil
}

// EncryptPassword encrypts the UTF-8 bytes of password with the SSH RSA
// public key and returns them base64 encoded.
func EncryptPassword(authorizedKey, password string) (string, error) {
	keyCtx, err := LoadSSHRSAPublicKey(authorizedKey)
	if err != nil {
		return "", err
	}
	defer func() { _ = keyCtx.Close() }()

	encrypted, err := keyCtx.PublicEncrypt([]byte(password))
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(encrypted), nil
}
