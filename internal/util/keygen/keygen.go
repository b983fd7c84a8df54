package keygen

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"

	"golang.org/x/crypto/ssh"
)

// DefaultBits is the key size used by the keygen command.
const DefaultBits = 4096

// KeyPair holds the private and public keys.
type KeyPair struct {
	// PrivateKey is PKCS #1 PEM.
	PrivateKey []byte
	// PublicKey is one authorized_keys line.
	PublicKey []byte
}

// AuthorizedKey returns the public key without the trailing newline.
func (k *KeyPair) AuthorizedKey() string {
	return string(bytes.TrimSpace(k.PublicKey))
}

// GenerateRSAKeyPair generates a new RSA key pair. A non-empty comment is
// appended to the public key line.
func GenerateRSAKeyPair(bits int, comment string) (*KeyPair, error) {
	privateKey, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return nil, fmt.Errorf("failed to generate RSA key: %w", err)
	}

	if err := privateKey.Validate(); err != nil {
		return nil, fmt.Errorf("generated key is invalid: %w", err)
	}

	privateKeyPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(privateKey),
	})

	publicRsaKey, err := ssh.NewPublicKey(&privateKey.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("failed to encode public key: %w", err)
	}

	pubKeyBytes := ssh.MarshalAuthorizedKey(publicRsaKey)
	if comment != "" {
		pubKeyBytes = append(bytes.TrimSpace(pubKeyBytes), []byte(" "+comment+"\n")...)
	}

	return &KeyPair{
		PrivateKey: privateKeyPEM,
		PublicKey:  pubKeyBytes,
	}, nil
}
