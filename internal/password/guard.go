package password

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"
)

// Guard publishes the encrypted password to the metadata service at most
// once per run.
type Guard struct {
	log       logr.Logger
	encrypt   func(key, password string) (string, error)
	published bool
}

// NewGuard returns a guard that encrypts with EncryptPassword.
func NewGuard(log logr.Logger) *Guard {
	return &Guard{log: log, encrypt: EncryptPassword}
}

// Published reports whether a password was posted through this guard.
func (g *Guard) Published() bool {
	return g.published
}

// Publish encrypts password with the first SSH public key of svc and posts
// it. It returns true without posting when the service already holds a
// password or has no public key; otherwise it returns the service response.
func (g *Guard) Publish(ctx context.Context, password string, svc PublicationService) (bool, error) {
	if g.published {
		g.log.V(1).Info("password already posted during this run")
		return true, nil
	}

	set, err := svc.IsPasswordSet(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check metadata password: %w", err)
	}
	if set {
		g.log.Info("password already set in the instance metadata and it cannot be updated")
		return true, nil
	}

	keys, err := svc.GetPublicKeys(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get SSH public keys: %w", err)
	}
	if len(keys) == 0 {
		g.log.Info("no SSH public key available for password encryption")
		return true, nil
	}

	encrypted, err := g.encrypt(keys[0], password)
	if err != nil {
		return false, err
	}

	ok, err := svc.PostPassword(ctx, encrypted)
	if err != nil {
		return false, fmt.Errorf("failed to post password to metadata: %w", err)
	}
	g.published = true
	return ok, nil
}
