package password

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"

	"github.com/rrbarreto/bsd-cloudinit-pfsense/internal/cloudconfig"
)

// Source identifies where a resolved password came from.
type Source string

// Password sources.
const (
	SourceInjected  Source = "metadata"
	SourceSession   Source = "session"
	SourceGenerated Source = "generated"
)

// Resolver chooses the plaintext password for an account.
type Resolver struct {
	// Inject enables the metadata service's admin password.
	Inject    bool
	Service   AdminPasswordSource
	Generator Generator
	Log       logr.Logger
}

// Resolve returns the password for username. Sources are tried in order:
// the injected admin password (when Inject is set and the service has one),
// a password recorded in the session for the same user, a generated one.
func (r *Resolver) Resolve(ctx context.Context, username string, session *cloudconfig.Session) (string, Source, error) {
	if r.Inject {
		pw, err := r.Service.GetAdminPassword(ctx)
		if err != nil {
			return "", "", fmt.Errorf("failed to get admin password from metadata: %w", err)
		}
		if pw != "" {
			r.Log.Info("using admin password from the instance metadata", "user", username)
			return pw, SourceInjected, nil
		}
		r.Log.V(1).Info("metadata has no admin password", "user", username)
	}

	if pw, ok := sessionPassword(session, username); ok {
		r.Log.V(1).Info("reusing password created during this run", "user", username)
		return pw, SourceSession, nil
	}

	length := r.Generator.MaximumPasswordLength()
	pw, err := r.Generator.GenerateRandomPassword(length)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate password: %w", err)
	}
	return pw, SourceGenerated, nil
}

// SetPassword resolves the password for username and sets it on the account.
func (r *Resolver) SetPassword(ctx context.Context, accounts AccountManager, username string, session *cloudconfig.Session) (string, Source, error) {
	pw, source, err := r.Resolve(ctx, username, session)
	if err != nil {
		return "", "", err
	}
	if err := accounts.SetUserPassword(ctx, username, pw); err != nil {
		return "", "", fmt.Errorf("failed to set password for user %s: %w", username, err)
	}
	return pw, source, nil
}

func sessionPassword(session *cloudconfig.Session, username string) (string, bool) {
	if session == nil {
		return "", false
	}
	pw, ok := session.Get(cloudconfig.KeyPassword)
	if !ok || pw == "" {
		return "", false
	}
	if owner, ok := session.Get(cloudconfig.KeyUsername); ok && owner != username {
		return "", false
	}
	return pw, true
}
