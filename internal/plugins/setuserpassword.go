package plugins

import (
	"fmt"

	"github.com/rrbarreto/bsd-cloudinit-pfsense/internal/cloudconfig"
	"github.com/rrbarreto/bsd-cloudinit-pfsense/internal/password"
)

type setUserPasswordArgs struct {
	Username string `mapstructure:"username"`
}

type setUserPasswordHandler struct {
	deps  Deps
	guard *password.Guard
}

func newSetUserPasswordHandler(deps Deps) *setUserPasswordHandler {
	return &setUserPasswordHandler{deps: deps, guard: deps.Guard}
}

func (h *setUserPasswordHandler) username(ctx *cloudconfig.Context, payload any) (string, error) {
	var args setUserPasswordArgs
	switch v := payload.(type) {
	case nil:
	case string:
		args.Username = v
	case map[string]any:
		if err := decodePayload(v, &args); err != nil {
			return "", err
		}
	default:
		return "", fmt.Errorf("expected a username or a mapping, got %T", payload)
	}

	if args.Username != "" {
		return args.Username, nil
	}
	if name, ok := ctx.Session.Get(cloudconfig.KeyUsername); ok && name != "" {
		return name, nil
	}
	return h.deps.Config.Username, nil
}

// Execute sets the account password and returns it, encrypted, to the
// metadata service when the service accepts it.
func (h *setUserPasswordHandler) Execute(ctx *cloudconfig.Context, payload any) error {
	username, err := h.username(ctx, payload)
	if err != nil {
		return err
	}
	log := ctx.Log.WithValues("user", username)

	accounts := h.deps.Accounts
	exists, err := accounts.UserExists(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to look up user %s: %w", username, err)
	}
	if !exists {
		log.Info("user does not exist, not setting a password")
		return nil
	}

	svc := h.deps.Metadata
	resolver := &password.Resolver{
		Inject:    h.deps.Config.InjectUserPassword,
		Service:   svc,
		Generator: accounts,
		Log:       log,
	}
	pw, source, err := resolver.SetPassword(ctx, accounts, username, ctx.Session)
	if err != nil {
		return err
	}
	log.Info("password set", "source", string(source))

	if err := ctx.Session.Set(cloudconfig.KeyUsername, username); err != nil {
		return err
	}
	if err := ctx.Session.Set(cloudconfig.KeyPassword, pw); err != nil {
		return err
	}

	if !svc.CanPostPassword() {
		log.Info("cannot set the password in the metadata as it is not supported by this service",
			"service", svc.Name())
		return nil
	}

	if h.guard == nil {
		h.guard = password.NewGuard(log)
	}
	posted, err := h.guard.Publish(ctx, pw, svc)
	if err != nil {
		return err
	}
	if !posted {
		log.Info("metadata service did not accept the password")
		return nil
	}
	// Publish also reports true when it had nothing to post.
	if h.guard.Published() {
		return ctx.Session.Set(cloudconfig.KeyPasswordPosted, "true")
	}
	return nil
}
