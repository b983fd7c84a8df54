package plugins

import (
	"errors"
	"fmt"

	"github.com/rrbarreto/bsd-cloudinit-pfsense/internal/cloudconfig"
)

type userEntry struct {
	Name    string   `mapstructure:"name"`
	Groups  []string `mapstructure:"groups"`
	Primary bool     `mapstructure:"primary"`
}

type usersHandler struct {
	deps Deps
}

func parseUsers(payload any) ([]userEntry, error) {
	var users []userEntry
	for i, item := range asList(payload) {
		var u userEntry
		switch v := item.(type) {
		case string:
			u.Name = v
		case map[string]any:
			if err := decodePayload(v, &u); err != nil {
				return nil, fmt.Errorf("users[%d]: %w", i, err)
			}
		default:
			return nil, fmt.Errorf("users[%d]: expected a name or a mapping, got %T", i, item)
		}
		if u.Name == "" {
			return nil, fmt.Errorf("users[%d]: name is required", i)
		}
		users = append(users, u)
	}
	return users, nil
}

// Execute creates missing accounts and adds them to their groups. The
// primary entry, or else the configured user, is recorded in the session.
func (h *usersHandler) Execute(ctx *cloudconfig.Context, payload any) error {
	users, err := parseUsers(payload)
	if err != nil {
		return err
	}

	primary := -1
	for i, u := range users {
		if u.Primary {
			primary = i
			break
		}
	}
	if primary < 0 {
		for i, u := range users {
			if u.Name == h.deps.Config.Username {
				primary = i
				break
			}
		}
	}

	var errs []error
	for i, u := range users {
		if err := h.provision(ctx, u, i == primary); err != nil {
			errs = append(errs, fmt.Errorf("user %s: %w", u.Name, err))
		}
	}
	return errors.Join(errs...)
}

func (h *usersHandler) provision(ctx *cloudconfig.Context, u userEntry, primary bool) error {
	accounts := h.deps.Accounts
	log := ctx.Log.WithValues("user", u.Name)

	exists, err := accounts.UserExists(ctx, u.Name)
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}

	var created string
	if !exists {
		pw, err := accounts.GenerateRandomPassword(accounts.MaximumPasswordLength())
		if err != nil {
			return err
		}
		if err := accounts.CreateUser(ctx, u.Name, pw); err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		created = pw
	} else {
		log.V(1).Info("user already exists")
	}

	groups := u.Groups
	if len(groups) == 0 && u.Name == h.deps.Config.Username {
		groups = h.deps.Config.Groups
	}
	for _, g := range groups {
		if err := accounts.AddUserToGroup(ctx, u.Name, g); err != nil {
			return fmt.Errorf("failed to add user to group %s: %w", g, err)
		}
	}

	if !primary {
		return nil
	}
	if err := ctx.Session.Set(cloudconfig.KeyUsername, u.Name); err != nil {
		return err
	}
	if created != "" {
		return ctx.Session.Set(cloudconfig.KeyPassword, created)
	}
	return nil
}
