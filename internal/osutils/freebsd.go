package osutils

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"
)

// pw(8) exits with EX_NOUSER when the account does not exist.
const exitNoUser = 67

// FreeBSD implements Accounts and HostnameSetter with the base system tools.
type FreeBSD struct {
	runner Runner
	log    logr.Logger
}

// NewFreeBSD returns a FreeBSD adapter. A nil runner runs real commands.
func NewFreeBSD(runner Runner, log logr.Logger) *FreeBSD {
	if runner == nil {
		runner = ExecRunner{}
	}
	return &FreeBSD{runner: runner, log: log}
}

var (
	_ Accounts       = (*FreeBSD)(nil)
	_ HostnameSetter = (*FreeBSD)(nil)
)

// UserExists reports whether the account name exists.
func (f *FreeBSD) UserExists(ctx context.Context, name string) (bool, error) {
	res, err := f.runner.Run(ctx, Command{Name: "pw", Args: []string{"usershow", "-n", name}})
	if err != nil {
		return false, err
	}
	switch res.ExitCode {
	case 0:
		return true, nil
	case exitNoUser:
		return false, nil
	default:
		return false, commandError("pw usershow", res)
	}
}

// CreateUser adds the account with a home directory and sets its password.
func (f *FreeBSD) CreateUser(ctx context.Context, name, password string) error {
	f.log.Info("creating user", "user", name)
	return f.run(ctx, Command{
		Name:  "pw",
		Args:  []string{"useradd", "-n", name, "-m", "-h", "0"},
		Stdin: password,
	})
}

// AddUserToGroup appends name to the members of group.
func (f *FreeBSD) AddUserToGroup(ctx context.Context, name, group string) error {
	return f.run(ctx, Command{Name: "pw", Args: []string{"groupmod", group, "-m", name}})
}

// SetUserPassword replaces the password of an existing account.
func (f *FreeBSD) SetUserPassword(ctx context.Context, name, password string) error {
	return f.run(ctx, Command{
		Name:  "pw",
		Args:  []string{"usermod", "-n", name, "-h", "0"},
		Stdin: password,
	})
}

// GenerateRandomPassword implements Accounts.
func (f *FreeBSD) GenerateRandomPassword(length int) (string, error) {
	return GenerateRandomPassword(length)
}

// MaximumPasswordLength implements Accounts.
func (f *FreeBSD) MaximumPasswordLength() int {
	return MaximumPasswordLength
}

// SetHostname applies name now and persists it in rc.conf.
func (f *FreeBSD) SetHostname(ctx context.Context, name string) error {
	if err := f.run(ctx, Command{Name: "hostname", Args: []string{name}}); err != nil {
		return err
	}
	return f.run(ctx, Command{Name: "sysrc", Args: []string{"hostname=" + name}})
}

func (f *FreeBSD) run(ctx context.Context, cmd Command) error {
	f.log.V(1).Info("running command", "command", cmd.String())
	res, err := f.runner.Run(ctx, cmd)
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return commandError(cmd.String(), res)
	}
	return nil
}

func commandError(name string, res Result) error {
	if res.Output == "" {
		return fmt.Errorf("%s exited with status %d", name, res.ExitCode)
	}
	return fmt.Errorf("%s exited with status %d: %s", name, res.ExitCode, res.Output)
}
