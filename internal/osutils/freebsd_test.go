package osutils

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	commands []Command
	results  map[string]Result
	err      error
}

func (f *fakeRunner) Run(_ context.Context, cmd Command) (Result, error) {
	f.commands = append(f.commands, cmd)
	if f.err != nil {
		return Result{}, f.err
	}
	return f.results[cmd.Name+" "+cmd.Args[0]], nil
}

func TestFreeBSD_UserExists(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		result  Result
		want    bool
		wantErr string
	}{
		{"exists", Result{ExitCode: 0}, true, ""},
		{"missing", Result{ExitCode: exitNoUser, Output: "pw: no such user `admin'"}, false, ""},
		{"other failure", Result{ExitCode: 1, Output: "pw: permission denied"}, false, "permission denied"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			runner := &fakeRunner{results: map[string]Result{"pw usershow": tt.result}}
			got, err := NewFreeBSD(runner, logr.Discard()).UserExists(context.Background(), "admin")

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, []string{"usershow", "-n", "admin"}, runner.commands[0].Args)
		})
	}
}

func TestFreeBSD_PasswordsOnStdin(t *testing.T) {
	t.Parallel()
	runner := &fakeRunner{}
	sys := NewFreeBSD(runner, logr.Discard())
	ctx := context.Background()

	require.NoError(t, sys.CreateUser(ctx, "admin", "s3cr3t!Pass"))
	require.NoError(t, sys.SetUserPassword(ctx, "admin", "n3w!Pass"))

	require.Len(t, runner.commands, 2)
	assert.Equal(t, []string{"useradd", "-n", "admin", "-m", "-h", "0"}, runner.commands[0].Args)
	assert.Equal(t, "s3cr3t!Pass", runner.commands[0].Stdin)
	assert.Equal(t, []string{"usermod", "-n", "admin", "-h", "0"}, runner.commands[1].Args)
	assert.Equal(t, "n3w!Pass", runner.commands[1].Stdin)

	for _, cmd := range runner.commands {
		assert.NotContains(t, cmd.String(), "Pass", "password must never be on argv")
	}
}

func TestFreeBSD_AddUserToGroup(t *testing.T) {
	t.Parallel()
	runner := &fakeRunner{}

	require.NoError(t, NewFreeBSD(runner, logr.Discard()).AddUserToGroup(context.Background(), "admin", "wheel"))
	assert.Equal(t, "pw groupmod wheel -m admin", runner.commands[0].String())
}

func TestFreeBSD_SetHostname(t *testing.T) {
	t.Parallel()
	runner := &fakeRunner{}

	require.NoError(t, NewFreeBSD(runner, logr.Discard()).SetHostname(context.Background(), "fw01"))
	require.Len(t, runner.commands, 2)
	assert.Equal(t, "hostname fw01", runner.commands[0].String())
	assert.Equal(t, "sysrc hostname=fw01", runner.commands[1].String())
}

func TestFreeBSD_SetHostnameStopsOnFailure(t *testing.T) {
	t.Parallel()
	runner := &fakeRunner{results: map[string]Result{"hostname fw01": {ExitCode: 1, Output: "hostname: permission denied"}}}

	err := NewFreeBSD(runner, logr.Discard()).SetHostname(context.Background(), "fw01")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exited with status 1")
	assert.Len(t, runner.commands, 1, "rc.conf is not touched when hostname fails")
}

func TestFreeBSD_RunnerError(t *testing.T) {
	t.Parallel()
	runner := &fakeRunner{err: errors.New("executable file not found")}

	err := NewFreeBSD(runner, logr.Discard()).SetUserPassword(context.Background(), "admin", "pw")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "executable file not found")
}

func TestFreeBSD_PasswordPolicy(t *testing.T) {
	t.Parallel()
	sys := NewFreeBSD(&fakeRunner{}, logr.Discard())

	assert.Equal(t, 20, sys.MaximumPasswordLength())
	pw, err := sys.GenerateRandomPassword(sys.MaximumPasswordLength())
	require.NoError(t, err)
	assert.Len(t, pw, 20)
	assert.False(t, strings.ContainsAny(pw, " \t\n"))
}
