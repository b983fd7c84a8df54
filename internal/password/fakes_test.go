package password

import (
	"context"
	"strings"
	"testing"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/stretchr/testify/require"

	"github.com/rrbarreto/bsd-cloudinit-pfsense/internal/util/keygen"
)

type fakeService struct {
	adminPassword string
	adminErr      error
	adminCalls    int

	passwordSet bool
	publicKeys  []string
	posted      []string
	postResult  bool
	postErr     error
}

func (f *fakeService) GetAdminPassword(context.Context) (string, error) {
	f.adminCalls++
	return f.adminPassword, f.adminErr
}

func (f *fakeService) IsPasswordSet(context.Context) (bool, error) {
	return f.passwordSet, nil
}

func (f *fakeService) GetPublicKeys(context.Context) ([]string, error) {
	return f.publicKeys, nil
}

func (f *fakeService) PostPassword(_ context.Context, encrypted string) (bool, error) {
	f.posted = append(f.posted, encrypted)
	return f.postResult, f.postErr
}

type fakeAccounts struct {
	maxLength      int
	generated      string
	maxLengthCalls int
	generateCalls  []int
	passwords      map[string]string
	setErr         error
}

func (f *fakeAccounts) MaximumPasswordLength() int {
	f.maxLengthCalls++
	return f.maxLength
}

func (f *fakeAccounts) GenerateRandomPassword(length int) (string, error) {
	f.generateCalls = append(f.generateCalls, length)
	return f.generated, nil
}

func (f *fakeAccounts) UserExists(context.Context, string) (bool, error) {
	return true, nil
}

func (f *fakeAccounts) SetUserPassword(_ context.Context, name, password string) error {
	if f.setErr != nil {
		return f.setErr
	}
	if f.passwords == nil {
		f.passwords = map[string]string{}
	}
	f.passwords[name] = password
	return nil
}

type logLines []string

func (l *logLines) logger() logr.Logger {
	return funcr.New(func(prefix, args string) {
		*l = append(*l, strings.TrimSpace(prefix+" "+args))
	}, funcr.Options{})
}

func (l logLines) contains(substr string) bool {
	for _, line := range l {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}

// newKeyPair returns a PEM private key and its authorized_keys line.
func newKeyPair(t *testing.T) ([]byte, string) {
	t.Helper()
	kp, err := keygen.GenerateRSAKeyPair(2048, "admin@workstation")
	require.NoError(t, err)
	return kp.PrivateKey, kp.AuthorizedKey()
}
