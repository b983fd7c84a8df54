package plugins

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/stretchr/testify/require"

	"github.com/rrbarreto/bsd-cloudinit-pfsense/internal/cloudconfig"
	"github.com/rrbarreto/bsd-cloudinit-pfsense/internal/config"
	"github.com/rrbarreto/bsd-cloudinit-pfsense/internal/metadata"
	"github.com/rrbarreto/bsd-cloudinit-pfsense/internal/util/keygen"
)

type fakeOS struct {
	users     map[string]string
	groups    map[string][]string
	hostname  string
	generated int
	failOn    string
}

func newFakeOS(existing ...string) *fakeOS {
	f := &fakeOS{users: map[string]string{}, groups: map[string][]string{}}
	for _, u := range existing {
		f.users[u] = "existing"
	}
	return f
}

func (f *fakeOS) UserExists(_ context.Context, name string) (bool, error) {
	_, ok := f.users[name]
	return ok, nil
}

func (f *fakeOS) CreateUser(_ context.Context, name, password string) error {
	if f.failOn == name {
		return errors.New("pw: user already exists")
	}
	f.users[name] = password
	return nil
}

func (f *fakeOS) AddUserToGroup(_ context.Context, name, group string) error {
	f.groups[name] = append(f.groups[name], group)
	return nil
}

func (f *fakeOS) SetUserPassword(_ context.Context, name, password string) error {
	f.users[name] = password
	return nil
}

func (f *fakeOS) GenerateRandomPassword(length int) (string, error) {
	f.generated++
	return strings.Repeat("g", length), nil
}

func (f *fakeOS) MaximumPasswordLength() int { return 20 }

func (f *fakeOS) SetHostname(_ context.Context, name string) error {
	f.hostname = name
	return nil
}

// postingService is a metadata service that accepts passwords.
type postingService struct {
	metadata.Null
	adminPassword string
	keys          []string
	passwordSet   bool
	posted        []string
}

func (s *postingService) Name() string { return "test" }

func (s *postingService) GetAdminPassword(context.Context) (string, error) {
	return s.adminPassword, nil
}

func (s *postingService) GetPublicKeys(context.Context) ([]string, error) { return s.keys, nil }

func (s *postingService) IsPasswordSet(context.Context) (bool, error) { return s.passwordSet, nil }

func (s *postingService) CanPostPassword() bool { return true }

func (s *postingService) PostPassword(_ context.Context, encrypted string) (bool, error) {
	s.posted = append(s.posted, encrypted)
	return true, nil
}

type hostnameService struct {
	metadata.Null
	hostname string
}

func (s hostnameService) GetHostname(context.Context) (string, error) { return s.hostname, nil }

type logSink struct {
	lines []string
}

func (s *logSink) logger() logr.Logger {
	return funcr.New(func(prefix, args string) {
		s.lines = append(s.lines, strings.TrimSpace(prefix+" "+args))
	}, funcr.Options{Verbosity: 1})
}

func (s *logSink) contains(substr string) bool {
	for _, l := range s.lines {
		if strings.Contains(l, substr) {
			return true
		}
	}
	return false
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Default()
	require.NoError(t, err)
	return cfg
}

func newTestContext(t *testing.T) (*cloudconfig.Context, *logSink) {
	t.Helper()
	sink := &logSink{}
	return cloudconfig.NewContext(context.Background(), cloudconfig.NewSession(), sink.logger()), sink
}

func newKeyPair(t *testing.T) ([]byte, string) {
	t.Helper()
	kp, err := keygen.GenerateRSAKeyPair(2048, "")
	require.NoError(t, err)
	return kp.PrivateKey, kp.AuthorizedKey()
}
