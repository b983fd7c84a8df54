package handlers

import (
	"context"
	"strings"
	"testing"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"

	"github.com/rrbarreto/bsd-cloudinit-pfsense/internal/config"
	"github.com/rrbarreto/bsd-cloudinit-pfsense/internal/metadata"
	"github.com/rrbarreto/bsd-cloudinit-pfsense/internal/metrics"
	"github.com/rrbarreto/bsd-cloudinit-pfsense/internal/util/prerequisites"
)

type fakeSystem struct {
	users    map[string]string
	groups   map[string][]string
	hostname string
}

func newFakeSystem() *fakeSystem {
	return &fakeSystem{users: map[string]string{}, groups: map[string][]string{}}
}

func (f *fakeSystem) UserExists(_ context.Context, name string) (bool, error) {
	_, ok := f.users[name]
	return ok, nil
}

func (f *fakeSystem) CreateUser(_ context.Context, name, password string) error {
	f.users[name] = password
	return nil
}

func (f *fakeSystem) AddUserToGroup(_ context.Context, name, group string) error {
	f.groups[name] = append(f.groups[name], group)
	return nil
}

func (f *fakeSystem) SetUserPassword(_ context.Context, name, password string) error {
	f.users[name] = password
	return nil
}

func (f *fakeSystem) GenerateRandomPassword(length int) (string, error) {
	return strings.Repeat("p", length), nil
}

func (f *fakeSystem) MaximumPasswordLength() int { return 20 }

func (f *fakeSystem) SetHostname(_ context.Context, name string) error {
	f.hostname = name
	return nil
}

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

// stubFactories replaces the package factories and restores them when the
// test ends.
func stubFactories(t *testing.T, cfg *config.Config, sys System, svc metadata.Service) *logSink {
	t.Helper()
	origLoad, origLogger, origSystem, origDiscover, origRunID := loadConfig, newLogger, newSystem, discoverMetadata, newRunID
	origCheck := checkPrerequisites
	t.Cleanup(func() {
		loadConfig, newLogger, newSystem, discoverMetadata, newRunID = origLoad, origLogger, origSystem, origDiscover, origRunID
		checkPrerequisites = origCheck
	})

	sink := &logSink{}
	loadConfig = func(string) (*config.Config, error) { return cfg, nil }
	newLogger = func(*config.Config) (logr.Logger, func(), error) { return sink.logger(), func() {}, nil }
	newSystem = func(logr.Logger) System { return sys }
	discoverMetadata = func(context.Context, *config.Config, logr.Logger, *metrics.Recorder) metadata.Service { return svc }
	newRunID = func() string { return "3f1c2f8e-run" }
	checkPrerequisites = func([]string) *prerequisites.CheckResults { return &prerequisites.CheckResults{} }
	return sink
}
