package cloudconfig

import (
	"context"
	"strings"
	"testing"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
)

// logSink collects formatted log lines.
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

func newTestContext(t *testing.T) (*Context, *logSink) {
	t.Helper()
	sink := &logSink{}
	return NewContext(context.Background(), NewSession(), sink.logger()), sink
}
