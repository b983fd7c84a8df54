package config

import (
	"os"
	"strconv"
	"time"

	"github.com/rrbarreto/bsd-cloudinit-pfsense/internal/util/retry"
)

// Retry holds the backoff settings for metadata and user-data calls.
type Retry struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
}

// LoadRetry loads retry configuration from environment variables.
// If an environment variable is not set or invalid, a default value is used.
//
// Environment Variables:
//   - CLOUDINIT_RETRY_MAX_ATTEMPTS (default: 5)
//   - CLOUDINIT_RETRY_INITIAL_DELAY (default: 500ms)
//   - CLOUDINIT_RETRY_MAX_DELAY (default: 10s)
func LoadRetry() *Retry {
	return &Retry{
		MaxAttempts:  parseInt("CLOUDINIT_RETRY_MAX_ATTEMPTS", 5),
		InitialDelay: parseDuration("CLOUDINIT_RETRY_INITIAL_DELAY", 500*time.Millisecond),
		MaxDelay:     parseDuration("CLOUDINIT_RETRY_MAX_DELAY", 10*time.Second),
	}
}

func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil || d < 0 {
		return defaultVal
	}

	return d
}

func parseInt(envVar string, defaultVal int) int {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	i, err := strconv.Atoi(val)
	if err != nil || i < 1 {
		return defaultVal
	}

	return i
}

// Options converts the settings into retry options.
func (r *Retry) Options() []retry.Option {
	if r == nil {
		return nil
	}
	return []retry.Option{
		retry.WithAttempts(r.MaxAttempts),
		retry.WithInitialDelay(r.InitialDelay),
		retry.WithMaxDelay(r.MaxDelay),
	}
}
