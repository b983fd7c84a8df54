package handlers

import (
	"context"
	"errors"
	"os"

	"github.com/go-logr/logr"
	"github.com/google/uuid"

	"github.com/rrbarreto/bsd-cloudinit-pfsense/internal/config"
	"github.com/rrbarreto/bsd-cloudinit-pfsense/internal/logging"
	"github.com/rrbarreto/bsd-cloudinit-pfsense/internal/metadata"
	"github.com/rrbarreto/bsd-cloudinit-pfsense/internal/metrics"
	"github.com/rrbarreto/bsd-cloudinit-pfsense/internal/osutils"
	"github.com/rrbarreto/bsd-cloudinit-pfsense/internal/userdata"
	"github.com/rrbarreto/bsd-cloudinit-pfsense/internal/util/prerequisites"
)

// System is the OS adapter used by the directives.
type System interface {
	osutils.Accounts
	osutils.HostnameSetter
}

// Factory function variables - can be replaced in tests.
var (
	loadConfig = config.LoadFileOrDefault

	newLogger = func(cfg *config.Config) (logr.Logger, func(), error) {
		return logging.New(logging.Options{
			Level:  cfg.Log.Level,
			Format: cfg.Log.Format,
			Output: os.Stderr,
		})
	}

	newSystem = func(log logr.Logger) System {
		return osutils.NewFreeBSD(nil, log)
	}

	discoverMetadata = discover

	newS3Client = func(ctx context.Context, cfg config.S3Config) (userdata.S3API, error) {
		return userdata.NewS3Client(ctx, cfg)
	}

	newRunID = uuid.NewString

	checkPrerequisites = prerequisites.CheckSystem
)

// discover probes the configured metadata services and falls back to the
// null service when none is reachable.
func discover(ctx context.Context, cfg *config.Config, log logr.Logger, rec *metrics.Recorder) metadata.Service {
	factories := map[string]metadata.Factory{
		config.MetadataConfigDrive: func() metadata.Service {
			return metadata.NewConfigDrive(cfg.ConfigDrivePath)
		},
		config.MetadataHetzner: func() metadata.Service {
			return metadata.NewHetzner(
				metadata.WithHetznerRetry(cfg.Retry.Options()...),
				metadata.WithHetznerInstrumentation(rec.Registerer()),
			)
		},
	}

	svc, err := metadata.Discover(ctx, log, cfg.MetadataServices, factories)
	if err != nil {
		if !errors.Is(err, metadata.ErrNoMetadataService) {
			log.Error(err, "metadata discovery failed")
		}
		log.Info("no metadata service available, continuing without one")
		return metadata.Null{}
	}
	return svc
}
