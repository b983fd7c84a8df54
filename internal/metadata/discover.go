package metadata

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-logr/logr"
)

// Factory creates an unloaded service.
type Factory func() Service

// Discover returns the first service, in the order of names, whose Load
// succeeds. Unknown names are skipped with a log line.
func Discover(ctx context.Context, log logr.Logger, names []string, factories map[string]Factory) (Service, error) {
	var errs []error
	for _, name := range names {
		factory, ok := factories[name]
		if !ok {
			log.Info("unknown metadata service", "service", name)
			continue
		}
		svc := factory()
		if err := svc.Load(ctx); err != nil {
			log.V(1).Info("metadata service not available", "service", name, "reason", err.Error())
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			if ctx.Err() != nil {
				break
			}
			continue
		}
		log.Info("using metadata service", "service", svc.Name())
		return svc, nil
	}
	return nil, errors.Join(append([]error{ErrNoMetadataService}, errs...)...)
}
