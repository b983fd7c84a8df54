package metadata

import (
	"context"
	"errors"
)

var (
	// ErrNoMetadataService is returned by Discover when no service loads.
	ErrNoMetadataService = errors.New("no metadata service available")
	// ErrNotSupported is returned by operations a service does not offer.
	ErrNotSupported = errors.New("operation not supported by this metadata service")
)

// Service is an instance metadata provider.
type Service interface {
	Name() string
	// Load probes the service and caches what it needs. A service is only
	// used after Load succeeded.
	Load(ctx context.Context) error
	GetAdminPassword(ctx context.Context) (string, error)
	// GetPublicKeys returns the SSH public keys in the order the service
	// lists them.
	GetPublicKeys(ctx context.Context) ([]string, error)
	GetHostname(ctx context.Context) (string, error)
	IsPasswordSet(ctx context.Context) (bool, error)
	CanPostPassword() bool
	PostPassword(ctx context.Context, encrypted string) (bool, error)
	GetUserData(ctx context.Context) ([]byte, error)
}

// Null is a metadata service without data.
type Null struct{}

var _ Service = Null{}

// Name implements Service.
func (Null) Name() string { return "null" }

// Load implements Service.
func (Null) Load(context.Context) error { return nil }

// GetAdminPassword implements Service.
func (Null) GetAdminPassword(context.Context) (string, error) { return "", nil }

// GetPublicKeys implements Service.
func (Null) GetPublicKeys(context.Context) ([]string, error) { return nil, nil }

// GetHostname implements Service.
func (Null) GetHostname(context.Context) (string, error) { return "", nil }

// IsPasswordSet implements Service.
func (Null) IsPasswordSet(context.Context) (bool, error) { return false, nil }

// CanPostPassword implements Service.
func (Null) CanPostPassword() bool { return false }

// PostPassword implements Service.
func (Null) PostPassword(context.Context, string) (bool, error) { return false, ErrNotSupported }

// GetUserData implements Service.
func (Null) GetUserData(context.Context) ([]byte, error) { return nil, nil }
