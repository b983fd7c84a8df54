package plugins

import (
	"errors"

	"github.com/rrbarreto/bsd-cloudinit-pfsense/internal/cloudconfig"
	"github.com/rrbarreto/bsd-cloudinit-pfsense/internal/config"
	"github.com/rrbarreto/bsd-cloudinit-pfsense/internal/metadata"
	"github.com/rrbarreto/bsd-cloudinit-pfsense/internal/osutils"
	"github.com/rrbarreto/bsd-cloudinit-pfsense/internal/password"
)

// Deps are the collaborators of the directive handlers.
type Deps struct {
	Config   *config.Config
	Accounts osutils.Accounts
	Hostname osutils.HostnameSetter
	Metadata metadata.Service
	// Guard is created when nil.
	Guard *password.Guard
}

// NewRegistry returns the registry of every supported directive.
func NewRegistry(deps Deps) (*cloudconfig.Registry, error) {
	if deps.Config == nil {
		return nil, errors.New("plugins: config is required")
	}
	if deps.Accounts == nil || deps.Hostname == nil {
		return nil, errors.New("plugins: OS utilities are required")
	}
	if deps.Metadata == nil {
		deps.Metadata = metadata.Null{}
	}

	return cloudconfig.NewRegistry(
		cloudconfig.Entry{Kind: cloudconfig.KindUsers, Handler: &usersHandler{deps: deps}},
		cloudconfig.Entry{Kind: cloudconfig.KindSetUserPassword, Handler: newSetUserPasswordHandler(deps)},
		cloudconfig.Entry{Kind: cloudconfig.KindWriteFiles, Handler: cloudconfig.HandlerFunc(writeFiles)},
		cloudconfig.Entry{Kind: cloudconfig.KindSetHostname, Handler: &hostnameHandler{deps: deps}},
	)
}
