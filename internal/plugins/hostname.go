package plugins

import (
	"fmt"
	"strings"

	"github.com/rrbarreto/bsd-cloudinit-pfsense/internal/cloudconfig"
)

type hostnameHandler struct {
	deps Deps
}

// Execute sets the hostname from the payload, or from the metadata service
// when the payload is empty.
func (h *hostnameHandler) Execute(ctx *cloudconfig.Context, payload any) error {
	var name string
	switch v := payload.(type) {
	case nil:
	case string:
		name = strings.TrimSpace(v)
	default:
		return fmt.Errorf("expected a hostname, got %T", payload)
	}

	if name == "" {
		fromMeta, err := h.deps.Metadata.GetHostname(ctx)
		if err != nil {
			return fmt.Errorf("failed to get hostname from metadata: %w", err)
		}
		name = fromMeta
	}
	if name == "" {
		ctx.Log.Info("no hostname to set")
		return nil
	}

	if err := validateHostname(name); err != nil {
		return err
	}
	if err := h.deps.Hostname.SetHostname(ctx, name); err != nil {
		return fmt.Errorf("failed to set hostname: %w", err)
	}
	ctx.Log.Info("hostname set", "hostname", name)
	return nil
}

// validateHostname checks name against RFC 1123.
func validateHostname(name string) error {
	if len(name) > 253 {
		return fmt.Errorf("invalid hostname %q: longer than 253 characters", name)
	}
	for _, label := range strings.Split(strings.TrimSuffix(name, "."), ".") {
		if len(label) == 0 || len(label) > 63 {
			return fmt.Errorf("invalid hostname %q: label %q must be 1 to 63 characters", name, label)
		}
		if label[0] == '-' || label[len(label)-1] == '-' {
			return fmt.Errorf("invalid hostname %q: label %q starts or ends with a hyphen", name, label)
		}
		for _, c := range label {
			if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '-') {
				return fmt.Errorf("invalid hostname %q: character %q not allowed", name, c)
			}
		}
	}
	return nil
}
