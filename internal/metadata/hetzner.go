package metadata

import (
	"context"
	"errors"
	"fmt"

	hcloudmeta "github.com/hetznercloud/hcloud-go/v2/hcloud/metadata"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/rrbarreto/bsd-cloudinit-pfsense/internal/util/retry"
)

// ErrNotHetzner is returned by Hetzner.Load outside a Hetzner Cloud server.
var ErrNotHetzner = errors.New("not running on a Hetzner Cloud server")

// hetznerClient is the part of the hcloud metadata client used here.
type hetznerClient interface {
	IsHcloudServer() bool
	Hostname() (string, error)
	InstanceID() (int64, error)
}

// Hetzner reads the Hetzner Cloud metadata endpoint. It exposes the hostname
// only and cannot store passwords.
type Hetzner struct {
	client     hetznerClient
	retry      []retry.Option
	hostname   string
	instanceID int64
}

var _ Service = (*Hetzner)(nil)

// HetznerOption configures a Hetzner service.
type HetznerOption func(*hetznerOptions)

type hetznerOptions struct {
	client  []hcloudmeta.ClientOption
	retry   []retry.Option
	wrapped hetznerClient
}

// WithHetznerEndpoint overrides the metadata endpoint URL.
func WithHetznerEndpoint(endpoint string) HetznerOption {
	return func(o *hetznerOptions) {
		o.client = append(o.client, hcloudmeta.WithEndpoint(endpoint))
	}
}

// WithHetznerInstrumentation registers request metrics of the metadata client.
func WithHetznerInstrumentation(reg prometheus.Registerer) HetznerOption {
	return func(o *hetznerOptions) {
		if reg != nil {
			o.client = append(o.client, hcloudmeta.WithInstrumentation(reg))
		}
	}
}

// WithHetznerRetry sets the retry options for metadata requests.
func WithHetznerRetry(opts ...retry.Option) HetznerOption {
	return func(o *hetznerOptions) {
		o.retry = append(o.retry, opts...)
	}
}

func withHetznerClient(c hetznerClient) HetznerOption {
	return func(o *hetznerOptions) {
		o.wrapped = c
	}
}

// NewHetzner returns a Hetzner metadata service.
func NewHetzner(opts ...HetznerOption) *Hetzner {
	var o hetznerOptions
	for _, opt := range opts {
		opt(&o)
	}
	client := o.wrapped
	if client == nil {
		client = hcloudmeta.NewClient(o.client...)
	}
	return &Hetzner{client: client, retry: o.retry}
}

// Name implements Service.
func (h *Hetzner) Name() string { return "hetzner" }

// Load checks the endpoint and caches hostname and instance id.
func (h *Hetzner) Load(ctx context.Context) error {
	if !h.client.IsHcloudServer() {
		return ErrNotHetzner
	}

	err := retry.Do(ctx, func(context.Context) error {
		hostname, err := h.client.Hostname()
		if err != nil {
			return err
		}
		id, err := h.client.InstanceID()
		if err != nil {
			return err
		}
		h.hostname, h.instanceID = hostname, id
		return nil
	}, h.retry...)
	if err != nil {
		return fmt.Errorf("failed to load hetzner metadata: %w", err)
	}
	return nil
}

// InstanceID returns the server id read by Load.
func (h *Hetzner) InstanceID() int64 { return h.instanceID }

// GetAdminPassword implements Service.
func (h *Hetzner) GetAdminPassword(context.Context) (string, error) { return "", nil }

// GetPublicKeys implements Service.
func (h *Hetzner) GetPublicKeys(context.Context) ([]string, error) { return nil, nil }

// GetHostname implements Service.
func (h *Hetzner) GetHostname(context.Context) (string, error) { return h.hostname, nil }

// IsPasswordSet implements Service.
func (h *Hetzner) IsPasswordSet(context.Context) (bool, error) { return false, nil }

// CanPostPassword implements Service.
func (h *Hetzner) CanPostPassword() bool { return false }

// PostPassword implements Service.
func (h *Hetzner) PostPassword(context.Context, string) (bool, error) {
	return false, ErrNotSupported
}

// GetUserData implements Service.
func (h *Hetzner) GetUserData(context.Context) ([]byte, error) { return nil, nil }
