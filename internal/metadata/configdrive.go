package metadata

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	configDriveMetaData = "openstack/latest/meta_data.json"
	configDriveUserData = "openstack/latest/user_data"
)

// ConfigDrive reads an OpenStack config drive mounted at a directory.
// It is read-only: passwords cannot be posted back.
type ConfigDrive struct {
	fsys fs.FS
	path string
	meta *configDriveMeta
}

var _ Service = (*ConfigDrive)(nil)

// NewConfigDrive returns a service for the config drive mounted at path.
func NewConfigDrive(path string) *ConfigDrive {
	return &ConfigDrive{fsys: os.DirFS(path), path: path}
}

type configDriveMeta struct {
	UUID       string            `yaml:"uuid"`
	Hostname   string            `yaml:"hostname"`
	Name       string            `yaml:"name"`
	AdminPass  string            `yaml:"admin_pass"`
	Meta       map[string]string `yaml:"meta"`
	PublicKeys publicKeys        `yaml:"public_keys"`
	Keys       []configDriveKey  `yaml:"keys"`
}

type configDriveKey struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
	Data string `yaml:"data"`
}

// publicKeys keeps document order for both the mapping form
// ({"name": "ssh-rsa ..."}) and the list form.
type publicKeys []string

func (p *publicKeys) UnmarshalYAML(value *yaml.Node) error {
	var keys []string
	switch value.Kind {
	case yaml.MappingNode:
		for i := 1; i < len(value.Content); i += 2 {
			keys = append(keys, value.Content[i].Value)
		}
	case yaml.SequenceNode:
		if err := value.Decode(&keys); err != nil {
			return err
		}
	case yaml.ScalarNode:
		if value.Tag != "!!null" {
			keys = []string{value.Value}
		}
	default:
		return fmt.Errorf("public_keys: unexpected YAML node kind %d", value.Kind)
	}
	*p = keys
	return nil
}

// Name implements Service.
func (c *ConfigDrive) Name() string { return "configdrive" }

// Load reads meta_data.json.
func (c *ConfigDrive) Load(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := fs.ReadFile(c.fsys, configDriveMetaData)
	if err != nil {
		return fmt.Errorf("failed to read config drive at %s: %w", c.path, err)
	}

	var meta configDriveMeta
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return fmt.Errorf("failed to parse %s: %w", filepath.Join(c.path, configDriveMetaData), err)
	}
	c.meta = &meta
	return nil
}

// GetAdminPassword returns admin_pass, falling back to meta.admin_pass.
func (c *ConfigDrive) GetAdminPassword(context.Context) (string, error) {
	if c.meta == nil {
		return "", nil
	}
	if c.meta.AdminPass != "" {
		return c.meta.AdminPass, nil
	}
	return c.meta.Meta["admin_pass"], nil
}

// GetPublicKeys returns public_keys, or the ssh entries of keys when
// public_keys is absent.
func (c *ConfigDrive) GetPublicKeys(context.Context) ([]string, error) {
	if c.meta == nil {
		return nil, nil
	}
	var keys []string
	for _, k := range c.meta.PublicKeys {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	if len(keys) > 0 {
		return keys, nil
	}
	for _, k := range c.meta.Keys {
		if k.Type == "ssh" && strings.TrimSpace(k.Data) != "" {
			keys = append(keys, strings.TrimSpace(k.Data))
		}
	}
	return keys, nil
}

// GetHostname implements Service.
func (c *ConfigDrive) GetHostname(context.Context) (string, error) {
	if c.meta == nil {
		return "", nil
	}
	if c.meta.Hostname != "" {
		return c.meta.Hostname, nil
	}
	return c.meta.Name, nil
}

// IsPasswordSet implements Service.
func (c *ConfigDrive) IsPasswordSet(context.Context) (bool, error) { return false, nil }

// CanPostPassword implements Service.
func (c *ConfigDrive) CanPostPassword() bool { return false }

// PostPassword implements Service.
func (c *ConfigDrive) PostPassword(context.Context, string) (bool, error) {
	return false, ErrNotSupported
}

// GetUserData returns openstack/latest/user_data, or nil when the drive has
// none.
func (c *ConfigDrive) GetUserData(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(c.fsys, configDriveUserData)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read user data: %w", err)
	}
	return data, nil
}
