package config

// Defaults applied when a field is not configured.
const (
	DefaultUsername        = "admin"
	DefaultConfigDrivePath = "/media/configdrive"
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "auto"
	DefaultS3Region        = "us-east-1"

	// DefaultConfigPath is read by the CLI when --config is not given.
	DefaultConfigPath = "/usr/local/etc/bsd-cloudinit.yaml"
)

// Metadata service names accepted in metadata_services.
const (
	MetadataConfigDrive = "configdrive"
	MetadataHetzner     = "hetzner"
)

// DefaultGroups returns the groups given to the default user.
func DefaultGroups() []string {
	return []string{"admins"}
}

// DefaultCloudConfigPlugins returns the default directive priority.
// Account creation precedes password provisioning so that a password
// generated for a new account is reused instead of replaced.
func DefaultCloudConfigPlugins() []string {
	return []string{"set_hostname", "users", "set_user_password", "write_files"}
}

// DefaultMetadataServices returns the default probe order.
func DefaultMetadataServices() []string {
	return []string{MetadataConfigDrive, MetadataHetzner}
}
