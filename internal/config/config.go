package config

// Config holds the settings for one provisioning run.
type Config struct {
	// Username is the account managed by the users and set_user_password
	// directives when the document does not name one.
	Username string `mapstructure:"username"`

	// Groups are added to Username when it is created.
	Groups []string `mapstructure:"groups"`

	// InjectUserPassword uses the admin password supplied by the metadata
	// service instead of reusing or generating one.
	InjectUserPassword bool `mapstructure:"inject_user_password"`

	// CloudConfigPlugins lists directive names ordered by priority.
	CloudConfigPlugins []string `mapstructure:"cloud_config_plugins"`

	// MetadataServices lists the metadata services to probe, in order.
	MetadataServices []string `mapstructure:"metadata_services"`

	// ConfigDrivePath is the mount point of an OpenStack config drive.
	ConfigDrivePath string `mapstructure:"config_drive_path"`

	// UserData overrides where the cloud-config document is read from:
	// a local path or an s3://bucket/key URI. Empty means the metadata service.
	UserData string `mapstructure:"user_data"`

	// MetricsTextfile, when set, receives directive metrics in the
	// node_exporter textfile format at the end of a run.
	MetricsTextfile string `mapstructure:"metrics_textfile"`

	S3  S3Config  `mapstructure:"s3"`
	Log LogConfig `mapstructure:"log"`

	// Retry is loaded from the environment only.
	Retry *Retry `mapstructure:"-"`
}

// S3Config configures the S3 user-data source.
type S3Config struct {
	Region    string `mapstructure:"region"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	PathStyle bool   `mapstructure:"path_style"`
}

// LogConfig configures the run logger.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}
