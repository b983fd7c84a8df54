package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// LoadFile reads and parses the configuration from a YAML file.
func LoadFile(path string) (*Config, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// LoadFileOrDefault behaves like LoadFile but falls back to Default when
// the file does not exist.
func LoadFileOrDefault(path string) (*Config, error) {
	cfg, err := LoadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default()
	}
	return cfg, err
}

// Default returns the built-in configuration with environment overrides.
func Default() (*Config, error) {
	return Parse(nil)
}

// Parse decodes YAML configuration data. Empty data yields the defaults.
func Parse(data []byte) (*Config, error) {
	var rawConfig map[string]interface{}
	if err := yaml.Unmarshal(data, &rawConfig); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	var cfg Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &cfg,
		ErrorUnused: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create config decoder: %w", err)
	}
	if err := decoder.Decode(rawConfig); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	applyDefaults(&cfg, rawConfig)

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	cfg.Retry = LoadRetry()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config, rawConfig map[string]interface{}) {
	if cfg.Username == "" {
		cfg.Username = DefaultUsername
	}
	if cfg.Groups == nil {
		cfg.Groups = DefaultGroups()
	}
	if _, set := rawConfig["inject_user_password"]; !set {
		cfg.InjectUserPassword = true
	}
	if cfg.CloudConfigPlugins == nil {
		cfg.CloudConfigPlugins = DefaultCloudConfigPlugins()
	}
	if cfg.MetadataServices == nil {
		cfg.MetadataServices = DefaultMetadataServices()
	}
	if cfg.ConfigDrivePath == "" {
		cfg.ConfigDrivePath = DefaultConfigDrivePath
	}
	if cfg.S3.Region == "" {
		cfg.S3.Region = DefaultS3Region
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
}

// applyEnv overrides file values from the environment.
//
// Environment Variables:
//   - CLOUDINIT_USERNAME
//   - CLOUDINIT_INJECT_USER_PASSWORD (bool)
//   - CLOUDINIT_CONFIG_DRIVE
//   - CLOUDINIT_USER_DATA
//   - CLOUDINIT_METRICS_TEXTFILE
//   - CLOUDINIT_LOG_LEVEL
//   - AWS_ACCESS_KEY_ID / AWS_SECRET_ACCESS_KEY are left to the AWS SDK.
func applyEnv(cfg *Config) error {
	if v := os.Getenv("CLOUDINIT_USERNAME"); v != "" {
		cfg.Username = v
	}
	if v := os.Getenv("CLOUDINIT_INJECT_USER_PASSWORD"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid CLOUDINIT_INJECT_USER_PASSWORD %q: %w", v, err)
		}
		cfg.InjectUserPassword = b
	}
	if v := os.Getenv("CLOUDINIT_CONFIG_DRIVE"); v != "" {
		cfg.ConfigDrivePath = v
	}
	if v := os.Getenv("CLOUDINIT_USER_DATA"); v != "" {
		cfg.UserData = v
	}
	if v := os.Getenv("CLOUDINIT_METRICS_TEXTFILE"); v != "" {
		cfg.MetricsTextfile = v
	}
	if v := os.Getenv("CLOUDINIT_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	return nil
}
