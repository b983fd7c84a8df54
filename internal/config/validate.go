package config

import (
	"fmt"
	"regexp"
	"strings"
)

// ValidMetadataServices contains the metadata services that can be probed.
var ValidMetadataServices = map[string]bool{
	MetadataConfigDrive: true,
	MetadataHetzner:     true,
}

var validLogFormats = map[string]bool{
	"auto":    true,
	"json":    true,
	"console": true,
}

var validLogLevels = map[string]bool{
	"debug":   true,
	"info":    true,
	"warn":    true,
	"warning": true,
	"error":   true,
}

// usernamePattern follows pw(8): no leading dash, no colon, at most 32 bytes.
var usernamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.-]{0,31}$`)

// Validate checks the configuration for common errors and returns a detailed error if validation fails.
func (c *Config) Validate() error {
	if !usernamePattern.MatchString(c.Username) {
		return fmt.Errorf("invalid username %q", c.Username)
	}
	for _, g := range c.Groups {
		if !usernamePattern.MatchString(g) {
			return fmt.Errorf("invalid group name %q", g)
		}
	}

	if err := validateUnique("cloud_config_plugins", c.CloudConfigPlugins); err != nil {
		return err
	}

	if len(c.MetadataServices) == 0 {
		return fmt.Errorf("metadata_services must not be empty")
	}
	if err := validateUnique("metadata_services", c.MetadataServices); err != nil {
		return err
	}
	for _, name := range c.MetadataServices {
		if !ValidMetadataServices[name] {
			return fmt.Errorf("unknown metadata service %q", name)
		}
	}

	if !validLogLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}
	if !validLogFormats[strings.ToLower(c.Log.Format)] {
		return fmt.Errorf("invalid log format %q", c.Log.Format)
	}

	if (c.S3.AccessKey == "") != (c.S3.SecretKey == "") {
		return fmt.Errorf("s3.access_key and s3.secret_key must be set together")
	}

	return nil
}

func validateUnique(field string, values []string) error {
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		if v == "" {
			return fmt.Errorf("%s contains an empty entry", field)
		}
		if seen[v] {
			return fmt.Errorf("%s contains %q more than once", field, v)
		}
		seen[v] = true
	}
	return nil
}
