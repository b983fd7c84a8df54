// Package config defines the configuration of a provisioning run.
//
// A [Config] is read from a YAML file by [LoadFile], completed with
// defaults, overridden from CLOUDINIT_* environment variables and validated.
// It is passed explicitly to the directive executor and to the directive
// handlers; nothing in the engine reads process-wide configuration.
package config
