// Package metadata provides the instance metadata services the directives
// read from: an OpenStack style config drive, the Hetzner Cloud metadata
// endpoint, and a null service used when nothing else is available.
package metadata
