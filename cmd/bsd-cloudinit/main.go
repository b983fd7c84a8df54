// Package main is the entry point for the bsd-cloudinit CLI.
//
// bsd-cloudinit runs once at first boot of a FreeBSD or pfSense image. It
// reads the instance's cloud-config document, executes the supported
// directives in a fixed priority order, and provisions the administrator
// account, returning its password encrypted to the metadata service where
// the service accepts it.
//
// Commands: run, plan, keygen, decrypt-password, version.
//
// For detailed usage information, run:
//
//	bsd-cloudinit --help
package main

import (
	"fmt"
	"os"

	"github.com/rrbarreto/bsd-cloudinit-pfsense/cmd/bsd-cloudinit/commands"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
