// Package osutils adapts the operating system's account and hostname tools
// to the interfaces the directives depend on.
//
// The FreeBSD implementation shells out to pw(8), hostname(1) and sysrc(8)
// through a Runner so tests can record the commands instead of running them.
// Passwords are always written to the child's stdin and never appear in argv.
package osutils
