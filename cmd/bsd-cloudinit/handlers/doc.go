// Package handlers implements the business logic of the CLI commands.
//
// Collaborators are reached through package-level factory variables so tests
// can replace them.
package handlers
