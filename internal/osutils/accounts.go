package osutils

import "context"

// Accounts manages local user accounts.
type Accounts interface {
	UserExists(ctx context.Context, name string) (bool, error)
	CreateUser(ctx context.Context, name, password string) error
	AddUserToGroup(ctx context.Context, name, group string) error
	SetUserPassword(ctx context.Context, name, password string) error
	GenerateRandomPassword(length int) (string, error)
	MaximumPasswordLength() int
}

// HostnameSetter changes the machine's hostname.
type HostnameSetter interface {
	SetHostname(ctx context.Context, name string) error
}
