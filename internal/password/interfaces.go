package password

import "context"

// AdminPasswordSource supplies a password chosen by the cloud user.
type AdminPasswordSource interface {
	GetAdminPassword(ctx context.Context) (string, error)
}

// Generator creates random passwords.
type Generator interface {
	MaximumPasswordLength() int
	GenerateRandomPassword(length int) (string, error)
}

// AccountManager applies passwords to local accounts.
type AccountManager interface {
	Generator
	UserExists(ctx context.Context, name string) (bool, error)
	SetUserPassword(ctx context.Context, name, password string) error
}

// PublicationService is the part of a metadata service that stores the
// encrypted password.
type PublicationService interface {
	IsPasswordSet(ctx context.Context) (bool, error)
	GetPublicKeys(ctx context.Context) ([]string, error)
	PostPassword(ctx context.Context, encrypted string) (bool, error)
}
