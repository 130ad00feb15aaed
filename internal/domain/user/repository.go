package user

import "context"

// UserRepository defines data access for user accounts and identities.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)

	// AdminEmails returns the addresses that receive edit-request notices.
	AdminEmails(ctx context.Context) ([]string, error)
}
