package repository

import (
	"context"

	"yearbook/internal/domain/entity"

	"github.com/pkg/errors"
)

// ErrAdminNotFound is returned when no admin account matches.
var ErrAdminNotFound = errors.New("admin account not found")

// AdminRepository persists local administrator accounts.
type AdminRepository interface {
	// Count returns the number of admin accounts.
	Count(ctx context.Context) (int64, error)

	// FindByEmail retrieves an admin account by normalized email.
	FindByEmail(ctx context.Context, email string) (*entity.AdminAccount, error)

	// Create persists a new admin account.
	Create(ctx context.Context, account *entity.AdminAccount) error

	// UpdatePasswordHash replaces the stored hash of the account with the email.
	UpdatePasswordHash(ctx context.Context, email, hash string) error
}
