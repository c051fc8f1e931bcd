package memory

import (
	"context"

	"yearbook/internal/domain/entity"
	domainerrors "yearbook/internal/domain/errors"
	"yearbook/internal/domain/repository"

	"github.com/google/uuid"
)

type adminRepository struct {
	db *DB
}

// NewAdminRepository returns an AdminRepository over the in-memory tables.
func NewAdminRepository(db *DB) repository.AdminRepository {
	return &adminRepository{db: db}
}

func (repo *adminRepository) Count(_ context.Context) (int64, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	return int64(len(repo.db.admins)), nil
}

func (repo *adminRepository) FindByEmail(_ context.Context, email string) (*entity.AdminAccount, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	account, ok := repo.db.admins[entity.NormalizeEmail(email)]
	if !ok {
		return nil, repository.ErrAdminNotFound
	}
	cloned := *account

	return &cloned, nil
}

func (repo *adminRepository) Create(_ context.Context, account *entity.AdminAccount) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	key := entity.NormalizeEmail(account.Email)
	if _, exists := repo.db.admins[key]; exists {
		return domainerrors.ErrConflict.WrapMessage("admin account already exists")
	}

	if account.ID == uuid.Nil {
		account.ID = uuid.Must(uuid.NewV7())
	}
	account.Email = key
	cloned := *account
	repo.db.admins[key] = &cloned

	return nil
}

func (repo *adminRepository) UpdatePasswordHash(_ context.Context, email, hash string) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	account, ok := repo.db.admins[entity.NormalizeEmail(email)]
	if !ok {
		return repository.ErrAdminNotFound
	}
	cloned := *account
	cloned.PasswordHash = hash
	repo.db.admins[cloned.Email] = &cloned

	return nil
}
