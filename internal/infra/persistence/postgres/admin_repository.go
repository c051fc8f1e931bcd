package postgres

import (
	"context"

	"yearbook/internal/domain/entity"
	domainerrors "yearbook/internal/domain/errors"
	"yearbook/internal/domain/repository"
	"yearbook/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type adminRepository struct {
	db *gorm.DB
}

// NewAdminRepository is the constructor for adminRepository.
func NewAdminRepository(db *gorm.DB) repository.AdminRepository {
	return &adminRepository{
		db: db,
	}
}

func (repo *adminRepository) Count(ctx context.Context) (int64, error) {
	var count int64

	if err := repo.db.WithContext(ctx).Model(&model.AdminAccountModel{}).Count(&count).Error; err != nil {
		return 0, domainerrors.NewDatabaseExecuteError(err, "failed to count admin accounts")
	}

	return count, nil
}

func (repo *adminRepository) FindByEmail(ctx context.Context, email string) (*entity.AdminAccount, error) {
	var adminM model.AdminAccountModel

	if err := repo.db.WithContext(ctx).
		Where("email = ?", entity.NormalizeEmail(email)).
		First(&adminM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAdminNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find admin account")
	}

	return &entity.AdminAccount{
		ID:           adminM.ID,
		Email:        adminM.Email,
		PasswordHash: adminM.PasswordHash,
		CreatedAt:    adminM.CreatedAt,
	}, nil
}

func (repo *adminRepository) Create(ctx context.Context, account *entity.AdminAccount) error {
	if account.ID == uuid.Nil {
		account.ID = uuid.Must(uuid.NewV7())
	}

	adminM := &model.AdminAccountModel{
		ID:           account.ID,
		Email:        entity.NormalizeEmail(account.Email),
		PasswordHash: account.PasswordHash,
		CreatedAt:    account.CreatedAt,
	}

	if err := repo.db.WithContext(ctx).Create(adminM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("admin account already exists")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create admin account")
	}

	return nil
}

func (repo *adminRepository) UpdatePasswordHash(ctx context.Context, email, hash string) error {
	result := repo.db.WithContext(ctx).
		Model(&model.AdminAccountModel{}).
		Where("email = ?", entity.NormalizeEmail(email)).
		Update("password_hash", hash)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update admin password")
	}

	if result.RowsAffected == 0 {
		return repository.ErrAdminNotFound
	}

	return nil
}
