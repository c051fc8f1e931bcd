package postgres

import (
	"context"

	"yearbook/internal/domain/entity"
	domainerrors "yearbook/internal/domain/errors"
	"yearbook/internal/domain/repository"
	"yearbook/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type invitationRepository struct {
	db *gorm.DB
}

// NewInvitationRepository is the constructor for invitationRepository.
func NewInvitationRepository(db *gorm.DB) repository.InvitationRepository {
	return &invitationRepository{
		db: db,
	}
}

func (repo *invitationRepository) FindScope(ctx context.Context, email string) (entity.ScopeID, error) {
	var invitationM model.InvitationModel

	if err := repo.db.WithContext(ctx).
		Where("email = ?", entity.NormalizeEmail(email)).
		First(&invitationM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", repository.ErrInvitationNotFound
		}

		return "", domainerrors.NewDatabaseExecuteError(err, "failed to find invitation")
	}

	return entity.ScopeID(invitationM.ScopeID), nil
}

func (repo *invitationRepository) Create(ctx context.Context, email string, scope entity.ScopeID) error {
	invitationM := &model.InvitationModel{
		Email:   entity.NormalizeEmail(email),
		ScopeID: scope.String(),
	}

	if err := repo.db.WithContext(ctx).Create(invitationM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateInvitation
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create invitation")
	}

	return nil
}

func (repo *invitationRepository) Delete(ctx context.Context, email string) error {
	if err := repo.db.WithContext(ctx).
		Where("email = ?", entity.NormalizeEmail(email)).
		Delete(&model.InvitationModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete invitation")
	}

	return nil
}
