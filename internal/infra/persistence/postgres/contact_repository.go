package postgres

import (
	"context"

	"yearbook/internal/domain/entity"
	domainerrors "yearbook/internal/domain/errors"
	"yearbook/internal/domain/repository"
	"yearbook/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type contactRequestRepository struct {
	db *gorm.DB
}

// NewContactRequestRepository is the constructor for contactRequestRepository.
func NewContactRequestRepository(db *gorm.DB) repository.ContactRequestRepository {
	return &contactRequestRepository{
		db: db,
	}
}

func (repo *contactRequestRepository) FindAll(ctx context.Context) ([]*entity.ContactRequest, error) {
	var requestModels []*model.ContactRequestModel

	if err := repo.db.WithContext(ctx).
		Order("date DESC").
		Find(&requestModels).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list contact requests")
	}

	requests := make([]*entity.ContactRequest, 0, len(requestModels))
	for _, requestM := range requestModels {
		requests = append(requests, &entity.ContactRequest{
			ID:         requestM.ID,
			SchoolName: requestM.SchoolName,
			Name:       requestM.Name,
			Email:      requestM.Email,
			Phone:      requestM.Phone,
			Date:       requestM.Date,
		})
	}

	return requests, nil
}

func (repo *contactRequestRepository) Create(ctx context.Context, request *entity.ContactRequest) error {
	if request.ID == uuid.Nil {
		request.ID = uuid.Must(uuid.NewV7())
	}

	requestM := &model.ContactRequestModel{
		ID:         request.ID,
		SchoolName: request.SchoolName,
		Name:       request.Name,
		Email:      request.Email,
		Phone:      request.Phone,
		Date:       request.Date,
	}

	if err := repo.db.WithContext(ctx).Create(requestM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create contact request")
	}

	return nil
}

func (repo *contactRequestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.ContactRequestModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete contact request")
	}

	if result.RowsAffected == 0 {
		return repository.ErrContactRequestNotFound
	}

	return nil
}
