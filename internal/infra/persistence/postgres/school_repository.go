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

type schoolRepository struct {
	db *gorm.DB
}

// NewSchoolRepository is the constructor for schoolRepository.
func NewSchoolRepository(db *gorm.DB) repository.SchoolRepository {
	return &schoolRepository{
		db: db,
	}
}

func (repo *schoolRepository) FindAll(ctx context.Context) ([]*entity.School, error) {
	var schoolModels []*model.SchoolModel

	if err := repo.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&schoolModels).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list schools")
	}

	schools := make([]*entity.School, 0, len(schoolModels))
	for _, schoolM := range schoolModels {
		schools = append(schools, &entity.School{ID: schoolM.ID, Name: schoolM.Name, CreatedAt: schoolM.CreatedAt})
	}

	return schools, nil
}

func (repo *schoolRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.School, error) {
	var schoolM model.SchoolModel

	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&schoolM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSchoolNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find school")
	}

	return &entity.School{ID: schoolM.ID, Name: schoolM.Name, CreatedAt: schoolM.CreatedAt}, nil
}

func (repo *schoolRepository) Create(ctx context.Context, school *entity.School) error {
	if school.ID == uuid.Nil {
		school.ID = uuid.Must(uuid.NewV7())
	}

	schoolM := &model.SchoolModel{ID: school.ID, Name: school.Name, CreatedAt: school.CreatedAt}
	if err := repo.db.WithContext(ctx).Create(schoolM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create school")
	}
	school.CreatedAt = schoolM.CreatedAt

	return nil
}
