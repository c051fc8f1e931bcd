package postgres

import (
	"context"
	"encoding/json"

	"yearbook/internal/domain/entity"
	domainerrors "yearbook/internal/domain/errors"
	"yearbook/internal/domain/repository"
	"yearbook/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// designRepository stores each scope's DesignSettings as a versioned jsonb document.
type designRepository struct {
	db *gorm.DB
}

// NewDesignRepository is the constructor for designRepository.
func NewDesignRepository(db *gorm.DB) repository.DesignRepository {
	return &designRepository{
		db: db,
	}
}

// FindByScope loads the stored document on top of the current defaults.
func (repo *designRepository) FindByScope(ctx context.Context, scope entity.ScopeID) (*entity.DesignSettings, error) {
	var designM model.DesignSettingsModel

	if err := repo.db.WithContext(ctx).
		Where("scope_id = ?", scope.String()).
		First(&designM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrDesignNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find design settings")
	}

	settings, err := entity.DecodeDesignSettings(scope, designM.Settings)
	if err != nil {
		return nil, errors.Wrap(err, "stored design settings are invalid")
	}
	settings.UpdatedAt = designM.UpdatedAt

	return settings, nil
}

// Save upserts the whole document.
func (repo *designRepository) Save(ctx context.Context, settings *entity.DesignSettings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return errors.Wrap(err, "failed to encode design settings")
	}

	designM := &model.DesignSettingsModel{
		ScopeID:   settings.Scope.String(),
		Version:   entity.DesignSettingsVersion,
		Settings:  datatypes.JSON(raw),
		UpdatedAt: settings.UpdatedAt,
	}

	if err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "scope_id"}},
			UpdateAll: true,
		}).
		Create(designM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to save design settings")
	}

	return nil
}
