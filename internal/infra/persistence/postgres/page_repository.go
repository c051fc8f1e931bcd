package postgres

import (
	"context"

	"yearbook/internal/domain/entity"
	domainerrors "yearbook/internal/domain/errors"
	"yearbook/internal/domain/repository"
	"yearbook/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// pageRepository implements the repository.PageRepository interface.
type pageRepository struct {
	db *gorm.DB
}

// NewPageRepository is the constructor for pageRepository.
func NewPageRepository(db *gorm.DB) repository.PageRepository {
	return &pageRepository{
		db: db,
	}
}

// FindByUserID retrieves the page entry of a user.
func (repo *pageRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.PageEntry, error) {
	var pageM model.PageEntryModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&pageM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPageNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find page entry")
	}

	return toPageDomain(&pageM), nil
}

// FindByUserIDs retrieves the entries of several users in one query.
func (repo *pageRepository) FindByUserIDs(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]*entity.PageEntry, error) {
	pages := make(map[uuid.UUID]*entity.PageEntry, len(userIDs))
	if len(userIDs) == 0 {
		return pages, nil
	}

	var pageModels []*model.PageEntryModel
	if err := repo.db.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Find(&pageModels).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find page entries")
	}

	for _, pageM := range pageModels {
		pages[pageM.UserID] = toPageDomain(pageM)
	}

	return pages, nil
}

// Save upserts the entry, overwriting every column.
func (repo *pageRepository) Save(ctx context.Context, page *entity.PageEntry) error {
	pageM := fromPageDomain(page)

	if err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			UpdateAll: true,
		}).
		Create(pageM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to save page entry")
	}

	return nil
}

// --- Mapper Functions ---

func toPageDomain(data *model.PageEntryModel) *entity.PageEntry {
	if data == nil {
		return nil
	}

	gallery := []string(data.GalleryPhotoURLs)
	if gallery == nil {
		gallery = []string{}
	}

	return &entity.PageEntry{
		UserID:           data.UserID,
		Quote:            data.Quote,
		Memories:         data.Memories,
		ProfilePhotoURL:  data.ProfilePhotoURL,
		GalleryPhotoURLs: gallery,
		UpdatedAt:        data.UpdatedAt,
	}
}

func fromPageDomain(data *entity.PageEntry) *model.PageEntryModel {
	if data == nil {
		return nil
	}

	gallery := data.GalleryPhotoURLs
	if gallery == nil {
		gallery = []string{}
	}

	return &model.PageEntryModel{
		UserID:           data.UserID,
		Quote:            data.Quote,
		Memories:         data.Memories,
		ProfilePhotoURL:  data.ProfilePhotoURL,
		GalleryPhotoURLs: datatypes.JSONSlice[string](gallery),
		UpdatedAt:        data.UpdatedAt,
	}
}
