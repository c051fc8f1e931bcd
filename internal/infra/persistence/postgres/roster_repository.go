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

// rosterRepository implements the repository.RosterRepository interface.
type rosterRepository struct {
	db *gorm.DB
}

// NewRosterRepository is the constructor for rosterRepository.
func NewRosterRepository(db *gorm.DB) repository.RosterRepository {
	return &rosterRepository{
		db: db,
	}
}

// FindByScope returns the roster of a scope in insertion order. Concurrent
// invitations may share a position; invitation time and ID break the tie.
func (repo *rosterRepository) FindByScope(ctx context.Context, scope entity.ScopeID) ([]*entity.User, error) {
	var userModels []*model.RosterUserModel

	if err := repo.db.WithContext(ctx).
		Where("scope_id = ?", scope.String()).
		Order("position ASC, invited_at ASC, id ASC").
		Find(&userModels).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list roster")
	}

	users := make([]*entity.User, 0, len(userModels))
	for _, userM := range userModels {
		users = append(users, toUserDomain(userM))
	}

	return users, nil
}

// FindByID retrieves a roster entry by ID within the scope.
func (repo *rosterRepository) FindByID(ctx context.Context, scope entity.ScopeID, id uuid.UUID) (*entity.User, error) {
	var userM model.RosterUserModel

	if err := repo.db.WithContext(ctx).
		Where("scope_id = ? AND id = ?", scope.String(), id).
		First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find roster user by ID")
	}

	return toUserDomain(&userM), nil
}

// FindByEmail retrieves a roster entry by email within the scope.
func (repo *rosterRepository) FindByEmail(ctx context.Context, scope entity.ScopeID, email string) (*entity.User, error) {
	var userM model.RosterUserModel

	if err := repo.db.WithContext(ctx).
		Where("scope_id = ? AND email = ?", scope.String(), entity.NormalizeEmail(email)).
		First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find roster user by email")
	}

	return toUserDomain(&userM), nil
}

// NextPosition returns one past the highest position in use.
func (repo *rosterRepository) NextPosition(ctx context.Context, scope entity.ScopeID) (int, error) {
	var maxPosition int

	if err := repo.db.WithContext(ctx).
		Model(&model.RosterUserModel{}).
		Where("scope_id = ?", scope.String()).
		Select("COALESCE(MAX(position), -1)").
		Scan(&maxPosition).Error; err != nil {
		return 0, domainerrors.NewDatabaseExecuteError(err, "failed to read roster position")
	}

	return maxPosition + 1, nil
}

// Create adds a roster entry.
func (repo *rosterRepository) Create(ctx context.Context, user *entity.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.Must(uuid.NewV7())
	}
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateUser
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required roster information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create roster user")
	}

	return nil
}

// Update overwrites a roster entry.
func (repo *rosterRepository) Update(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	result := repo.db.WithContext(ctx).
		Model(&model.RosterUserModel{}).
		Where("scope_id = ? AND id = ?", userM.ScopeID, userM.ID).
		Select("*").
		Omit("id", "scope_id", "invited_at").
		Updates(userM)
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return repository.ErrDuplicateUser
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update roster user")
	}

	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// Delete removes a roster entry; a missing entry is not an error.
func (repo *rosterRepository) Delete(ctx context.Context, scope entity.ScopeID, id uuid.UUID) error {
	if err := repo.db.WithContext(ctx).
		Where("scope_id = ? AND id = ?", scope.String(), id).
		Delete(&model.RosterUserModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete roster user")
	}

	return nil
}

// --- Mapper Functions ---

// toUserDomain converts a GORM RosterUserModel to a domain User entity.
func toUserDomain(data *model.RosterUserModel) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		ID:             data.ID,
		Scope:          entity.ScopeID(data.ScopeID),
		Email:          data.Email,
		Name:           data.Name,
		Phone:          data.Phone,
		PhotoURL:       data.PhotoURL,
		PasswordHash:   data.PasswordHash,
		Role:           entity.RoleFromString(data.Role),
		Registered:     data.Registered,
		PageSubmitted:  data.PageSubmitted,
		DeadlineExempt: data.DeadlineExempt,
		Position:       data.Position,
		InvitedAt:      data.InvitedAt,
		RegisteredAt:   data.RegisteredAt,
		UpdatedAt:      data.UpdatedAt,
	}
}

// fromUserDomain converts a domain User entity to a GORM RosterUserModel.
func fromUserDomain(data *entity.User) *model.RosterUserModel {
	if data == nil {
		return nil
	}

	return &model.RosterUserModel{
		ID:             data.ID,
		ScopeID:        data.Scope.String(),
		Email:          entity.NormalizeEmail(data.Email),
		Name:           data.Name,
		Phone:          data.Phone,
		PhotoURL:       data.PhotoURL,
		PasswordHash:   data.PasswordHash,
		Role:           data.Role.String(),
		Registered:     data.Registered,
		PageSubmitted:  data.PageSubmitted,
		DeadlineExempt: data.DeadlineExempt,
		Position:       data.Position,
		InvitedAt:      data.InvitedAt,
		RegisteredAt:   data.RegisteredAt,
		UpdatedAt:      data.UpdatedAt,
	}
}
