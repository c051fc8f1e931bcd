package repository

import (
	"context"

	"yearbook/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrPageNotFound is returned when nothing was saved for the user yet.
var ErrPageNotFound = errors.New("page not found")

// PageRepository persists page entries keyed by user ID.
type PageRepository interface {
	// FindByUserID retrieves the page entry of a user.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.PageEntry, error)

	// FindByUserIDs retrieves the saved entries of several users. Users without an entry are absent from the map.
	FindByUserIDs(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]*entity.PageEntry, error)

	// Save creates or fully overwrites the entry.
	Save(ctx context.Context, page *entity.PageEntry) error
}
