package repository

import (
	"context"

	"yearbook/internal/domain/entity"

	"github.com/pkg/errors"
)

// ErrDesignNotFound is returned when a scope has no design record yet.
var ErrDesignNotFound = errors.New("design settings not found")

// DesignRepository persists one design record per scope.
type DesignRepository interface {
	// FindByScope loads the design record, decoded on top of the defaults.
	FindByScope(ctx context.Context, scope entity.ScopeID) (*entity.DesignSettings, error)

	// Save creates or fully overwrites the design record.
	Save(ctx context.Context, settings *entity.DesignSettings) error
}
