package repository

import (
	"context"

	"yearbook/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrSchoolNotFound is returned when a school does not exist.
var ErrSchoolNotFound = errors.New("school not found")

// SchoolRepository persists schools.
type SchoolRepository interface {
	// FindAll returns every school, newest first.
	FindAll(ctx context.Context) ([]*entity.School, error)

	// FindByID retrieves a school by ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.School, error)

	// Create persists a new school.
	Create(ctx context.Context, school *entity.School) error
}
