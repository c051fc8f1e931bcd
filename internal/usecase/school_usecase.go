package usecase

import (
	"context"

	"yearbook/internal/domain/entity"

	"github.com/google/uuid"
)

// SchoolUsecase manages tenants.
type SchoolUsecase interface {
	ListSchools(ctx context.Context) ([]*entity.School, error)
	CreateSchool(ctx context.Context, name string) (*entity.School, error)
	GetSchool(ctx context.Context, id uuid.UUID) (*entity.School, error)
}
