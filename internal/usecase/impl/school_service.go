package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"yearbook/internal/domain/entity"
	domainerrors "yearbook/internal/domain/errors"
	"yearbook/internal/domain/repository"
	"yearbook/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// schoolService implements the SchoolUsecase interface.
type schoolService struct {
	schoolRepo repository.SchoolRepository
	logger     *slog.Logger
}

// NewSchoolService is the constructor for schoolService.
func NewSchoolService(schoolRepo repository.SchoolRepository, logger *slog.Logger) usecase.SchoolUsecase {
	return &schoolService{schoolRepo: schoolRepo, logger: logger}
}

func (srv *schoolService) ListSchools(ctx context.Context) ([]*entity.School, error) {
	schools, err := srv.schoolRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list schools")
	}

	return schools, nil
}

func (srv *schoolService) CreateSchool(ctx context.Context, name string) (*entity.School, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("school name is required")
	}

	school := &entity.School{ID: uuid.New(), Name: name, CreatedAt: time.Now().UTC()}
	if err := srv.schoolRepo.Create(ctx, school); err != nil {
		return nil, errors.Wrap(err, "failed to create school")
	}

	srv.logger.Info("School created", slog.Any("schoolID", school.ID), slog.String("name", name))

	return school, nil
}

func (srv *schoolService) GetSchool(ctx context.Context, id uuid.UUID) (*entity.School, error) {
	school, err := srv.schoolRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrSchoolNotFound) {
		return nil, domainerrors.ErrNotFound.WithDetails("school not found")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find school")
	}

	return school, nil
}
