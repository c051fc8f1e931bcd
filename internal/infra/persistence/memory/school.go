package memory

import (
	"context"
	"slices"

	"yearbook/internal/domain/entity"
	"yearbook/internal/domain/repository"

	"github.com/google/uuid"
)

type schoolRepository struct {
	db *DB
}

// NewSchoolRepository returns a SchoolRepository over the in-memory tables.
func NewSchoolRepository(db *DB) repository.SchoolRepository {
	return &schoolRepository{db: db}
}

func (repo *schoolRepository) FindAll(_ context.Context) ([]*entity.School, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	schools := make([]*entity.School, 0, len(repo.db.schools))
	for _, school := range slices.Backward(repo.db.schools) {
		cloned := *school
		schools = append(schools, &cloned)
	}
	slices.SortStableFunc(schools, func(a, b *entity.School) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	return schools, nil
}

func (repo *schoolRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.School, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	for _, school := range repo.db.schools {
		if school.ID == id {
			cloned := *school

			return &cloned, nil
		}
	}

	return nil, repository.ErrSchoolNotFound
}

func (repo *schoolRepository) Create(_ context.Context, school *entity.School) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	if school.ID == uuid.Nil {
		school.ID = uuid.Must(uuid.NewV7())
	}
	cloned := *school
	repo.db.schools = append(repo.db.schools, &cloned)

	return nil
}
