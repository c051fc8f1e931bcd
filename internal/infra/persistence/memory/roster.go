package memory

import (
	"cmp"
	"context"
	"slices"

	"yearbook/internal/domain/entity"
	"yearbook/internal/domain/repository"

	"github.com/google/uuid"
)

type rosterRepository struct {
	db *DB
}

// NewRosterRepository returns a RosterRepository over the in-memory tables.
func NewRosterRepository(db *DB) repository.RosterRepository {
	return &rosterRepository{db: db}
}

func (repo *rosterRepository) FindByScope(_ context.Context, scope entity.ScopeID) ([]*entity.User, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	users := make([]*entity.User, 0)
	for _, user := range repo.db.roster {
		if user.Scope == scope {
			users = append(users, cloneUser(user))
		}
	}

	slices.SortFunc(users, func(a, b *entity.User) int {
		return cmp.Or(
			cmp.Compare(a.Position, b.Position),
			a.InvitedAt.Compare(b.InvitedAt),
			cmp.Compare(a.ID.String(), b.ID.String()),
		)
	})

	return users, nil
}

func (repo *rosterRepository) FindByID(_ context.Context, scope entity.ScopeID, id uuid.UUID) (*entity.User, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	user, ok := repo.db.roster[id]
	if !ok || user.Scope != scope {
		return nil, repository.ErrUserNotFound
	}

	return cloneUser(user), nil
}

func (repo *rosterRepository) FindByEmail(_ context.Context, scope entity.ScopeID, email string) (*entity.User, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	if user := repo.findByEmail(scope, entity.NormalizeEmail(email)); user != nil {
		return cloneUser(user), nil
	}

	return nil, repository.ErrUserNotFound
}

func (repo *rosterRepository) NextPosition(_ context.Context, scope entity.ScopeID) (int, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	next := 0
	for _, user := range repo.db.roster {
		if user.Scope == scope && user.Position >= next {
			next = user.Position + 1
		}
	}

	return next, nil
}

func (repo *rosterRepository) Create(_ context.Context, user *entity.User) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	if user.ID == uuid.Nil {
		user.ID = uuid.Must(uuid.NewV7())
	}
	user.Email = entity.NormalizeEmail(user.Email)

	if _, exists := repo.db.roster[user.ID]; exists {
		return repository.ErrDuplicateUser
	}
	if repo.findByEmail(user.Scope, user.Email) != nil {
		return repository.ErrDuplicateUser
	}

	repo.db.roster[user.ID] = cloneUser(user)

	return nil
}

func (repo *rosterRepository) Update(_ context.Context, user *entity.User) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	existing, ok := repo.db.roster[user.ID]
	if !ok || existing.Scope != user.Scope {
		return repository.ErrUserNotFound
	}

	email := entity.NormalizeEmail(user.Email)
	if other := repo.findByEmail(user.Scope, email); other != nil && other.ID != user.ID {
		return repository.ErrDuplicateUser
	}

	updated := cloneUser(user)
	updated.Email = email
	updated.InvitedAt = existing.InvitedAt
	repo.db.roster[user.ID] = updated

	return nil
}

func (repo *rosterRepository) Delete(_ context.Context, scope entity.ScopeID, id uuid.UUID) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	if user, ok := repo.db.roster[id]; ok && user.Scope == scope {
		delete(repo.db.roster, id)
	}

	return nil
}

// findByEmail expects the caller to hold the lock.
func (repo *rosterRepository) findByEmail(scope entity.ScopeID, email string) *entity.User {
	for _, user := range repo.db.roster {
		if user.Scope == scope && user.Email == email {
			return user
		}
	}

	return nil
}
