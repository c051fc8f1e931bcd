package memory

import (
	"context"

	"yearbook/internal/domain/entity"
	"yearbook/internal/domain/repository"
)

type invitationRepository struct {
	db *DB
}

// NewInvitationRepository returns an InvitationRepository over the in-memory tables.
func NewInvitationRepository(db *DB) repository.InvitationRepository {
	return &invitationRepository{db: db}
}

func (repo *invitationRepository) FindScope(_ context.Context, email string) (entity.ScopeID, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	scope, ok := repo.db.invitations[entity.NormalizeEmail(email)]
	if !ok {
		return "", repository.ErrInvitationNotFound
	}

	return scope, nil
}

func (repo *invitationRepository) Create(_ context.Context, email string, scope entity.ScopeID) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	key := entity.NormalizeEmail(email)
	if _, exists := repo.db.invitations[key]; exists {
		return repository.ErrDuplicateInvitation
	}
	repo.db.invitations[key] = scope

	return nil
}

func (repo *invitationRepository) Delete(_ context.Context, email string) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	delete(repo.db.invitations, entity.NormalizeEmail(email))

	return nil
}
