package memory

import (
	"context"
	"encoding/json"

	"yearbook/internal/domain/entity"
	"yearbook/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type pageRepository struct {
	db *DB
}

// NewPageRepository returns a PageRepository over the in-memory tables.
func NewPageRepository(db *DB) repository.PageRepository {
	return &pageRepository{db: db}
}

func (repo *pageRepository) FindByUserID(_ context.Context, userID uuid.UUID) (*entity.PageEntry, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	page, ok := repo.db.pages[userID]
	if !ok {
		return nil, repository.ErrPageNotFound
	}

	return clonePage(page), nil
}

func (repo *pageRepository) FindByUserIDs(_ context.Context, userIDs []uuid.UUID) (map[uuid.UUID]*entity.PageEntry, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	pages := make(map[uuid.UUID]*entity.PageEntry, len(userIDs))
	for _, id := range userIDs {
		if page, ok := repo.db.pages[id]; ok {
			pages[id] = clonePage(page)
		}
	}

	return pages, nil
}

func (repo *pageRepository) Save(_ context.Context, page *entity.PageEntry) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	repo.db.pages[page.UserID] = clonePage(page)

	return nil
}

type designRepository struct {
	db *DB
	// inTx is set for repositories handed out by Execute, which already
	// holds txMu.
	inTx bool
}

// NewDesignRepository returns a DesignRepository that keeps each design as its
// serialized document, like the relational store does.
func NewDesignRepository(db *DB) repository.DesignRepository {
	return &designRepository{db: db}
}

func (repo *designRepository) FindByScope(_ context.Context, scope entity.ScopeID) (*entity.DesignSettings, error) {
	repo.db.mu.RLock()
	raw, ok := repo.db.designs[scope]
	repo.db.mu.RUnlock()

	if !ok {
		return nil, repository.ErrDesignNotFound
	}

	settings, err := entity.DecodeDesignSettings(scope, raw)
	if err != nil {
		return nil, errors.Wrap(err, "stored design settings are invalid")
	}

	return settings, nil
}

func (repo *designRepository) Save(_ context.Context, settings *entity.DesignSettings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return errors.Wrap(err, "failed to encode design settings")
	}

	// A write outside a transaction waits for the running one, so its
	// rollback cannot discard this record.
	if !repo.inTx {
		repo.db.txMu.Lock()
		defer repo.db.txMu.Unlock()
	}

	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	repo.db.designs[settings.Scope] = raw

	return nil
}
