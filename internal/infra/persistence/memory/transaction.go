package memory

import (
	"context"

	"yearbook/internal/domain/repository"
)

type transactionManager struct {
	db *DB
}

type repositoryFactory struct {
	db *DB
}

// NewTransactionManager returns a TransactionManager over the in-memory tables.
func NewTransactionManager(db *DB) repository.TransactionManager {
	return &transactionManager{db: db}
}

func (f *repositoryFactory) RosterRepo() repository.RosterRepository {
	return NewRosterRepository(f.db)
}

func (f *repositoryFactory) InvitationRepo() repository.InvitationRepository {
	return NewInvitationRepository(f.db)
}

func (f *repositoryFactory) PageRepo() repository.PageRepository {
	return NewPageRepository(f.db)
}

func (f *repositoryFactory) DesignRepo() repository.DesignRepository {
	return &designRepository{db: f.db, inTx: true}
}

func (f *repositoryFactory) AdminRepo() repository.AdminRepository {
	return NewAdminRepository(f.db)
}

// Execute runs fn with exclusive access to the transactional tables and
// restores them if fn fails or panics.
func (tm *transactionManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tm.db.txMu.Lock()
	defer tm.db.txMu.Unlock()

	before := tm.db.takeSnapshot()

	defer func() {
		if r := recover(); r != nil {
			tm.db.restore(before)
			panic(r)
		}
	}()

	if err := fn(&repositoryFactory{db: tm.db}); err != nil {
		tm.db.restore(before)

		return err
	}

	return nil
}
