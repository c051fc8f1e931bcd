// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"yearbook/internal/domain/repository"
	"yearbook/internal/errors"

	"gorm.io/gorm"
)

// gormTransactionManager implements the domain's TransactionManager interface using GORM.
type gormTransactionManager struct {
	db *gorm.DB
}

// gormRepositoryFactory implements the domain's RepositoryFactory interface.
// It holds a specific GORM transaction and uses it to create
// repository instances that are bound to that single transaction.
type gormRepositoryFactory struct {
	tx *gorm.DB
}

// RosterRepo creates a roster repository bound to the transaction.
func (f *gormRepositoryFactory) RosterRepo() repository.RosterRepository {
	return NewRosterRepository(f.tx)
}

// InvitationRepo creates an invitation repository bound to the transaction.
func (f *gormRepositoryFactory) InvitationRepo() repository.InvitationRepository {
	return NewInvitationRepository(f.tx)
}

// PageRepo creates a page repository bound to the transaction.
func (f *gormRepositoryFactory) PageRepo() repository.PageRepository {
	return NewPageRepository(f.tx)
}

// DesignRepo creates a design repository bound to the transaction.
func (f *gormRepositoryFactory) DesignRepo() repository.DesignRepository {
	return NewDesignRepository(f.tx)
}

// AdminRepo creates an admin repository bound to the transaction.
func (f *gormRepositoryFactory) AdminRepo() repository.AdminRepository {
	return NewAdminRepository(f.tx)
}

// NewTransactionManager is the constructor for gormTransactionManager.
// This function will be used as an Fx provider.
func NewTransactionManager(db *gorm.DB) repository.TransactionManager {
	return &gormTransactionManager{db: db}
}

// Execute runs the given function within a single database transaction.
func (tm *gormTransactionManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	tx := tm.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return errors.Wrap(tx.Error, "failed to begin transaction")
	}

	// Roll back if the callback panics, then re-panic for the recover middleware.
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	factory := &gormRepositoryFactory{tx: tx}

	if err := fn(factory); err != nil {
		if rbErr := tx.Rollback().Error; rbErr != nil {
			return errors.Wrapf(err, "transaction rollback failed: %v", rbErr)
		}

		return err
	}

	if err := tx.Commit().Error; err != nil {
		return errors.Wrap(err, "failed to commit transaction")
	}

	return nil
}
