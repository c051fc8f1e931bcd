package repository

import "context"

// TransactionManager defines the interface for managing database transactions.
// This allows the use case layer to handle transactions without depending on a specific DB driver like GORM.
type TransactionManager interface {
	// Execute runs a function within a database transaction.
	// If the function returns an error, the transaction is rolled back. Otherwise, it's committed.
	// All repository operations within the function will use the same database transaction.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory provides repository instances bound to a specific transaction.
type RepositoryFactory interface {
	// RosterRepo returns a RosterRepository bound to the current transaction.
	RosterRepo() RosterRepository

	// InvitationRepo returns an InvitationRepository bound to the current transaction.
	InvitationRepo() InvitationRepository

	// PageRepo returns a PageRepository bound to the current transaction.
	PageRepo() PageRepository

	// DesignRepo returns a DesignRepository bound to the current transaction.
	DesignRepo() DesignRepository

	// AdminRepo returns an AdminRepository bound to the current transaction.
	AdminRepo() AdminRepository
}
