// Package persistence selects the storage backend configured by store.driver.
package persistence

import (
	"log/slog"

	"yearbook/config"
	"yearbook/internal/domain/constants"
	"yearbook/internal/domain/repository"
	"yearbook/internal/errors"
	"yearbook/internal/infra/persistence/memory"
	"yearbook/internal/infra/persistence/postgres"

	"go.uber.org/fx"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// Repositories is every repository the usecases depend on, backed by one store.
type Repositories struct {
	fx.Out

	TxManager      repository.TransactionManager
	Roster         repository.RosterRepository
	Invitations    repository.InvitationRepository
	Pages          repository.PageRepository
	Designs        repository.DesignRepository
	Admins         repository.AdminRepository
	Schools        repository.SchoolRepository
	Products       repository.ProductRepository
	Orders         repository.OrderRepository
	StoreSettings  repository.StoreSettingsRepository
	Messages       repository.MessageRepository
	ContactRequest repository.ContactRequestRepository
}

// New opens the configured store and returns its repositories.
func New(params Params) (Repositories, error) {
	switch params.Config.Store.Driver {
	case constants.StoreDriverMemory:
		params.Logger.Warn("Using in-memory store; data is lost on restart")

		return newMemoryRepositories(memory.Open()), nil

	case constants.StoreDriverPostgres:
		db, err := postgres.New(postgres.Params{
			Lifecycle: params.Lifecycle,
			Config:    params.Config,
			Logger:    params.Logger,
		})
		if err != nil {
			return Repositories{}, err
		}

		return Repositories{
			TxManager:      postgres.NewTransactionManager(db),
			Roster:         postgres.NewRosterRepository(db),
			Invitations:    postgres.NewInvitationRepository(db),
			Pages:          postgres.NewPageRepository(db),
			Designs:        postgres.NewDesignRepository(db),
			Admins:         postgres.NewAdminRepository(db),
			Schools:        postgres.NewSchoolRepository(db),
			Products:       postgres.NewProductRepository(db),
			Orders:         postgres.NewOrderRepository(db),
			StoreSettings:  postgres.NewStoreSettingsRepository(db),
			Messages:       postgres.NewMessageRepository(db),
			ContactRequest: postgres.NewContactRequestRepository(db),
		}, nil

	default:
		return Repositories{}, errors.Errorf("unsupported store driver %q", params.Config.Store.Driver)
	}
}

func newMemoryRepositories(db *memory.DB) Repositories {
	return Repositories{
		TxManager:      memory.NewTransactionManager(db),
		Roster:         memory.NewRosterRepository(db),
		Invitations:    memory.NewInvitationRepository(db),
		Pages:          memory.NewPageRepository(db),
		Designs:        memory.NewDesignRepository(db),
		Admins:         memory.NewAdminRepository(db),
		Schools:        memory.NewSchoolRepository(db),
		Products:       memory.NewProductRepository(db),
		Orders:         memory.NewOrderRepository(db),
		StoreSettings:  memory.NewStoreSettingsRepository(db),
		Messages:       memory.NewMessageRepository(db),
		ContactRequest: memory.NewContactRequestRepository(db),
	}
}
