package repository

import (
	"context"

	"yearbook/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	// ErrProductNotFound is returned when a product does not exist.
	ErrProductNotFound = errors.New("product not found")
	// ErrOrderNotFound is returned when an order does not exist.
	ErrOrderNotFound = errors.New("order not found")
	// ErrSettingsNotFound is returned when a settings record was never saved.
	ErrSettingsNotFound = errors.New("settings not found")
)

// ProductRepository persists storefront products.
type ProductRepository interface {
	// FindAll returns every product in creation order.
	FindAll(ctx context.Context) ([]*entity.Product, error)

	// FindByID retrieves a product by ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// Create persists a new product.
	Create(ctx context.Context, product *entity.Product) error

	// Update overwrites an existing product.
	Update(ctx context.Context, product *entity.Product) error

	// Delete removes a product.
	Delete(ctx context.Context, id uuid.UUID) error
}

// OrderRepository persists storefront orders.
type OrderRepository interface {
	// FindAll returns every order, newest first.
	FindAll(ctx context.Context) ([]*entity.Order, error)

	// FindByEmail returns the orders placed with a normalized email, newest first.
	FindByEmail(ctx context.Context, email string) ([]*entity.Order, error)

	// FindByID retrieves an order by ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// Create persists a new order.
	Create(ctx context.Context, order *entity.Order) error

	// Update overwrites an existing order.
	Update(ctx context.Context, order *entity.Order) error
}

// StoreSettingsRepository persists the singleton payment and cargo settings.
type StoreSettingsRepository interface {
	// FindPaymentSettings loads the payment settings.
	FindPaymentSettings(ctx context.Context) (*entity.PaymentSettings, error)

	// SavePaymentSettings overwrites the payment settings.
	SavePaymentSettings(ctx context.Context, settings *entity.PaymentSettings) error

	// FindCargoSettings loads the cargo settings.
	FindCargoSettings(ctx context.Context) (*entity.CargoSettings, error)

	// SaveCargoSettings overwrites the cargo settings.
	SaveCargoSettings(ctx context.Context, settings *entity.CargoSettings) error
}
