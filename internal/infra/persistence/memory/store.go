package memory

import (
	"context"
	"slices"

	"yearbook/internal/domain/entity"
	"yearbook/internal/domain/repository"

	"github.com/google/uuid"
)

type productRepository struct {
	db *DB
}

// NewProductRepository returns a ProductRepository over the in-memory tables.
func NewProductRepository(db *DB) repository.ProductRepository {
	return &productRepository{db: db}
}

func (repo *productRepository) FindAll(_ context.Context) ([]*entity.Product, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	products := make([]*entity.Product, 0, len(repo.db.products))
	for _, product := range repo.db.products {
		products = append(products, cloneProduct(product))
	}

	return products, nil
}

func (repo *productRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	idx := repo.indexOf(id)
	if idx < 0 {
		return nil, repository.ErrProductNotFound
	}

	return cloneProduct(repo.db.products[idx]), nil
}

func (repo *productRepository) Create(_ context.Context, product *entity.Product) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	if product.ID == uuid.Nil {
		product.ID = uuid.Must(uuid.NewV7())
	}
	repo.db.products = append(repo.db.products, cloneProduct(product))

	return nil
}

func (repo *productRepository) Update(_ context.Context, product *entity.Product) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	idx := repo.indexOf(product.ID)
	if idx < 0 {
		return repository.ErrProductNotFound
	}

	updated := cloneProduct(product)
	updated.CreatedAt = repo.db.products[idx].CreatedAt
	repo.db.products[idx] = updated

	return nil
}

func (repo *productRepository) Delete(_ context.Context, id uuid.UUID) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	idx := repo.indexOf(id)
	if idx < 0 {
		return repository.ErrProductNotFound
	}
	repo.db.products = slices.Delete(repo.db.products, idx, idx+1)

	return nil
}

func (repo *productRepository) indexOf(id uuid.UUID) int {
	return slices.IndexFunc(repo.db.products, func(p *entity.Product) bool { return p.ID == id })
}

type orderRepository struct {
	db *DB
}

// NewOrderRepository returns an OrderRepository over the in-memory tables.
func NewOrderRepository(db *DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

func (repo *orderRepository) FindAll(_ context.Context) ([]*entity.Order, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	orders := make([]*entity.Order, 0, len(repo.db.orders))
	for _, order := range slices.Backward(repo.db.orders) {
		orders = append(orders, cloneOrder(order))
	}
	slices.SortStableFunc(orders, func(a, b *entity.Order) int {
		return b.OrderDate.Compare(a.OrderDate)
	})

	return orders, nil
}

func (repo *orderRepository) FindByEmail(ctx context.Context, email string) ([]*entity.Order, error) {
	orders, err := repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	return slices.DeleteFunc(orders, func(order *entity.Order) bool {
		return order.Email != email
	}), nil
}

func (repo *orderRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Order, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	idx := repo.indexOf(id)
	if idx < 0 {
		return nil, repository.ErrOrderNotFound
	}

	return cloneOrder(repo.db.orders[idx]), nil
}

func (repo *orderRepository) Create(_ context.Context, order *entity.Order) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	if order.ID == uuid.Nil {
		order.ID = uuid.Must(uuid.NewV7())
	}
	repo.db.orders = append(repo.db.orders, cloneOrder(order))

	return nil
}

func (repo *orderRepository) Update(_ context.Context, order *entity.Order) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	idx := repo.indexOf(order.ID)
	if idx < 0 {
		return repository.ErrOrderNotFound
	}

	updated := cloneOrder(order)
	updated.OrderDate = repo.db.orders[idx].OrderDate
	repo.db.orders[idx] = updated

	return nil
}

func (repo *orderRepository) indexOf(id uuid.UUID) int {
	return slices.IndexFunc(repo.db.orders, func(o *entity.Order) bool { return o.ID == id })
}

type storeSettingsRepository struct {
	db *DB
}

// NewStoreSettingsRepository returns a StoreSettingsRepository over the in-memory tables.
func NewStoreSettingsRepository(db *DB) repository.StoreSettingsRepository {
	return &storeSettingsRepository{db: db}
}

func (repo *storeSettingsRepository) FindPaymentSettings(_ context.Context) (*entity.PaymentSettings, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	if repo.db.payment == nil {
		return nil, repository.ErrSettingsNotFound
	}
	cloned := *repo.db.payment

	return &cloned, nil
}

func (repo *storeSettingsRepository) SavePaymentSettings(_ context.Context, settings *entity.PaymentSettings) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	cloned := *settings
	repo.db.payment = &cloned

	return nil
}

func (repo *storeSettingsRepository) FindCargoSettings(_ context.Context) (*entity.CargoSettings, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	if repo.db.cargo == nil {
		return nil, repository.ErrSettingsNotFound
	}
	cloned := *repo.db.cargo

	return &cloned, nil
}

func (repo *storeSettingsRepository) SaveCargoSettings(_ context.Context, settings *entity.CargoSettings) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	cloned := *settings
	repo.db.cargo = &cloned

	return nil
}
