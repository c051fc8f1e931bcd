package postgres

import (
	"context"
	"encoding/json"

	"yearbook/internal/domain/entity"
	domainerrors "yearbook/internal/domain/errors"
	"yearbook/internal/domain/repository"
	"yearbook/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	paymentSettingsKey = "payment"
	cargoSettingsKey   = "cargo"
)

// productRepository implements the repository.ProductRepository interface.
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepository{
		db: db,
	}
}

func (repo *productRepository) FindAll(ctx context.Context) ([]*entity.Product, error) {
	var productModels []*model.ProductModel

	if err := repo.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&productModels).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list products")
	}

	products := make([]*entity.Product, 0, len(productModels))
	for _, productM := range productModels {
		products = append(products, toProductDomain(productM))
	}

	return products, nil
}

func (repo *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var productM model.ProductModel

	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&productM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find product")
	}

	return toProductDomain(&productM), nil
}

func (repo *productRepository) Create(ctx context.Context, product *entity.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.Must(uuid.NewV7())
	}

	if err := repo.db.WithContext(ctx).Create(fromProductDomain(product)).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create product")
	}

	return nil
}

func (repo *productRepository) Update(ctx context.Context, product *entity.Product) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ?", product.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(fromProductDomain(product))
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update product")
	}

	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

func (repo *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.ProductModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete product")
	}

	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// orderRepository implements the repository.OrderRepository interface.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{
		db: db,
	}
}

func (repo *orderRepository) FindAll(ctx context.Context) ([]*entity.Order, error) {
	var orderModels []*model.OrderModel

	if err := repo.db.WithContext(ctx).
		Order("order_date DESC").
		Find(&orderModels).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list orders")
	}

	orders := make([]*entity.Order, 0, len(orderModels))
	for _, orderM := range orderModels {
		order, err := toOrderDomain(orderM)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}

	return orders, nil
}

func (repo *orderRepository) FindByEmail(ctx context.Context, email string) ([]*entity.Order, error) {
	var orderModels []*model.OrderModel

	if err := repo.db.WithContext(ctx).
		Where("email = ?", email).
		Order("order_date DESC").
		Find(&orderModels).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list orders by email")
	}

	orders := make([]*entity.Order, 0, len(orderModels))
	for _, orderM := range orderModels {
		order, err := toOrderDomain(orderM)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}

	return orders, nil
}

func (repo *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var orderM model.OrderModel

	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&orderM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find order")
	}

	return toOrderDomain(&orderM)
}

func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.Must(uuid.NewV7())
	}

	orderM, err := fromOrderDomain(order)
	if err != nil {
		return err
	}

	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	return nil
}

func (repo *orderRepository) Update(ctx context.Context, order *entity.Order) error {
	orderM, err := fromOrderDomain(order)
	if err != nil {
		return err
	}

	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ?", order.ID).
		Select("*").
		Omit("id", "order_date").
		Updates(orderM)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update order")
	}

	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

// storeSettingsRepository keeps each settings document under its own key.
type storeSettingsRepository struct {
	db *gorm.DB
}

// NewStoreSettingsRepository is the constructor for storeSettingsRepository.
func NewStoreSettingsRepository(db *gorm.DB) repository.StoreSettingsRepository {
	return &storeSettingsRepository{
		db: db,
	}
}

func (repo *storeSettingsRepository) FindPaymentSettings(ctx context.Context) (*entity.PaymentSettings, error) {
	settings := entity.DefaultPaymentSettings()
	if err := repo.load(ctx, paymentSettingsKey, settings); err != nil {
		return nil, err
	}

	return settings, nil
}

func (repo *storeSettingsRepository) SavePaymentSettings(ctx context.Context, settings *entity.PaymentSettings) error {
	return repo.save(ctx, paymentSettingsKey, settings)
}

func (repo *storeSettingsRepository) FindCargoSettings(ctx context.Context) (*entity.CargoSettings, error) {
	settings := entity.DefaultCargoSettings()
	if err := repo.load(ctx, cargoSettingsKey, settings); err != nil {
		return nil, err
	}

	return settings, nil
}

func (repo *storeSettingsRepository) SaveCargoSettings(ctx context.Context, settings *entity.CargoSettings) error {
	return repo.save(ctx, cargoSettingsKey, settings)
}

// load decodes the stored document onto target, which already carries the defaults.
func (repo *storeSettingsRepository) load(ctx context.Context, key string, target any) error {
	var settingM model.StoreSettingModel

	if err := repo.db.WithContext(ctx).Where("key = ?", key).First(&settingM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return repository.ErrSettingsNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to find store settings")
	}

	if err := json.Unmarshal(settingM.Value, target); err != nil {
		return errors.Wrapf(err, "failed to decode %s settings", key)
	}

	return nil
}

func (repo *storeSettingsRepository) save(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return errors.Wrapf(err, "failed to encode %s settings", key)
	}

	if err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			UpdateAll: true,
		}).
		Create(&model.StoreSettingModel{Key: key, Value: datatypes.JSON(raw)}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to save store settings")
	}

	return nil
}

// --- Mapper Functions ---

func toProductDomain(data *model.ProductModel) *entity.Product {
	features := []string(data.Features)
	if features == nil {
		features = []string{}
	}

	return &entity.Product{
		ID:        data.ID,
		Name:      data.Name,
		Features:  features,
		Price:     data.Price,
		PhotoURL:  data.PhotoURL,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

func fromProductDomain(data *entity.Product) *model.ProductModel {
	return &model.ProductModel{
		ID:        data.ID,
		Name:      data.Name,
		Features:  datatypes.JSONSlice[string](data.Features),
		Price:     data.Price,
		PhotoURL:  data.PhotoURL,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

func toOrderDomain(data *model.OrderModel) (*entity.Order, error) {
	order := &entity.Order{
		ID:            data.ID,
		CustomerName:  data.CustomerName,
		Email:         data.Email,
		ProductID:     data.ProductID,
		ProductName:   data.ProductName,
		Price:         data.Price,
		PaymentMethod: entity.PaymentMethod(data.PaymentMethod),
		Status:        entity.OrderStatus(data.Status),
		OrderDate:     data.OrderDate,
		UpdatedAt:     data.UpdatedAt,
	}

	if err := json.Unmarshal(data.ShippingAddress, &order.ShippingAddress); err != nil {
		return nil, errors.Wrap(err, "failed to decode shipping address")
	}

	if data.TrackingCompany != nil && data.TrackingNumber != nil {
		order.Tracking = &entity.Tracking{Company: *data.TrackingCompany, Number: *data.TrackingNumber}
	}

	return order, nil
}

func fromOrderDomain(data *entity.Order) (*model.OrderModel, error) {
	address, err := json.Marshal(data.ShippingAddress)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode shipping address")
	}

	orderM := &model.OrderModel{
		ID:              data.ID,
		CustomerName:    data.CustomerName,
		Email:           data.Email,
		ProductID:       data.ProductID,
		ProductName:     data.ProductName,
		Price:           data.Price,
		ShippingAddress: datatypes.JSON(address),
		PaymentMethod:   string(data.PaymentMethod),
		Status:          string(data.Status),
		OrderDate:       data.OrderDate,
		UpdatedAt:       data.UpdatedAt,
	}

	if data.Tracking != nil {
		orderM.TrackingCompany = &data.Tracking.Company
		orderM.TrackingNumber = &data.Tracking.Number
	}

	return orderM, nil
}
