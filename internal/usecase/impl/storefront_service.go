package impl

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	deliverycontext "yearbook/internal/delivery/context"
	"yearbook/internal/domain/entity"
	domainerrors "yearbook/internal/domain/errors"
	"yearbook/internal/domain/repository"
	"yearbook/internal/domain/service"
	"yearbook/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// storefrontService implements the StorefrontUsecase interface.
// Payments and shipping are simulated: nothing leaves the process.
type storefrontService struct {
	productRepo  repository.ProductRepository
	orderRepo    repository.OrderRepository
	settingsRepo repository.StoreSettingsRepository
	notifier     *notifier
	logger       *slog.Logger
}

// StorefrontServiceParams holds dependencies for StorefrontService, injected by Fx.
type StorefrontServiceParams struct {
	fx.In

	ProductRepo  repository.ProductRepository
	OrderRepo    repository.OrderRepository
	SettingsRepo repository.StoreSettingsRepository
	Feed         service.ChangeFeed
	Publisher    service.EventPublisher
	Logger       *slog.Logger
}

// NewStorefrontService is the constructor for storefrontService.
func NewStorefrontService(params StorefrontServiceParams) usecase.StorefrontUsecase {
	return &storefrontService{
		productRepo:  params.ProductRepo,
		orderRepo:    params.OrderRepo,
		settingsRepo: params.SettingsRepo,
		notifier:     newNotifier(params.Feed, params.Publisher, params.Logger),
		logger:       params.Logger,
	}
}

func (srv *storefrontService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *storefrontService) ListProducts(ctx context.Context) ([]*entity.Product, error) {
	products, err := srv.productRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	return products, nil
}

func (srv *storefrontService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := srv.productRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrProductNotFound) {
		return nil, domainerrors.ErrProductNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find product")
	}

	return product, nil
}

func (srv *storefrontService) CreateProduct(ctx context.Context, input usecase.ProductInput) (*entity.Product, error) {
	if err := validateProduct(input); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	product := &entity.Product{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(input.Name),
		Features:  cleanFeatures(input.Features),
		Price:     input.Price,
		PhotoURL:  input.PhotoURL,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := srv.productRepo.Create(ctx, product); err != nil {
		return nil, errors.Wrap(err, "failed to create product")
	}

	srv.log(ctx).Info("Product created", slog.Any("productID", product.ID), slog.String("name", product.Name))

	return product, nil
}

func (srv *storefrontService) UpdateProduct(ctx context.Context, id uuid.UUID, input usecase.ProductInput) (*entity.Product, error) {
	if err := validateProduct(input); err != nil {
		return nil, err
	}

	product, err := srv.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Name = strings.TrimSpace(input.Name)
	product.Features = cleanFeatures(input.Features)
	product.Price = input.Price
	product.PhotoURL = input.PhotoURL
	product.UpdatedAt = time.Now().UTC()

	err = srv.productRepo.Update(ctx, product)
	if errors.Is(err, repository.ErrProductNotFound) {
		return nil, domainerrors.ErrProductNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to update product")
	}

	return product, nil
}

func (srv *storefrontService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	err := srv.productRepo.Delete(ctx, id)
	if errors.Is(err, repository.ErrProductNotFound) {
		return domainerrors.ErrProductNotFound
	}
	if err != nil {
		return errors.Wrap(err, "failed to delete product")
	}

	return nil
}

// Checkout records a pending order for an enabled payment method. Name and
// price are copied so later product edits do not rewrite order history.
func (srv *storefrontService) Checkout(ctx context.Context, input usecase.CheckoutInput) (*entity.Order, error) {
	email := entity.NormalizeEmail(input.Email)
	if !entity.IsValidEmail(email) {
		return nil, domainerrors.ErrInvalidEmail
	}
	if strings.TrimSpace(input.CustomerName) == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("customer name is required")
	}
	if err := validateAddress(input.ShippingAddress); err != nil {
		return nil, err
	}

	product, err := srv.GetProduct(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}

	payment, err := srv.GetPaymentSettings(ctx)
	if err != nil {
		return nil, err
	}
	if !payment.Accepts(input.PaymentMethod) {
		return nil, domainerrors.ErrPaymentMethodUnavailable
	}

	now := time.Now().UTC()
	order := &entity.Order{
		ID:              uuid.New(),
		CustomerName:    strings.TrimSpace(input.CustomerName),
		Email:           email,
		ProductID:       product.ID,
		ProductName:     product.Name,
		Price:           product.Price,
		ShippingAddress: input.ShippingAddress,
		PaymentMethod:   input.PaymentMethod,
		Status:          entity.OrderStatusPending,
		OrderDate:       now,
		UpdatedAt:       now,
	}
	if err := srv.orderRepo.Create(ctx, order); err != nil {
		return nil, errors.Wrap(err, "failed to create order")
	}

	srv.notifier.changed(ctx, entity.TopicOrders, entity.ChangeCreated, order.ID.String())
	srv.notifier.emit(ctx, entity.EventOrderPlaced, "", order.ID.String(), map[string]string{
		"product_id":     product.ID.String(),
		"payment_method": string(order.PaymentMethod),
		"price":          strconv.FormatFloat(order.Price, 'f', 2, 64),
	})
	srv.log(ctx).Info("Order placed", slog.Any("orderID", order.ID), slog.Any("productID", product.ID))

	return order, nil
}

func (srv *storefrontService) ListOrders(ctx context.Context) ([]*entity.Order, error) {
	orders, err := srv.orderRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return orders, nil
}

func (srv *storefrontService) ListOrdersByEmail(ctx context.Context, email string) ([]*entity.Order, error) {
	orders, err := srv.orderRepo.FindByEmail(ctx, entity.NormalizeEmail(email))
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return orders, nil
}

// UpdateOrderStatus requires tracking details for shipped orders and clears them otherwise.
func (srv *storefrontService) UpdateOrderStatus(ctx context.Context, id uuid.UUID, input usecase.UpdateOrderStatusInput) (*entity.Order, error) {
	if !input.Status.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown order status")
	}

	var tracking *entity.Tracking
	if input.Status == entity.OrderStatusShipped {
		if input.Tracking == nil || strings.TrimSpace(input.Tracking.Company) == "" || strings.TrimSpace(input.Tracking.Number) == "" {
			return nil, domainerrors.ErrTrackingRequired
		}
		tracking = &entity.Tracking{
			Company: strings.TrimSpace(input.Tracking.Company),
			Number:  strings.TrimSpace(input.Tracking.Number),
		}
	}

	order, err := srv.orderRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrOrderNotFound) {
		return nil, domainerrors.ErrOrderNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find order")
	}

	order.Status = input.Status
	order.Tracking = tracking
	order.UpdatedAt = time.Now().UTC()
	if err := srv.orderRepo.Update(ctx, order); err != nil {
		return nil, errors.Wrap(err, "failed to update order")
	}

	srv.notifier.changed(ctx, entity.TopicOrders, entity.ChangeUpdated, order.ID.String())

	return order, nil
}

func (srv *storefrontService) GetPaymentSettings(ctx context.Context) (*entity.PaymentSettings, error) {
	settings, err := srv.settingsRepo.FindPaymentSettings(ctx)
	if errors.Is(err, repository.ErrSettingsNotFound) {
		return entity.DefaultPaymentSettings(), nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load payment settings")
	}

	return settings, nil
}

func (srv *storefrontService) SavePaymentSettings(ctx context.Context, settings *entity.PaymentSettings) (*entity.PaymentSettings, error) {
	if settings == nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("payment settings are required")
	}
	if settings.CreditCard.Iyzico.Mode == "" {
		settings.CreditCard.Iyzico.Mode = entity.DefaultPaymentSettings().CreditCard.Iyzico.Mode
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	if err := srv.settingsRepo.SavePaymentSettings(ctx, settings); err != nil {
		return nil, errors.Wrap(err, "failed to save payment settings")
	}

	return settings, nil
}

func (srv *storefrontService) GetCargoSettings(ctx context.Context) (*entity.CargoSettings, error) {
	settings, err := srv.settingsRepo.FindCargoSettings(ctx)
	if errors.Is(err, repository.ErrSettingsNotFound) {
		return entity.DefaultCargoSettings(), nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load cargo settings")
	}

	return settings, nil
}

func (srv *storefrontService) SaveCargoSettings(ctx context.Context, settings *entity.CargoSettings) (*entity.CargoSettings, error) {
	if settings == nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("cargo settings are required")
	}

	if err := srv.settingsRepo.SaveCargoSettings(ctx, settings); err != nil {
		return nil, errors.Wrap(err, "failed to save cargo settings")
	}

	return settings, nil
}

func (srv *storefrontService) PaymentMethods(ctx context.Context) (entity.PublicPaymentMethods, error) {
	settings, err := srv.GetPaymentSettings(ctx)
	if err != nil {
		return entity.PublicPaymentMethods{}, err
	}

	return settings.Public(), nil
}

func validateProduct(input usecase.ProductInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return domainerrors.ErrValidationFailed.WithDetails("product name is required")
	}
	if input.Price < 0 {
		return domainerrors.ErrValidationFailed.WithDetails("price must not be negative")
	}

	return nil
}

func validateAddress(address entity.ShippingAddress) error {
	required := []struct{ field, value string }{
		{"first name", address.FirstName},
		{"last name", address.LastName},
		{"address", address.Address},
		{"city", address.City},
		{"zip", address.Zip},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return domainerrors.ErrValidationFailed.WithDetails(r.field + " is required")
		}
	}

	return nil
}

func cleanFeatures(features []string) []string {
	cleaned := make([]string, 0, len(features))
	for _, feature := range features {
		if trimmed := strings.TrimSpace(feature); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}

	return cleaned
}
