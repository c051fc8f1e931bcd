package usecase

import (
	"context"

	"yearbook/internal/domain/entity"

	"github.com/google/uuid"
)

// ProductInput defines the editable fields of a product.
type ProductInput struct {
	Name     string
	Features []string
	Price    float64
	PhotoURL string
}

// CheckoutInput defines a simulated purchase.
type CheckoutInput struct {
	ProductID       uuid.UUID
	CustomerName    string
	Email           string
	ShippingAddress entity.ShippingAddress
	PaymentMethod   entity.PaymentMethod
}

// UpdateOrderStatusInput moves an order through fulfilment.
type UpdateOrderStatusInput struct {
	Status   entity.OrderStatus
	Tracking *entity.Tracking // Required when Status is shipped.
}

// StorefrontUsecase runs the simulated storefront: products, orders and settings.
type StorefrontUsecase interface {
	ListProducts(ctx context.Context) ([]*entity.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	CreateProduct(ctx context.Context, input ProductInput) (*entity.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, input ProductInput) (*entity.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	Checkout(ctx context.Context, input CheckoutInput) (*entity.Order, error)
	ListOrders(ctx context.Context) ([]*entity.Order, error)
	// ListOrdersByEmail returns the orders placed with the email, newest first.
	ListOrdersByEmail(ctx context.Context, email string) ([]*entity.Order, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, input UpdateOrderStatusInput) (*entity.Order, error)

	GetPaymentSettings(ctx context.Context) (*entity.PaymentSettings, error)
	SavePaymentSettings(ctx context.Context, settings *entity.PaymentSettings) (*entity.PaymentSettings, error)
	GetCargoSettings(ctx context.Context) (*entity.CargoSettings, error)
	SaveCargoSettings(ctx context.Context, settings *entity.CargoSettings) (*entity.CargoSettings, error)
	// PaymentMethods returns what checkout accepts, without credentials.
	PaymentMethods(ctx context.Context) (entity.PublicPaymentMethods, error)
}
