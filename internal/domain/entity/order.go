package entity

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the fulfilment state of a storefront order.
type OrderStatus string

const (
	OrderStatusPending OrderStatus = "pending"
	OrderStatusPaid    OrderStatus = "paid"
	OrderStatusShipped OrderStatus = "shipped"
)

// IsValid checks if the OrderStatus is a valid value.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusShipped:
		return true
	default:
		return false
	}
}

// PaymentMethod is how a customer pays at checkout.
type PaymentMethod string

const (
	PaymentMethodCreditCard   PaymentMethod = "creditCard"
	PaymentMethodBankTransfer PaymentMethod = "bankTransfer"
)

// ShippingAddress is the delivery address captured at checkout.
type ShippingAddress struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Address   string `json:"address"`
	City      string `json:"city"`
	Zip       string `json:"zip"`
}

// Tracking identifies a shipment with a cargo company.
type Tracking struct {
	Company string `json:"company"`
	Number  string `json:"number"`
}

// Order is a simulated storefront purchase.
type Order struct {
	ID              uuid.UUID       `json:"id"`
	CustomerName    string          `json:"customer_name"`
	Email           string          `json:"email"`
	ProductID       uuid.UUID       `json:"product_id"`
	ProductName     string          `json:"product_name"`
	Price           float64         `json:"price"`
	ShippingAddress ShippingAddress `json:"shipping_address"`
	PaymentMethod   PaymentMethod   `json:"payment_method"`
	Status          OrderStatus     `json:"status"`
	Tracking        *Tracking       `json:"tracking,omitempty"` // Present only once shipped.
	OrderDate       time.Time       `json:"order_date"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
