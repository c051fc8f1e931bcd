package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ProductModel mirrors the 'products' table.
type ProductModel struct {
	ID        uuid.UUID                   `gorm:"type:uuid;primary_key"`
	Name      string                      `gorm:"type:varchar(255);not null"`
	Features  datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	Price     float64                     `gorm:"type:numeric(12,2);not null"`
	PhotoURL  string                      `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}

// OrderModel mirrors the 'orders' table.
type OrderModel struct {
	ID              uuid.UUID      `gorm:"type:uuid;primary_key"`
	CustomerName    string         `gorm:"type:varchar(255);not null"`
	Email           string         `gorm:"type:varchar(255);not null;index"`
	ProductID       uuid.UUID      `gorm:"type:uuid;not null;index"`
	ProductName     string         `gorm:"type:varchar(255);not null"`
	Price           float64        `gorm:"type:numeric(12,2);not null"`
	ShippingAddress datatypes.JSON `gorm:"type:jsonb;not null"`
	PaymentMethod   string         `gorm:"type:varchar(50);not null"`
	Status          string         `gorm:"type:varchar(20);not null;index"`
	TrackingCompany *string        `gorm:"type:varchar(100)"`
	TrackingNumber  *string        `gorm:"type:varchar(100)"`
	OrderDate       time.Time      `gorm:"not null;index"`
	UpdatedAt       time.Time
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// StoreSettingModel mirrors the 'store_settings' table: one jsonb document per settings key.
type StoreSettingModel struct {
	Key       string         `gorm:"type:varchar(50);primaryKey"`
	Value     datatypes.JSON `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (StoreSettingModel) TableName() string {
	return "store_settings"
}
