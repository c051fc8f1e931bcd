package entity

import (
	"time"

	"github.com/google/uuid"
)

// Product is a printed yearbook package offered in the storefront.
type Product struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Features  []string  `json:"features"`
	Price     float64   `json:"price"`
	PhotoURL  string    `json:"photo_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
