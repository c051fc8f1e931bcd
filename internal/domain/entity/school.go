package entity

import (
	"time"

	"github.com/google/uuid"
)

// School is a tenant; its rosters are addressed through scopes built from its ID.
type School struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
