package entity

import (
	"time"

	"github.com/google/uuid"
)

// ContactRequest is a demo or information request left by a prospective school.
type ContactRequest struct {
	ID         uuid.UUID `json:"id"`
	SchoolName string    `json:"school_name"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Date       time.Time `json:"date"`
}
