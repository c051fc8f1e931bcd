package entity

import (
	"time"

	"github.com/google/uuid"
)

// Message is a direct message between two registered members of the same scope.
type Message struct {
	ID         uuid.UUID `json:"id"`
	Scope      ScopeID   `json:"scope_id"`
	SenderID   uuid.UUID `json:"sender_id"`
	ReceiverID uuid.UUID `json:"receiver_id"`
	Text       string    `json:"text"`
	SentAt     time.Time `json:"sent_at"`
}

// ConversationKey orders the two participants so both directions share one key.
func ConversationKey(a, b uuid.UUID) string {
	if a.String() > b.String() {
		a, b = b, a
	}

	return a.String() + "_" + b.String()
}
