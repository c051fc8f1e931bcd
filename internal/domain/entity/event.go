package entity

import (
	"time"
)

// ChangeKind describes what happened to a record in a change notification.
type ChangeKind string

const (
	ChangeCreated ChangeKind = "created"
	ChangeUpdated ChangeKind = "updated"
	ChangeDeleted ChangeKind = "deleted"
)

// ChangeEvent is pushed to live subscribers after a write commits.
type ChangeEvent struct {
	Topic string     `json:"topic"`
	Kind  ChangeKind `json:"kind"`
	ID    string     `json:"id"`
	At    time.Time  `json:"at"`
}

// Change feed topics.
const (
	TopicOrders          = "orders"
	TopicContactRequests = "contact-requests"
)

// RosterTopic is the change feed topic of one scope's roster.
func RosterTopic(scope ScopeID) string {
	return "roster:" + scope.String()
}

// ConversationTopic is the change feed topic of one conversation.
func ConversationTopic(scope ScopeID, conversationKey string) string {
	return "messages:" + scope.String() + ":" + conversationKey
}

// DomainEventType names an event published for downstream consumers.
type DomainEventType string

const (
	EventUserInvited DomainEventType = "user.invited"
	EventPageLocked  DomainEventType = "page.locked"
	EventOrderPlaced DomainEventType = "order.placed"
)

// DomainEvent is published to the event bus after a write commits.
type DomainEvent struct {
	RequestID  string            `json:"request_id,omitempty"`
	EventID    string            `json:"event_id"`
	Type       DomainEventType   `json:"type"`
	Scope      ScopeID           `json:"scope_id,omitempty"`
	Subject    string            `json:"subject"` // The user email or order ID the event is about.
	Attributes map[string]string `json:"attributes,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
}
