package model

import (
	"time"

	"github.com/google/uuid"
)

// SchoolModel mirrors the 'schools' table.
type SchoolModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	Name      string    `gorm:"type:varchar(255);not null"`
	CreatedAt time.Time `gorm:"index"`
}

// TableName explicitly sets the table name for GORM.
func (SchoolModel) TableName() string {
	return "schools"
}

// MessageModel mirrors the 'messages' table. Messages are partitioned by scope
// and grouped by the sorted participant pair.
type MessageModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key"`
	ScopeID         string    `gorm:"type:varchar(255);not null;index:idx_messages_conversation,priority:1"`
	ConversationKey string    `gorm:"type:varchar(80);not null;index:idx_messages_conversation,priority:2"`
	SenderID        uuid.UUID `gorm:"type:uuid;not null"`
	ReceiverID      uuid.UUID `gorm:"type:uuid;not null"`
	Text            string    `gorm:"type:text;not null"`
	SentAt          time.Time `gorm:"not null;index:idx_messages_conversation,priority:3"`
}

// TableName explicitly sets the table name for GORM.
func (MessageModel) TableName() string {
	return "messages"
}

// ContactRequestModel mirrors the 'contact_requests' table.
type ContactRequestModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	SchoolName string    `gorm:"type:varchar(255);not null"`
	Name       string    `gorm:"type:varchar(255);not null"`
	Email      string    `gorm:"type:varchar(255);not null"`
	Phone      string    `gorm:"type:varchar(50)"`
	Date       time.Time `gorm:"not null;index"`
}

// TableName explicitly sets the table name for GORM.
func (ContactRequestModel) TableName() string {
	return "contact_requests"
}
