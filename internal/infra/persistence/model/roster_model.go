package model

import (
	"time"

	"github.com/google/uuid"
)

// RosterUserModel mirrors the 'roster_users' table. Emails are unique within a scope only.
// It is an exported type so it can be used by the GORM Gen tool from other packages.
type RosterUserModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key"`
	ScopeID        string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_roster_scope_email,priority:1;index:idx_roster_scope_position,priority:1"`
	Email          string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_roster_scope_email,priority:2"`
	Name           string    `gorm:"type:varchar(100)"`
	Phone          string    `gorm:"type:varchar(50)"`
	PhotoURL       string    `gorm:"type:text"`
	PasswordHash   string    `gorm:"type:varchar(255)"`
	Role           string    `gorm:"type:varchar(20);not null;default:student"`
	Registered     bool      `gorm:"not null;default:false"`
	PageSubmitted  bool      `gorm:"not null;default:false"`
	DeadlineExempt bool      `gorm:"not null;default:false"`
	Position       int       `gorm:"not null;index:idx_roster_scope_position,priority:2"`
	InvitedAt      time.Time `gorm:"not null"`
	RegisteredAt   *time.Time
	UpdatedAt      time.Time
}

// TableName explicitly sets the table name for GORM.
func (RosterUserModel) TableName() string {
	return "roster_users"
}

// InvitationModel mirrors the 'invitations' table, the email to scope index.
type InvitationModel struct {
	Email     string `gorm:"type:varchar(255);primaryKey"`
	ScopeID   string `gorm:"type:varchar(255);not null;index"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (InvitationModel) TableName() string {
	return "invitations"
}

// AdminAccountModel mirrors the 'admin_accounts' table.
type AdminAccountModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	Email        string    `gorm:"type:varchar(255);unique;not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (AdminAccountModel) TableName() string {
	return "admin_accounts"
}
