package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PageEntryModel mirrors the 'page_entries' table. Entries are keyed by user only.
type PageEntryModel struct {
	UserID           uuid.UUID                   `gorm:"type:uuid;primaryKey"`
	Quote            string                      `gorm:"type:text"`
	Memories         string                      `gorm:"type:text"`
	ProfilePhotoURL  string                      `gorm:"type:text"`
	GalleryPhotoURLs datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	UpdatedAt        time.Time
}

// TableName explicitly sets the table name for GORM.
func (PageEntryModel) TableName() string {
	return "page_entries"
}

// DesignSettingsModel mirrors the 'design_settings' table. Settings holds the
// versioned design record as a jsonb blob.
type DesignSettingsModel struct {
	ScopeID   string         `gorm:"type:varchar(255);primaryKey"`
	Version   int            `gorm:"not null"`
	Settings  datatypes.JSON `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (DesignSettingsModel) TableName() string {
	return "design_settings"
}
