package entity

import (
	"time"

	"github.com/google/uuid"
)

// MaxGalleryPhotos is the number of gallery media items a page can hold.
const MaxGalleryPhotos = 4

// PageEntry is a student's free-form yearbook content, keyed by user ID and independent of scope.
type PageEntry struct {
	UserID           uuid.UUID `json:"user_id"`
	Quote            string    `json:"quote"`
	Memories         string    `json:"memories"`
	ProfilePhotoURL  string    `json:"profile_photo_url"`
	GalleryPhotoURLs []string  `json:"gallery_photo_urls"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// EmptyPage returns the defaults served before anything was saved.
func EmptyPage(userID uuid.UUID) *PageEntry {
	return &PageEntry{
		UserID:           userID,
		GalleryPhotoURLs: []string{},
	}
}

// IsEmpty reports whether the page carries no content at all.
func (p *PageEntry) IsEmpty() bool {
	return p == nil ||
		(p.Quote == "" && p.Memories == "" && p.ProfilePhotoURL == "" && len(p.GalleryPhotoURLs) == 0)
}
