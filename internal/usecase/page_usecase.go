package usecase

import (
	"context"

	"yearbook/internal/domain/entity"
)

// SavePageInput is a full page overwrite.
//
// GalleryPhotoURLs lists the existing references to keep. When it is nil and no
// gallery file is uploaded, the stored gallery is left untouched. Uploaded files
// replace the matching reference field.
type SavePageInput struct {
	Quote            string
	Memories         string
	ProfilePhotoURL  string
	GalleryPhotoURLs []string
	ProfilePhoto     *UploadInput
	GalleryPhotos    []UploadInput
}

// MemberOutput describes the calling student and the lock state of their page.
type MemberOutput struct {
	User   *entity.User            `json:"user"`
	Scope  entity.Scope            `json:"scope"`
	Status entity.SubmissionStatus `json:"status"`
}

// PageOutput is a page together with its current lock state.
type PageOutput struct {
	Page   *entity.PageEntry       `json:"page"`
	Status entity.SubmissionStatus `json:"status"`
}

// PageUsecase serves the student's own yearbook page. Every operation is
// addressed by the authenticated email, which resolves the scope.
type PageUsecase interface {
	Me(ctx context.Context, email string) (*MemberOutput, error)
	GetPage(ctx context.Context, email string) (*PageOutput, error)
	// SavePage overwrites the page while it can be edited.
	SavePage(ctx context.Context, email string, input SavePageInput) (*PageOutput, error)
	// LockPage saves the input as the final version and locks the page. A nil
	// input locks the stored content as it is.
	LockPage(ctx context.Context, email string, input *SavePageInput) (*PageOutput, error)
	// ListClassmates returns the other registered members of the caller's scope.
	ListClassmates(ctx context.Context, email string) ([]*entity.User, error)
}
