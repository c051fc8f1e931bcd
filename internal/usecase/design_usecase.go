package usecase

import (
	"context"

	"yearbook/internal/domain/entity"
	"yearbook/internal/domain/yearbook"
)

// DesignUsecase manages the per-scope design record.
type DesignUsecase interface {
	// GetDesign returns the stored design, or the defaults when none was saved.
	GetDesign(ctx context.Context, scope entity.ScopeID) (*entity.DesignSettings, error)
	// SaveDesign decodes raw JSON on top of the defaults, validates it and overwrites the record.
	SaveDesign(ctx context.Context, scope entity.ScopeID, raw []byte) (*entity.DesignSettings, error)
}

// PreviewUsecase renders yearbooks and the QR codes that link to them.
type PreviewUsecase interface {
	// Render composes the flipbook of the scope, or fails with NO_CONTENT.
	Render(ctx context.Context, scope entity.ScopeID) (*yearbook.Book, error)
	PreviewQR(ctx context.Context, scope entity.ScopeID) ([]byte, error)
	InvitationQR(ctx context.Context, scope entity.ScopeID) ([]byte, error)
}
