package usecase

import (
	"context"
	"io"

	"yearbook/internal/domain/service"
)

// UploadInput is one file received from a client.
type UploadInput struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
	Subfolder   string // Defaults to "general".
}

// UploadOutput is the durable reference of a stored file.
type UploadOutput struct {
	Key  string `json:"-"`
	Path string `json:"path"`
}

// UploadUsecase stores media referenced by pages and design settings.
type UploadUsecase interface {
	Upload(ctx context.Context, input UploadInput) (*UploadOutput, error)
	// Open reads back a stored file by its key.
	Open(ctx context.Context, key string) (*service.StoredFile, error)
}
