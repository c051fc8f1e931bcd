// Package storage persists uploaded media in a gocloud.dev bucket.
package storage

import (
	"context"
	"io"
	"log/slog"

	"yearbook/config"
	"yearbook/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob" // file:// buckets
	_ "gocloud.dev/blob/gcsblob"  // gs:// buckets
	_ "gocloud.dev/blob/s3blob"   // s3:// buckets
	"gocloud.dev/gcerrors"
)

type blobStorage struct {
	bucket *blob.Bucket
}

// Params holds dependencies for FileStorage, injected by Fx
type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewFileStorage opens the bucket configured by storage.bucketURL.
func NewFileStorage(params Params) (service.FileStorage, error) {
	storage, err := OpenBlobStorage(params.Ctx, params.Config.Storage.BucketURL)
	if err != nil {
		return nil, err
	}

	params.Logger.Info("Upload storage opened", slog.String("bucket_url", params.Config.Storage.BucketURL))

	params.Lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return storage.Close()
		},
	})

	return storage, nil
}

// OpenBlobStorage opens a FileStorage for any gocloud.dev bucket URL.
func OpenBlobStorage(ctx context.Context, bucketURL string) (service.FileStorage, error) {
	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open bucket %s", bucketURL)
	}

	return &blobStorage{bucket: bucket}, nil
}

func (s *blobStorage) Put(ctx context.Context, key string, body io.Reader, contentType string) error {
	writer, err := s.bucket.NewWriter(ctx, key, &blob.WriterOptions{ContentType: contentType})
	if err != nil {
		return errors.Wrapf(err, "failed to open writer for %s", key)
	}

	if _, err := io.Copy(writer, body); err != nil {
		_ = writer.Close()

		return errors.Wrapf(err, "failed to write %s", key)
	}

	if err := writer.Close(); err != nil {
		return errors.Wrapf(err, "failed to commit %s", key)
	}

	return nil
}

func (s *blobStorage) Get(ctx context.Context, key string) (*service.StoredFile, error) {
	reader, err := s.bucket.NewReader(ctx, key, nil)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, service.ErrFileNotFound
		}

		return nil, errors.Wrapf(err, "failed to open %s", key)
	}

	return &service.StoredFile{
		Body:        reader,
		ContentType: reader.ContentType(),
		Size:        reader.Size(),
		ModTime:     reader.ModTime(),
	}, nil
}

func (s *blobStorage) Close() error {
	return errors.WithStack(s.bucket.Close())
}
