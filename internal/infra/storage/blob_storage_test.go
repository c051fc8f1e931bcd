package storage

import (
	"context"
	"io"
	"net/url"
	"strings"
	"testing"

	"yearbook/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStorage(t *testing.T) service.FileStorage {
	t.Helper()

	bucketURL := (&url.URL{Scheme: "file", Path: t.TempDir()}).String()
	storage, err := OpenBlobStorage(context.Background(), bucketURL)
	require.NoError(t, err)
	t.Cleanup(func() { _ = storage.Close() })

	return storage
}

func TestBlobStorage_PutAndGet(t *testing.T) {
	storage := openTestStorage(t)
	ctx := context.Background()

	err := storage.Put(ctx, "profile-photos/20240101000000-abcd1234-me.png", strings.NewReader("png-bytes"), "image/png")
	require.NoError(t, err)

	file, err := storage.Get(ctx, "profile-photos/20240101000000-abcd1234-me.png")
	require.NoError(t, err)
	defer file.Body.Close()

	body, err := io.ReadAll(file.Body)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(body))
	assert.Equal(t, "image/png", file.ContentType)
	assert.Equal(t, int64(len("png-bytes")), file.Size)
}

func TestBlobStorage_PutOverwrites(t *testing.T) {
	storage := openTestStorage(t)
	ctx := context.Background()

	require.NoError(t, storage.Put(ctx, "general/a.txt", strings.NewReader("one"), "text/plain"))
	require.NoError(t, storage.Put(ctx, "general/a.txt", strings.NewReader("two"), "text/plain"))

	file, err := storage.Get(ctx, "general/a.txt")
	require.NoError(t, err)
	defer file.Body.Close()

	body, err := io.ReadAll(file.Body)
	require.NoError(t, err)
	assert.Equal(t, "two", string(body))
}

func TestBlobStorage_GetMissing(t *testing.T) {
	storage := openTestStorage(t)

	_, err := storage.Get(context.Background(), "general/missing.png")
	assert.ErrorIs(t, err, service.ErrFileNotFound)
}

func TestOpenBlobStorage_UnknownScheme(t *testing.T) {
	_, err := OpenBlobStorage(context.Background(), "ftp://example.com/bucket")
	assert.Error(t, err)
}
