package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	domainerrors "yearbook/internal/domain/errors"
	"yearbook/internal/domain/service"
	"yearbook/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockUploadUsecase struct {
	mock.Mock
}

func (m *mockUploadUsecase) Upload(ctx context.Context, input usecase.UploadInput) (*usecase.UploadOutput, error) {
	args := m.Called(ctx, input.Filename, input.Subfolder)
	out, _ := args.Get(0).(*usecase.UploadOutput)

	return out, args.Error(1)
}

func (m *mockUploadUsecase) Open(ctx context.Context, key string) (*service.StoredFile, error) {
	args := m.Called(ctx, key)
	file, _ := args.Get(0).(*service.StoredFile)

	return file, args.Error(1)
}

// newUploadContext builds a multipart request; an empty filename leaves the file part out.
func newUploadContext(t *testing.T, filename, subfolder string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if filename != "" {
		part, err := writer.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = io.WriteString(part, "png-bytes")
		require.NoError(t, err)
	}
	if subfolder != "" {
		require.NoError(t, writer.WriteField("subfolder", subfolder))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	rec := httptest.NewRecorder()

	return echo.New().NewContext(req, rec), rec
}

func decodeUpload(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())

	return body
}

func TestUploadHandler_Upload(t *testing.T) {
	uploads := &mockUploadUsecase{}
	uploads.On("Upload", mock.Anything, "me.png", "profiles").
		Return(&usecase.UploadOutput{Key: "profiles/1-me.png", Path: "/uploads/profiles/1-me.png"}, nil).Once()
	h := NewUploadHandler(UploadHandlerParams{UploadUC: uploads, Logger: discardLogger()})

	c, rec := newUploadContext(t, "me.png", "profiles")
	require.NoError(t, h.Upload(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, map[string]any{"success": true, "path": "/uploads/profiles/1-me.png"}, decodeUpload(t, rec))
	uploads.AssertExpectations(t)
}

func TestUploadHandler_UploadFailures(t *testing.T) {
	tests := []struct {
		name      string
		filename  string
		uploadErr error
		status    int
		message   string
	}{
		{name: "missing file", status: http.StatusBadRequest, message: "No valid file was uploaded: file is required"},
		{
			name:      "rejected file",
			filename:  "empty.png",
			uploadErr: domainerrors.ErrUploadInvalid.WithDetails("file is empty"),
			status:    http.StatusBadRequest,
			message:   "No valid file was uploaded: file is empty",
		},
		{
			name:      "write failure",
			filename:  "me.png",
			uploadErr: domainerrors.ErrUploadFailed.WrapMessage("disk full"),
			status:    http.StatusInternalServerError,
			message:   "File upload failed",
		},
		{
			name:      "unexpected error",
			filename:  "me.png",
			uploadErr: errors.New("bucket closed"),
			status:    http.StatusInternalServerError,
			message:   "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uploads := &mockUploadUsecase{}
			uploads.On("Upload", mock.Anything, tt.filename, "").Return(nil, tt.uploadErr).Maybe()
			h := NewUploadHandler(UploadHandlerParams{UploadUC: uploads, Logger: discardLogger()})

			c, rec := newUploadContext(t, tt.filename, "")
			require.NoError(t, h.Upload(c))

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, map[string]any{"success": false, "error": tt.message}, decodeUpload(t, rec))
		})
	}
}
