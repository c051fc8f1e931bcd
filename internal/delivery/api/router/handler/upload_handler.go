package handler

import (
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"yearbook/internal/delivery/api/response"
	deliverycontext "yearbook/internal/delivery/context"
	domainerrors "yearbook/internal/domain/errors"
	"yearbook/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// UploadHandlerParams holds dependencies for UploadHandler, injected by Fx.
type UploadHandlerParams struct {
	fx.In

	UploadUC usecase.UploadUsecase
	Logger   *slog.Logger
}

// UploadHandler stores media and serves it back.
type UploadHandler struct {
	uploadUC usecase.UploadUsecase
	logger   *slog.Logger
}

// NewUploadHandler is the constructor for UploadHandler
func NewUploadHandler(params UploadHandlerParams) *UploadHandler {
	return &UploadHandler{
		uploadUC: params.UploadUC,
		logger:   params.Logger,
	}
}

// Upload stores the multipart "file" under the optional "subfolder".
// It answers with {success, path} or {success, error} instead of the common envelope.
func (h *UploadHandler) Upload(c echo.Context) error {
	header, err := c.FormFile("file")
	if err != nil {
		return h.uploadFailed(c, domainerrors.ErrUploadInvalid.WithDetails("file is required"))
	}

	input, file, err := openUpload(header)
	if err != nil {
		return h.uploadFailed(c, err)
	}
	defer file.Close()
	input.Subfolder = c.FormValue("subfolder")

	output, err := h.uploadUC.Upload(c.Request().Context(), input)
	if err != nil {
		return h.uploadFailed(c, err)
	}

	return response.UploadSuccess(c, output.Path)
}

func (h *UploadHandler) uploadFailed(c echo.Context, err error) error {
	var appErr domainerrors.AppError
	if !errors.As(err, &appErr) {
		appErr = domainerrors.ErrInternalError
	}

	if appErr.HTTPCode() >= http.StatusInternalServerError {
		deliverycontext.GetLoggerOrDefault(c.Request().Context(), h.logger).Error("Upload failed",
			slog.String("code", appErr.ErrorCode()),
			slog.String("error", fmt.Sprintf("%+v", err)))

		return response.UploadFailure(c, appErr.HTTPCode(), appErr.Message())
	}

	message := appErr.Message()
	if details := appErr.Details(); details != "" {
		message += ": " + details
	}

	return response.UploadFailure(c, appErr.HTTPCode(), message)
}

// Serve streams a stored file addressed by the wildcard path
func (h *UploadHandler) Serve(c echo.Context) error {
	key := strings.TrimPrefix(c.Param("*"), "/")

	file, err := h.uploadUC.Open(c.Request().Context(), key)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	defer file.Body.Close()

	header := c.Response().Header()
	header.Set(echo.HeaderCacheControl, "public, max-age=86400")
	if file.Size > 0 {
		header.Set(echo.HeaderContentLength, strconv.FormatInt(file.Size, 10))
	}
	if !file.ModTime.IsZero() {
		header.Set(echo.HeaderLastModified, file.ModTime.UTC().Format(http.TimeFormat))
	}

	contentType := file.ContentType
	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}

	return c.Stream(http.StatusOK, contentType, file.Body)
}

// openUpload opens a received file part. The caller closes the returned file.
func openUpload(header *multipart.FileHeader) (usecase.UploadInput, multipart.File, error) {
	file, err := header.Open()
	if err != nil {
		return usecase.UploadInput{}, nil, domainerrors.ErrUploadInvalid.WithDetails("file could not be read")
	}

	return usecase.UploadInput{
		Filename:    header.Filename,
		ContentType: header.Header.Get(echo.HeaderContentType),
		Size:        header.Size,
		Body:        file,
	}, file, nil
}
