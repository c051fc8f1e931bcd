package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	"yearbook/internal/delivery/api/response"
	domainerrors "yearbook/internal/domain/errors"
	"yearbook/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// Multipart field names of a page save.
const (
	formQuote            = "quote"
	formMemories         = "memories"
	formProfilePhotoURL  = "profile_photo_url"
	formGalleryPhotoURLs = "gallery_photo_urls[]"
	formProfilePhoto     = "profile_photo"
	formGalleryPhotos    = "gallery_photos[]"
)

// MeHandlerParams holds dependencies for MeHandler, injected by Fx.
type MeHandlerParams struct {
	fx.In

	PageUC    usecase.PageUsecase
	MessageUC usecase.MessageUsecase
	Logger    *slog.Logger
}

// MeHandler serves the authenticated student's own page.
type MeHandler struct {
	pageUC    usecase.PageUsecase
	messageUC usecase.MessageUsecase
	logger    *slog.Logger
}

// NewMeHandler is the constructor for MeHandler
func NewMeHandler(params MeHandlerParams) *MeHandler {
	return &MeHandler{
		pageUC:    params.PageUC,
		messageUC: params.MessageUC,
		logger:    params.Logger,
	}
}

// SavePageRequest represents the JSON body of a page save
type SavePageRequest struct {
	Quote            string   `json:"quote" validate:"max=500"`
	Memories         string   `json:"memories" validate:"max=5000"`
	ProfilePhotoURL  string   `json:"profile_photo_url" validate:"max=2048"`
	GalleryPhotoURLs []string `json:"gallery_photo_urls" validate:"omitempty,dive,max=2048"`
}

// MeResponse is the caller's membership plus the messaging badge count
type MeResponse struct {
	*usecase.MemberOutput
	UnreadConversations int `json:"unread_conversations"`
}

// GetMe returns the caller's roster entry, scope, lock state and unread conversations
func (h *MeHandler) GetMe(c echo.Context) error {
	email, ok := callerEmail(c)
	if !ok {
		return unauthorized(c)
	}

	ctx := c.Request().Context()
	output, err := h.pageUC.Me(ctx, email)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	unread, err := h.messageUC.UnreadConversations(ctx, email)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, MeResponse{MemberOutput: output, UnreadConversations: unread})
}

// GetPage returns the caller's page, or the empty defaults
func (h *MeHandler) GetPage(c echo.Context) error {
	email, ok := callerEmail(c)
	if !ok {
		return unauthorized(c)
	}

	output, err := h.pageUC.GetPage(c.Request().Context(), email)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, output)
}

// SavePage overwrites the caller's page
func (h *MeHandler) SavePage(c echo.Context) error {
	email, ok := callerEmail(c)
	if !ok {
		return unauthorized(c)
	}

	input, _, closeFiles, err := h.pageInput(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	defer closeFiles()

	output, err := h.pageUC.SavePage(c.Request().Context(), email, input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, output)
}

// LockPage saves the body as the final version and locks the page. A body
// without page fields locks the stored page as it is.
func (h *MeHandler) LockPage(c echo.Context) error {
	email, ok := callerEmail(c)
	if !ok {
		return unauthorized(c)
	}

	input, supplied, closeFiles, err := h.pageInput(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	defer closeFiles()

	var content *usecase.SavePageInput
	if supplied {
		content = &input
	}

	output, err := h.pageUC.LockPage(c.Request().Context(), email, content)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, output)
}

// ListClassmates returns the other registered members of the caller's scope
func (h *MeHandler) ListClassmates(c echo.Context) error {
	email, ok := callerEmail(c)
	if !ok {
		return unauthorized(c)
	}

	users, err := h.pageUC.ListClassmates(c.Request().Context(), email)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, users)
}

// pageInput decodes a JSON or multipart page body and reports whether it carried
// any page field. The returned function closes every opened upload and must be
// called once the save completed.
func (h *MeHandler) pageInput(c echo.Context) (usecase.SavePageInput, bool, func(), error) {
	noop := func() {}

	if !strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		raw, err := io.ReadAll(c.Request().Body)
		if err != nil {
			return usecase.SavePageInput{}, false, noop, domainerrors.ErrValidationFailed.WithDetails("unreadable body")
		}
		if len(bytes.TrimSpace(raw)) == 0 {
			return usecase.SavePageInput{}, false, noop, nil
		}

		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil {
			return usecase.SavePageInput{}, false, noop, domainerrors.ErrValidationFailed.WithDetails("malformed JSON body")
		}
		c.Request().Body = io.NopCloser(bytes.NewReader(raw))

		var req SavePageRequest
		if err := bindAndValidate(c, &req); err != nil {
			return usecase.SavePageInput{}, false, noop, err
		}

		return usecase.SavePageInput{
			Quote:            req.Quote,
			Memories:         req.Memories,
			ProfilePhotoURL:  req.ProfilePhotoURL,
			GalleryPhotoURLs: req.GalleryPhotoURLs,
		}, hasAnyKey(fields, pageJSONFields...), noop, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return usecase.SavePageInput{}, false, noop, domainerrors.ErrValidationFailed.WithDetails("malformed multipart body")
	}
	supplied := hasAnyKey(form.Value, formQuote, formMemories, formProfilePhotoURL, formGalleryPhotoURLs) ||
		hasAnyKey(form.File, formProfilePhoto, formGalleryPhotos)

	input := usecase.SavePageInput{
		Quote:           firstValue(form, formQuote),
		Memories:        firstValue(form, formMemories),
		ProfilePhotoURL: firstValue(form, formProfilePhotoURL),
	}
	if urls, ok := form.Value[formGalleryPhotoURLs]; ok {
		input.GalleryPhotoURLs = urls
	}

	var closers []io.Closer
	closeFiles := func() {
		for _, closer := range closers {
			_ = closer.Close()
		}
	}

	if headers := form.File[formProfilePhoto]; len(headers) > 0 {
		upload, file, err := openUpload(headers[0])
		if err != nil {
			closeFiles()

			return usecase.SavePageInput{}, false, noop, err
		}
		closers = append(closers, file)
		input.ProfilePhoto = &upload
	}

	for _, header := range form.File[formGalleryPhotos] {
		upload, file, err := openUpload(header)
		if err != nil {
			closeFiles()

			return usecase.SavePageInput{}, false, noop, err
		}
		closers = append(closers, file)
		input.GalleryPhotos = append(input.GalleryPhotos, upload)
	}

	return input, supplied, closeFiles, nil
}

// pageJSONFields are the JSON keys of SavePageRequest.
var pageJSONFields = []string{"quote", "memories", "profile_photo_url", "gallery_photo_urls"}

func hasAnyKey[V any](values map[string]V, keys ...string) bool {
	for _, key := range keys {
		if _, ok := values[key]; ok {
			return true
		}
	}

	return false
}

func firstValue(form *multipart.Form, key string) string {
	if values := form.Value[key]; len(values) > 0 {
		return values[0]
	}

	return ""
}
