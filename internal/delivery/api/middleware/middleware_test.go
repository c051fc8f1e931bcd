package middleware

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"yearbook/internal/delivery/api/response"
	deliverycontext "yearbook/internal/delivery/context"
	"yearbook/internal/domain/entity"
	domainerrors "yearbook/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVerifier struct {
	principal *entity.Principal
	err       error
	tokens    []string
}

func (v *stubVerifier) Verify(_ context.Context, token string) (*entity.Principal, error) {
	v.tokens = append(v.tokens, token)

	return v.principal, v.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) response.ErrorInfo {
	t.Helper()

	var body struct {
		Error response.ErrorInfo `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body.Error
}

func TestAuthenticate(t *testing.T) {
	student := &entity.Principal{Email: "ada@x.com", Role: entity.RoleStudent}

	tests := []struct {
		name     string
		header   string
		accept   string
		query    string
		verifier *stubVerifier
		status   int
		code     string
		token    string
	}{
		{
			name:     "missing header",
			verifier: &stubVerifier{principal: student},
			status:   http.StatusUnauthorized,
			code:     "UNAUTHORIZED",
		},
		{
			name:     "not a bearer token",
			header:   "Basic abc",
			verifier: &stubVerifier{principal: student},
			status:   http.StatusUnauthorized,
			code:     "UNAUTHORIZED",
		},
		{
			name:     "rejected token",
			header:   "Bearer expired",
			verifier: &stubVerifier{err: domainerrors.ErrInvalidToken},
			status:   http.StatusUnauthorized,
			code:     "INVALID_TOKEN",
			token:    "expired",
		},
		{
			name:     "valid token",
			header:   "Bearer good",
			verifier: &stubVerifier{principal: student},
			status:   http.StatusOK,
			token:    "good",
		},
		{
			name:     "query token for event streams",
			accept:   "text/event-stream",
			query:    "?access_token=streamed",
			verifier: &stubVerifier{principal: student},
			status:   http.StatusOK,
			token:    "streamed",
		},
		{
			name:     "query token ignored for plain requests",
			query:    "?access_token=streamed",
			verifier: &stubVerifier{principal: student},
			status:   http.StatusUnauthorized,
			code:     "UNAUTHORIZED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/me"+tt.query, nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			if tt.accept != "" {
				req.Header.Set(echo.HeaderAccept, tt.accept)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			m := NewAuthMiddleware(tt.verifier, discardLogger())
			err := m.Authenticate(func(c echo.Context) error {
				principal, ok := GetPrincipal(c)
				require.True(t, ok)
				assert.Equal(t, "ada@x.com", principal.Email)

				return c.NoContent(http.StatusOK)
			})(c)

			require.NoError(t, err)
			assert.Equal(t, tt.status, rec.Code)
			if tt.code != "" {
				assert.Equal(t, tt.code, decodeError(t, rec).Code)
			}
			if tt.token != "" {
				assert.Equal(t, []string{tt.token}, tt.verifier.tokens)
			}
		})
	}
}

func TestAuthenticate_ProviderFailureIsPassedOn(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer good")
	c := e.NewContext(req, httptest.NewRecorder())

	outage := errors.New("identity provider unreachable")
	m := NewAuthMiddleware(&stubVerifier{err: outage}, discardLogger())
	err := m.Authenticate(func(echo.Context) error {
		t.Fatal("handler must not run")

		return nil
	})(c)

	assert.ErrorIs(t, err, outage)
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name      string
		principal *entity.Principal
		status    int
	}{
		{name: "no principal", status: http.StatusUnauthorized},
		{name: "student", principal: &entity.Principal{Email: "ada@x.com", Role: entity.RoleStudent}, status: http.StatusForbidden},
		{name: "admin", principal: &entity.Principal{Email: "root@x.com", Role: entity.RoleAdmin}, status: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/admin/schools", nil), rec)
			if tt.principal != nil {
				deliverycontext.SetPrincipal(c, tt.principal)
			}

			m := NewAuthMiddleware(&stubVerifier{}, discardLogger())
			err := m.RequireRole(entity.RoleAdmin)(func(c echo.Context) error {
				return c.NoContent(http.StatusOK)
			})(c)

			require.NoError(t, err)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestHandleHTTPError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		details any
	}{
		{
			name:    "client app error keeps details",
			err:     domainerrors.ErrValidationFailed.WithDetails("email is required"),
			status:  http.StatusBadRequest,
			code:    "VALIDATION_FAILED",
			details: "email is required",
		},
		{
			name:   "wrapped app error",
			err:    errors.Wrap(domainerrors.ErrPageLocked, "save page"),
			status: http.StatusForbidden,
			code:   "PAGE_LOCKED",
		},
		{
			name:   "server app error hides details",
			err:    domainerrors.ErrUploadFailed.WithDetails("disk full"),
			status: http.StatusInternalServerError,
			code:   "UPLOAD_FAILED",
		},
		{
			name:   "echo not found",
			err:    echo.ErrNotFound,
			status: http.StatusNotFound,
			code:   "NOT_FOUND",
		},
		{
			name:   "echo body limit",
			err:    echo.ErrStatusRequestEntityTooLarge,
			status: http.StatusRequestEntityTooLarge,
			code:   "PAYLOAD_TOO_LARGE",
		},
		{
			name:   "unknown error",
			err:    errors.New("boom"),
			status: http.StatusInternalServerError,
			code:   "INTERNAL_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
			deliverycontext.SetRequestID(c, "req-1")

			NewErrorMiddleware(discardLogger()).HandleHTTPError(tt.err, c)

			assert.Equal(t, tt.status, rec.Code)

			var body struct {
				Error response.ErrorInfo `json:"error"`
				Meta  response.MetaInfo  `json:"meta"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Error.Code)
			assert.Equal(t, tt.details, body.Error.Details)
			assert.Equal(t, "req-1", body.Meta.RequestID)
		})
	}
}

func TestHandleHTTPError_CommittedResponse(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, c.String(http.StatusOK, "partial"))

	NewErrorMiddleware(discardLogger()).HandleHTTPError(errors.New("late failure"), c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "partial", rec.Body.String())
}
