package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	deliverycontext "yearbook/internal/delivery/context"
	"yearbook/internal/domain/entity"
	domainerrors "yearbook/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/idtoken"
)

type mockNotificationUsecase struct {
	mock.Mock
}

func (m *mockNotificationUsecase) HandleEvent(ctx context.Context, event *entity.DomainEvent) error {
	return m.Called(ctx, event).Error(0)
}

func newTestPushHandler(uc *mockNotificationUsecase) *PushHandler {
	return &PushHandler{
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		notificationUC: uc,
	}
}

func pushBody(t *testing.T, event entity.DomainEvent) string {
	t.Helper()

	data, err := json.Marshal(event)
	require.NoError(t, err)

	var msg PubSubMessage
	msg.Message.Data = base64.StdEncoding.EncodeToString(data)
	msg.Message.MessageID = event.EventID
	msg.Message.Attributes = map[string]string{"request_id": "req-42"}

	body, err := json.Marshal(msg)
	require.NoError(t, err)

	return string(body)
}

func doPush(h *PushHandler, body string, header http.Header) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/push", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for key, values := range header {
		req.Header[key] = values
	}
	rec := httptest.NewRecorder()
	_ = h.HandlePush(e.NewContext(req, rec))

	return rec
}

func TestPushHandler_Dispatches(t *testing.T) {
	uc := &mockNotificationUsecase{}
	uc.On("HandleEvent", mock.Anything, mock.MatchedBy(func(event *entity.DomainEvent) bool {
		return event.Type == entity.EventUserInvited && event.Subject == "ada@x.com"
	})).Run(func(args mock.Arguments) {
		ctx := args.Get(0).(context.Context)
		assert.Equal(t, "req-42", deliverycontext.GetRequestIDFromContext(ctx))
	}).Return(nil).Once()

	rec := doPush(newTestPushHandler(uc), pushBody(t, entity.DomainEvent{
		EventID: "evt-1",
		Type:    entity.EventUserInvited,
		Scope:   entity.ScopeID("school-1:2024"),
		Subject: "ada@x.com",
	}), nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	uc.AssertExpectations(t)
}

func TestPushHandler_RetrySemantics(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "transient failure is redelivered", err: errors.New("relay down"), status: http.StatusServiceUnavailable},
		{name: "server app error is redelivered", err: domainerrors.ErrInternalError, status: http.StatusServiceUnavailable},
		{name: "client app error is acknowledged", err: domainerrors.ErrValidationFailed, status: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockNotificationUsecase{}
			uc.On("HandleEvent", mock.Anything, mock.Anything).Return(tt.err).Once()

			rec := doPush(newTestPushHandler(uc), pushBody(t, entity.DomainEvent{
				EventID: "evt-2",
				Type:    entity.EventPageLocked,
				Subject: "ada@x.com",
			}), nil)

			assert.Equal(t, tt.status, rec.Code)
			uc.AssertExpectations(t)
		})
	}
}

func TestPushHandler_MalformedMessages(t *testing.T) {
	uc := &mockNotificationUsecase{}
	h := newTestPushHandler(uc)

	assert.Equal(t, http.StatusBadRequest, doPush(h, `{"message":`, nil).Code)
	assert.Equal(t, http.StatusBadRequest, doPush(h, `{"message":{"data":"%%%"}}`, nil).Code)

	notJSON := base64.StdEncoding.EncodeToString([]byte("not json"))
	assert.Equal(t, http.StatusBadRequest, doPush(h, `{"message":{"data":"`+notJSON+`"}}`, nil).Code)

	uc.AssertNotCalled(t, "HandleEvent", mock.Anything, mock.Anything)
}

func TestPushHandler_VerifiesPushToken(t *testing.T) {
	uc := &mockNotificationUsecase{}
	uc.On("HandleEvent", mock.Anything, mock.Anything).Return(nil).Once()

	h := newTestPushHandler(uc)
	h.verifyPushAuth = true
	h.validateToken = func(_ context.Context, token, audience string) (*idtoken.Payload, error) {
		if token != "good" {
			return nil, errors.New("bad signature")
		}
		assert.Equal(t, "http://example.com/push", audience)

		return &idtoken.Payload{Issuer: "https://accounts.google.com", Claims: map[string]any{"email_verified": true}}, nil
	}

	body := pushBody(t, entity.DomainEvent{EventID: "evt-3", Type: entity.EventPageLocked})

	assert.Equal(t, http.StatusUnauthorized, doPush(h, body, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, doPush(h, body, http.Header{"Authorization": {"Bearer bad"}}).Code)
	assert.Equal(t, http.StatusOK, doPush(h, body, http.Header{"Authorization": {"Bearer good"}}).Code)

	uc.AssertExpectations(t)
}
