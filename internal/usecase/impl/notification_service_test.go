package impl

import (
	"context"
	"errors"
	"strings"
	"testing"

	"yearbook/internal/domain/entity"
	"yearbook/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) Send(ctx context.Context, mail service.Mail) error {
	return m.Called(ctx, mail).Error(0)
}

func newTestNotificationService(t *testing.T, env *testEnv) (*mockMailer, *notificationService) {
	t.Helper()

	mailer := &mockMailer{}
	t.Cleanup(func() { mailer.AssertExpectations(t) })

	srv := NewNotificationService(NotificationServiceParams{
		Roster: env.roster,
		Mailer: mailer,
		Config: newTestConfig(),
		Logger: newDiscardLogger(),
	}).(*notificationService)

	return mailer, srv
}

func TestNotificationService_SendsInvitation(t *testing.T) {
	env := newTestEnv(t)
	mailer, srv := newTestNotificationService(t, env)
	env.invite(t, testScope, "ada@x.com")

	var sent service.Mail
	mailer.On("Send", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		sent = args.Get(1).(service.Mail)
	}).Return(nil).Once()

	err := srv.HandleEvent(context.Background(), &entity.DomainEvent{
		EventID: "evt-1",
		Type:    entity.EventUserInvited,
		Scope:   testScope,
		Subject: "ada@x.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "ada@x.com", sent.To)
	assert.Contains(t, sent.Body, "https://yearbook.example.com/register?")
	assert.Contains(t, sent.Body, "scope=school-1%3A2024")
}

func TestNotificationService_SkipsSettledInvitations(t *testing.T) {
	env := newTestEnv(t)
	_, srv := newTestNotificationService(t, env)
	env.register(t, testScope, "done@x.com", "Done")

	ctx := context.Background()
	require.NoError(t, srv.HandleEvent(ctx, &entity.DomainEvent{
		Type: entity.EventUserInvited, Scope: testScope, Subject: "done@x.com",
	}))
	require.NoError(t, srv.HandleEvent(ctx, &entity.DomainEvent{
		Type: entity.EventUserInvited, Scope: testScope, Subject: "removed@x.com",
	}))
}

func TestNotificationService_SubmissionReceipt(t *testing.T) {
	env := newTestEnv(t)
	mailer, srv := newTestNotificationService(t, env)

	mailer.On("Send", mock.Anything, mock.MatchedBy(func(mail service.Mail) bool {
		return mail.To == "ada@x.com" && strings.Contains(mail.Body, "/yearbook/preview/school-1:2024:12a")
	})).Return(nil).Once()

	err := srv.HandleEvent(context.Background(), &entity.DomainEvent{
		Type:    entity.EventPageLocked,
		Scope:   testClassScope,
		Subject: "ada@x.com",
	})
	require.NoError(t, err)
}

func TestNotificationService_MailerFailure(t *testing.T) {
	env := newTestEnv(t)
	mailer, srv := newTestNotificationService(t, env)
	mailer.On("Send", mock.Anything, mock.Anything).Return(errors.New("relay down")).Once()

	err := srv.HandleEvent(context.Background(), &entity.DomainEvent{
		Type:    entity.EventPageLocked,
		Scope:   testScope,
		Subject: "ada@x.com",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "relay down")
}

func TestNotificationService_IgnoresOtherEvents(t *testing.T) {
	env := newTestEnv(t)
	_, srv := newTestNotificationService(t, env)

	require.NoError(t, srv.HandleEvent(context.Background(), &entity.DomainEvent{
		Type:    entity.EventOrderPlaced,
		Subject: "order-1",
	}))
}

func TestLinks(t *testing.T) {
	assert.Equal(t, "https://y.example/yearbook/preview/s:2024",
		previewLink("https://y.example/", "s:2024"))
	assert.Equal(t, "https://y.example/register?scope=s%3A2024",
		registrationLink("https://y.example", "s:2024", ""))
	assert.Equal(t, "https://y.example/register?email=a%40x.com&scope=s%3A2024",
		registrationLink("https://y.example", "s:2024", "a@x.com"))
}
