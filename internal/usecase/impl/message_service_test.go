package impl

import (
	"context"
	"strings"
	"testing"

	domainerrors "yearbook/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageService_SendAndConversation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ada := env.register(t, testScope, "a@x.com", "Ada")
	bob := env.register(t, testScope, "b@x.com", "Bob")

	_, err := env.messages.Send(ctx, "a@x.com", bob.ID, "hi bob")
	require.NoError(t, err)
	_, err = env.messages.Send(ctx, "b@x.com", ada.ID, "  hi ada  ")
	require.NoError(t, err)

	conversation, err := env.messages.Conversation(ctx, "a@x.com", bob.ID)
	require.NoError(t, err)
	require.Len(t, conversation, 2)
	assert.Equal(t, "hi bob", conversation[0].Text)
	assert.Equal(t, "hi ada", conversation[1].Text)
	assert.Equal(t, ada.ID, conversation[1].ReceiverID)

	fromBob, err := env.messages.Conversation(ctx, "b@x.com", ada.ID)
	require.NoError(t, err)
	assert.Equal(t, conversation, fromBob)

	topicA, err := env.messages.ConversationTopic(ctx, "a@x.com", bob.ID)
	require.NoError(t, err)
	topicB, err := env.messages.ConversationTopic(ctx, "b@x.com", ada.ID)
	require.NoError(t, err)
	assert.Equal(t, topicA, topicB)
	assert.Contains(t, env.feed.topics(), topicA)
}

func TestMessageService_RequiresRegisteredClassmate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ada := env.register(t, testScope, "a@x.com", "Ada")
	pending := env.invite(t, testScope, "p@x.com")[0]
	other := env.register(t, testClassScope, "o@x.com", "Other")

	_, err := env.messages.Send(ctx, "a@x.com", pending.ID, "hello")
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)

	_, err = env.messages.Send(ctx, "a@x.com", other.ID, "hello")
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound, "classmates must share the scope")

	_, err = env.messages.Send(ctx, "a@x.com", uuid.New(), "hello")
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)

	_, err = env.messages.Send(ctx, "a@x.com", ada.ID, "hello")
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestMessageService_Send_ValidatesText(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.register(t, testScope, "a@x.com", "Ada")
	bob := env.register(t, testScope, "b@x.com", "Bob")

	_, err := env.messages.Send(ctx, "a@x.com", bob.ID, "   ")
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	_, err = env.messages.Send(ctx, "a@x.com", bob.ID, strings.Repeat("x", maxMessageLength+1))
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	messages, err := env.messages.Conversation(ctx, "a@x.com", bob.ID)
	require.NoError(t, err)
	assert.Empty(t, messages)
	for _, topic := range env.feed.topics() {
		assert.NotContains(t, topic, "messages:")
	}
}

func TestMessageService_UnreadConversations(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ada := env.register(t, testScope, "a@x.com", "Ada")
	bob := env.register(t, testScope, "b@x.com", "Bob")
	cal := env.register(t, testScope, "c@x.com", "Cal")

	unread, err := env.messages.UnreadConversations(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Zero(t, unread)

	_, err = env.messages.Send(ctx, "b@x.com", ada.ID, "hi ada")
	require.NoError(t, err)
	_, err = env.messages.Send(ctx, "b@x.com", ada.ID, "are you there")
	require.NoError(t, err)
	_, err = env.messages.Send(ctx, "c@x.com", ada.ID, "yo")
	require.NoError(t, err)
	_, err = env.messages.Send(ctx, "a@x.com", cal.ID, "hey cal")
	require.NoError(t, err)

	tests := []struct {
		email  string
		unread int
	}{
		{email: "a@x.com", unread: 1},
		{email: "b@x.com", unread: 0},
		{email: "c@x.com", unread: 1},
	}
	for _, tt := range tests {
		unread, err := env.messages.UnreadConversations(ctx, tt.email)
		require.NoError(t, err)
		assert.Equal(t, tt.unread, unread, tt.email)
	}

	_, err = env.messages.Send(ctx, "a@x.com", bob.ID, "here")
	require.NoError(t, err)
	unread, err = env.messages.UnreadConversations(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Zero(t, unread, "replying marks the conversation as read")

	_, err = env.messages.UnreadConversations(ctx, "nobody@x.com")
	assert.ErrorIs(t, err, domainerrors.ErrNotInvited)
}
