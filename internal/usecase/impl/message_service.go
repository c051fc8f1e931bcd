package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"yearbook/internal/domain/entity"
	domainerrors "yearbook/internal/domain/errors"
	"yearbook/internal/domain/repository"
	"yearbook/internal/domain/service"
	"yearbook/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const maxMessageLength = 2000

// messageService implements the MessageUsecase interface.
type messageService struct {
	txManager   repository.TransactionManager
	messageRepo repository.MessageRepository
	notifier    *notifier
	logger      *slog.Logger
}

// MessageServiceParams holds dependencies for MessageService, injected by Fx.
type MessageServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	MessageRepo repository.MessageRepository
	Feed        service.ChangeFeed
	Logger      *slog.Logger
}

// NewMessageService is the constructor for messageService.
func NewMessageService(params MessageServiceParams) usecase.MessageUsecase {
	return &messageService{
		txManager:   params.TxManager,
		messageRepo: params.MessageRepo,
		notifier:    newNotifier(params.Feed, nil, params.Logger),
		logger:      params.Logger,
	}
}

// conversation pins both participants to the caller's scope.
type conversation struct {
	scope  entity.ScopeID
	sender *entity.User
	friend *entity.User
}

func (c conversation) topic() string {
	return entity.ConversationTopic(c.scope, entity.ConversationKey(c.sender.ID, c.friend.ID))
}

func (srv *messageService) resolve(ctx context.Context, email string, friendID uuid.UUID) (conversation, error) {
	var conv conversation
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		m, err := resolveMember(ctx, repoFactory, email)
		if err != nil {
			return err
		}
		if m.user.ID == friendID {
			return domainerrors.ErrValidationFailed.WithDetails("cannot message yourself")
		}

		friend, err := repoFactory.RosterRepo().FindByID(ctx, m.scope, friendID)
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUserNotFound
		}
		if err != nil {
			return errors.Wrap(err, "failed to find classmate")
		}
		if !friend.Registered {
			return domainerrors.ErrUserNotFound.WithDetails("classmate has not registered yet")
		}

		conv = conversation{scope: m.scope, sender: m.user, friend: friend}

		return nil
	})

	return conv, err
}

func (srv *messageService) Conversation(ctx context.Context, email string, friendID uuid.UUID) ([]*entity.Message, error) {
	conv, err := srv.resolve(ctx, email, friendID)
	if err != nil {
		return nil, err
	}

	messages, err := srv.messageRepo.FindConversation(ctx, conv.scope, conv.sender.ID, conv.friend.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load conversation")
	}

	return messages, nil
}

func (srv *messageService) Send(ctx context.Context, email string, friendID uuid.UUID, text string) (*entity.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("message text is required")
	}
	if utf8.RuneCountInString(text) > maxMessageLength {
		return nil, domainerrors.ErrValidationFailed.WithDetails("message text is too long")
	}

	conv, err := srv.resolve(ctx, email, friendID)
	if err != nil {
		return nil, err
	}

	message := &entity.Message{
		ID:         uuid.New(),
		Scope:      conv.scope,
		SenderID:   conv.sender.ID,
		ReceiverID: conv.friend.ID,
		Text:       text,
		SentAt:     time.Now().UTC(),
	}
	if err := srv.messageRepo.Create(ctx, message); err != nil {
		return nil, errors.Wrap(err, "failed to send message")
	}

	srv.notifier.changed(ctx, conv.topic(), entity.ChangeCreated, message.ID.String())

	return message, nil
}

func (srv *messageService) UnreadConversations(ctx context.Context, email string) (int, error) {
	var m *member
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		m, err = resolveMember(ctx, repoFactory, email)

		return err
	})
	if err != nil {
		return 0, err
	}

	latest, err := srv.messageRepo.FindLatestPerConversation(ctx, m.scope, m.user.ID)
	if err != nil {
		return 0, errors.Wrap(err, "failed to load conversations")
	}

	unread := 0
	for _, message := range latest {
		if message.SenderID != m.user.ID {
			unread++
		}
	}

	return unread, nil
}

func (srv *messageService) ConversationTopic(ctx context.Context, email string, friendID uuid.UUID) (string, error) {
	conv, err := srv.resolve(ctx, email, friendID)
	if err != nil {
		return "", err
	}

	return conv.topic(), nil
}
