package postgres

import (
	"context"

	"yearbook/internal/domain/entity"
	domainerrors "yearbook/internal/domain/errors"
	"yearbook/internal/domain/repository"
	"yearbook/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository is the constructor for messageRepository.
func NewMessageRepository(db *gorm.DB) repository.MessageRepository {
	return &messageRepository{
		db: db,
	}
}

func (repo *messageRepository) FindConversation(ctx context.Context, scope entity.ScopeID, userA, userB uuid.UUID) ([]*entity.Message, error) {
	var messageModels []*model.MessageModel

	if err := repo.db.WithContext(ctx).
		Where("scope_id = ? AND conversation_key = ?", scope.String(), entity.ConversationKey(userA, userB)).
		Order("sent_at ASC").
		Find(&messageModels).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list messages")
	}

	return toMessageDomains(messageModels), nil
}

func (repo *messageRepository) FindLatestPerConversation(ctx context.Context, scope entity.ScopeID, userID uuid.UUID) ([]*entity.Message, error) {
	var messageModels []*model.MessageModel

	if err := repo.db.WithContext(ctx).
		Raw(`SELECT DISTINCT ON (conversation_key) * FROM messages
			WHERE scope_id = ? AND (sender_id = ? OR receiver_id = ?)
			ORDER BY conversation_key, sent_at DESC, id DESC`, scope.String(), userID, userID).
		Scan(&messageModels).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list latest messages")
	}

	return toMessageDomains(messageModels), nil
}

func (repo *messageRepository) Create(ctx context.Context, message *entity.Message) error {
	if message.ID == uuid.Nil {
		message.ID = uuid.Must(uuid.NewV7())
	}

	messageM := &model.MessageModel{
		ID:              message.ID,
		ScopeID:         message.Scope.String(),
		ConversationKey: entity.ConversationKey(message.SenderID, message.ReceiverID),
		SenderID:        message.SenderID,
		ReceiverID:      message.ReceiverID,
		Text:            message.Text,
		SentAt:          message.SentAt,
	}

	if err := repo.db.WithContext(ctx).Create(messageM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create message")
	}

	return nil
}

func toMessageDomains(messageModels []*model.MessageModel) []*entity.Message {
	messages := make([]*entity.Message, 0, len(messageModels))
	for _, messageM := range messageModels {
		messages = append(messages, &entity.Message{
			ID:         messageM.ID,
			Scope:      entity.ScopeID(messageM.ScopeID),
			SenderID:   messageM.SenderID,
			ReceiverID: messageM.ReceiverID,
			Text:       messageM.Text,
			SentAt:     messageM.SentAt,
		})
	}

	return messages
}
