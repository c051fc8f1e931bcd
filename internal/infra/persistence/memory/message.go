package memory

import (
	"context"
	"slices"

	"yearbook/internal/domain/entity"
	"yearbook/internal/domain/repository"

	"github.com/google/uuid"
)

type messageRepository struct {
	db *DB
}

// NewMessageRepository returns a MessageRepository over the in-memory tables.
func NewMessageRepository(db *DB) repository.MessageRepository {
	return &messageRepository{db: db}
}

func (repo *messageRepository) FindConversation(_ context.Context, scope entity.ScopeID, userA, userB uuid.UUID) ([]*entity.Message, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	key := entity.ConversationKey(userA, userB)
	messages := make([]*entity.Message, 0)
	for _, message := range repo.db.messages {
		if message.Scope == scope && entity.ConversationKey(message.SenderID, message.ReceiverID) == key {
			cloned := *message
			messages = append(messages, &cloned)
		}
	}
	slices.SortStableFunc(messages, func(a, b *entity.Message) int {
		return a.SentAt.Compare(b.SentAt)
	})

	return messages, nil
}

func (repo *messageRepository) FindLatestPerConversation(_ context.Context, scope entity.ScopeID, userID uuid.UUID) ([]*entity.Message, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	latest := make(map[string]*entity.Message)
	for _, message := range repo.db.messages {
		if message.Scope != scope || (message.SenderID != userID && message.ReceiverID != userID) {
			continue
		}
		key := entity.ConversationKey(message.SenderID, message.ReceiverID)
		if current, ok := latest[key]; !ok || !message.SentAt.Before(current.SentAt) {
			latest[key] = message
		}
	}

	messages := make([]*entity.Message, 0, len(latest))
	for _, message := range latest {
		cloned := *message
		messages = append(messages, &cloned)
	}

	return messages, nil
}

func (repo *messageRepository) Create(_ context.Context, message *entity.Message) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	if message.ID == uuid.Nil {
		message.ID = uuid.Must(uuid.NewV7())
	}
	cloned := *message
	repo.db.messages = append(repo.db.messages, &cloned)

	return nil
}

type contactRequestRepository struct {
	db *DB
}

// NewContactRequestRepository returns a ContactRequestRepository over the in-memory tables.
func NewContactRequestRepository(db *DB) repository.ContactRequestRepository {
	return &contactRequestRepository{db: db}
}

func (repo *contactRequestRepository) FindAll(_ context.Context) ([]*entity.ContactRequest, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	requests := make([]*entity.ContactRequest, 0, len(repo.db.contacts))
	for _, request := range slices.Backward(repo.db.contacts) {
		cloned := *request
		requests = append(requests, &cloned)
	}
	slices.SortStableFunc(requests, func(a, b *entity.ContactRequest) int {
		return b.Date.Compare(a.Date)
	})

	return requests, nil
}

func (repo *contactRequestRepository) Create(_ context.Context, request *entity.ContactRequest) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	if request.ID == uuid.Nil {
		request.ID = uuid.Must(uuid.NewV7())
	}
	cloned := *request
	repo.db.contacts = append(repo.db.contacts, &cloned)

	return nil
}

func (repo *contactRequestRepository) Delete(_ context.Context, id uuid.UUID) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	idx := slices.IndexFunc(repo.db.contacts, func(r *entity.ContactRequest) bool { return r.ID == id })
	if idx < 0 {
		return repository.ErrContactRequestNotFound
	}
	repo.db.contacts = slices.Delete(repo.db.contacts, idx, idx+1)

	return nil
}
