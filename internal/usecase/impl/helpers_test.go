package impl

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"yearbook/config"
	"yearbook/internal/domain/entity"
	"yearbook/internal/domain/repository"
	"yearbook/internal/domain/service"
	"yearbook/internal/infra/auth"
	"yearbook/internal/infra/persistence/memory"
	"yearbook/internal/infra/qrcode"
	"yearbook/internal/usecase"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testScope      entity.ScopeID = "school-1:2024"
	testClassScope entity.ScopeID = "school-1:2024:12a"
	testPassword                  = "Secret123"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	cfg := &config.Config{
		Auth:     &config.AuthConfig{BcryptCost: bcrypt.MinCost, TokenTTL: time.Hour},
		Storage:  &config.StorageConfig{PublicPrefix: "/uploads", MaxUploadSize: 1 << 20},
		QRCode:   &config.QRCodeConfig{Size: 128, ErrorCorrectionLevel: "M", BaseURL: "https://yearbook.example.com"},
		Identity: &config.IdentityConfig{Provider: "local"},
	}
	cfg.SecretKey.Access = "test-secret"

	return cfg
}

// mockEventPublisher is a testify mock of service.EventPublisher.
type mockEventPublisher struct {
	mock.Mock
}

func (m *mockEventPublisher) PublishDomainEvent(ctx context.Context, event *entity.DomainEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *mockEventPublisher) Close() error {
	return m.Called().Error(0)
}

// expectEvent registers an expectation for one event type.
func (m *mockEventPublisher) expectEvent(eventType entity.DomainEventType, err error) *mock.Call {
	return m.On("PublishDomainEvent", mock.Anything, mock.MatchedBy(func(event *entity.DomainEvent) bool {
		return event.Type == eventType
	})).Return(err)
}

// recordingFeed is a service.ChangeFeed that keeps every published event.
type recordingFeed struct {
	mu     sync.Mutex
	events []entity.ChangeEvent
}

func (f *recordingFeed) Publish(_ context.Context, event entity.ChangeEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.events = append(f.events, event)

	return nil
}

func (f *recordingFeed) Subscribe(_ context.Context, _ string) (<-chan entity.ChangeEvent, func(), error) {
	ch := make(chan entity.ChangeEvent)
	close(ch)

	return ch, func() {}, nil
}

func (f *recordingFeed) Close() error {
	return nil
}

func (f *recordingFeed) topics() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	topics := make([]string, 0, len(f.events))
	for _, event := range f.events {
		topics = append(topics, event.Topic)
	}

	return topics
}

// fakeStorage is an in-memory service.FileStorage.
type fakeStorage struct {
	mu      sync.Mutex
	objects map[string]*bytes.Buffer
	types   map[string]string
	putErr  error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string]*bytes.Buffer{}, types: map[string]string{}}
}

func (s *fakeStorage) Put(_ context.Context, key string, body io.Reader, contentType string) error {
	if s.putErr != nil {
		return s.putErr
	}

	buf := &bytes.Buffer{}
	if _, err := io.Copy(buf, body); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.objects[key] = buf
	s.types[key] = contentType

	return nil
}

func (s *fakeStorage) Get(_ context.Context, key string) (*service.StoredFile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	buf, ok := s.objects[key]
	if !ok {
		return nil, service.ErrFileNotFound
	}

	return &service.StoredFile{
		Body:        io.NopCloser(bytes.NewReader(buf.Bytes())),
		ContentType: s.types[key],
		Size:        int64(buf.Len()),
	}, nil
}

func (s *fakeStorage) Close() error {
	return nil
}

// testEnv wires every service over one in-memory store.
type testEnv struct {
	db        *memory.DB
	txManager repository.TransactionManager
	designs   repository.DesignRepository
	feed      *recordingFeed
	publisher *mockEventPublisher
	storage   *fakeStorage
	tokens    service.TokenService

	roster     usecase.RosterUsecase
	sessions   usecase.SessionUsecase
	pages      usecase.PageUsecase
	uploads    usecase.UploadUsecase
	design     usecase.DesignUsecase
	preview    usecase.PreviewUsecase
	schools    usecase.SchoolUsecase
	storefront usecase.StorefrontUsecase
	messages   usecase.MessageUsecase
	contacts   usecase.ContactUsecase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := newTestConfig()
	logger := newDiscardLogger()
	db := memory.Open()

	env := &testEnv{
		db:        db,
		txManager: memory.NewTransactionManager(db),
		designs:   memory.NewDesignRepository(db),
		feed:      &recordingFeed{},
		publisher: &mockEventPublisher{},
		storage:   newFakeStorage(),
	}
	t.Cleanup(func() { env.publisher.AssertExpectations(t) })

	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)
	env.tokens = tokens

	env.roster = NewRosterService(RosterServiceParams{
		TxManager: env.txManager,
		Feed:      env.feed,
		Publisher: env.publisher,
		Logger:    logger,
	})
	env.sessions = NewSessionService(SessionServiceParams{
		TxManager:    env.txManager,
		Roster:       env.roster,
		Hasher:       auth.NewBcryptHasher(cfg),
		TokenService: tokens,
		Logger:       logger,
	})
	env.uploads = NewUploadService(UploadServiceParams{
		Storage: env.storage,
		Config:  cfg,
		Logger:  logger,
	})
	env.pages = NewPageService(PageServiceParams{
		TxManager: env.txManager,
		Uploads:   env.uploads,
		Feed:      env.feed,
		Publisher: env.publisher,
		Logger:    logger,
	})
	design := NewDesignService(DesignServiceParams{
		TxManager:  env.txManager,
		DesignRepo: env.designs,
		RosterRepo: memory.NewRosterRepository(db),
		PageRepo:   memory.NewPageRepository(db),
		QRCode:     qrcode.NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel),
		Config:     cfg,
		Logger:     logger,
	})
	env.design = design.Design
	env.preview = design.Preview
	env.schools = NewSchoolService(memory.NewSchoolRepository(db), logger)
	env.storefront = NewStorefrontService(StorefrontServiceParams{
		ProductRepo:  memory.NewProductRepository(db),
		OrderRepo:    memory.NewOrderRepository(db),
		SettingsRepo: memory.NewStoreSettingsRepository(db),
		Feed:         env.feed,
		Publisher:    env.publisher,
		Logger:       logger,
	})
	env.messages = NewMessageService(MessageServiceParams{
		TxManager:   env.txManager,
		MessageRepo: memory.NewMessageRepository(db),
		Feed:        env.feed,
		Logger:      logger,
	})
	env.contacts = NewContactService(memory.NewContactRequestRepository(db), env.feed, logger)

	return env
}

// invite adds the emails to the scope, accepting the resulting events.
func (env *testEnv) invite(t *testing.T, scope entity.ScopeID, emails ...string) []*entity.User {
	t.Helper()

	env.publisher.expectEvent(entity.EventUserInvited, nil).Maybe()

	result, err := env.roster.InviteUsers(context.Background(), scope, emails)
	require.NoError(t, err)

	return result.Users
}

// register invites and registers a student, returning the roster entry.
func (env *testEnv) register(t *testing.T, scope entity.ScopeID, email, name string) *entity.User {
	t.Helper()

	env.invite(t, scope, email)
	out, err := env.sessions.Register(context.Background(), usecase.RegisterInput{
		Email:           email,
		Name:            name,
		Password:        testPassword,
		ConfirmPassword: testPassword,
	})
	require.NoError(t, err)

	return out.User
}

// setDeadline stores a design record carrying the deadline.
func (env *testEnv) setDeadline(t *testing.T, scope entity.ScopeID, deadline time.Time) {
	t.Helper()

	design := entity.DefaultDesignSettings(scope)
	design.Deadline = &deadline
	require.NoError(t, env.designs.Save(context.Background(), design))
}

func uploadOf(name, content string) usecase.UploadInput {
	return usecase.UploadInput{
		Filename:    name,
		ContentType: "image/png",
		Size:        int64(len(content)),
		Body:        strings.NewReader(content),
	}
}
