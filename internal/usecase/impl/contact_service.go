package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"yearbook/internal/domain/entity"
	domainerrors "yearbook/internal/domain/errors"
	"yearbook/internal/domain/repository"
	"yearbook/internal/domain/service"
	"yearbook/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// contactService implements the ContactUsecase interface.
type contactService struct {
	contactRepo repository.ContactRequestRepository
	notifier    *notifier
	logger      *slog.Logger
}

// NewContactService is the constructor for contactService.
func NewContactService(contactRepo repository.ContactRequestRepository, feed service.ChangeFeed, logger *slog.Logger) usecase.ContactUsecase {
	return &contactService{
		contactRepo: contactRepo,
		notifier:    newNotifier(feed, nil, logger),
		logger:      logger,
	}
}

func (srv *contactService) ListContactRequests(ctx context.Context) ([]*entity.ContactRequest, error) {
	requests, err := srv.contactRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list contact requests")
	}

	return requests, nil
}

func (srv *contactService) CreateContactRequest(ctx context.Context, input usecase.ContactRequestInput) (*entity.ContactRequest, error) {
	email := entity.NormalizeEmail(input.Email)
	if !entity.IsValidEmail(email) {
		return nil, domainerrors.ErrInvalidEmail
	}
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.SchoolName) == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("name and school name are required")
	}

	request := &entity.ContactRequest{
		ID:         uuid.New(),
		SchoolName: strings.TrimSpace(input.SchoolName),
		Name:       strings.TrimSpace(input.Name),
		Email:      email,
		Phone:      strings.TrimSpace(input.Phone),
		Date:       time.Now().UTC(),
	}
	if err := srv.contactRepo.Create(ctx, request); err != nil {
		return nil, errors.Wrap(err, "failed to create contact request")
	}

	srv.notifier.changed(ctx, entity.TopicContactRequests, entity.ChangeCreated, request.ID.String())
	srv.logger.Info("Contact request received", slog.Any("requestID", request.ID), slog.String("school", request.SchoolName))

	return request, nil
}

func (srv *contactService) DeleteContactRequest(ctx context.Context, id uuid.UUID) error {
	err := srv.contactRepo.Delete(ctx, id)
	if errors.Is(err, repository.ErrContactRequestNotFound) {
		return domainerrors.ErrNotFound.WithDetails("contact request not found")
	}
	if err != nil {
		return errors.Wrap(err, "failed to delete contact request")
	}

	srv.notifier.changed(ctx, entity.TopicContactRequests, entity.ChangeDeleted, id.String())

	return nil
}
