package impl

import (
	"context"
	"log/slog"

	"yearbook/config"
	deliverycontext "yearbook/internal/delivery/context"
	"yearbook/internal/domain/entity"
	domainerrors "yearbook/internal/domain/errors"
	"yearbook/internal/domain/service"
	"yearbook/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// notificationService implements the NotificationUsecase interface.
type notificationService struct {
	roster  usecase.RosterUsecase
	mailer  service.Mailer
	baseURL string
	logger  *slog.Logger
}

// NotificationServiceParams holds dependencies for NotificationService, injected by Fx.
type NotificationServiceParams struct {
	fx.In

	Roster usecase.RosterUsecase
	Mailer service.Mailer
	Config *config.Config
	Logger *slog.Logger
}

// NewNotificationService is the constructor for notificationService.
func NewNotificationService(params NotificationServiceParams) usecase.NotificationUsecase {
	return &notificationService{
		roster:  params.Roster,
		mailer:  params.Mailer,
		baseURL: params.Config.QRCode.BaseURL,
		logger:  params.Logger,
	}
}

func (srv *notificationService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *notificationService) HandleEvent(ctx context.Context, event *entity.DomainEvent) error {
	switch event.Type {
	case entity.EventUserInvited:
		return srv.sendInvitation(ctx, event)
	case entity.EventPageLocked:
		return srv.sendSubmissionReceipt(ctx, event)
	default:
		srv.log(ctx).Debug("Ignoring event",
			slog.String("event_id", event.EventID),
			slog.String("event_type", string(event.Type)),
		)

		return nil
	}
}

// sendInvitation mails the registration link unless the invitee registered or was removed meanwhile.
func (srv *notificationService) sendInvitation(ctx context.Context, event *entity.DomainEvent) error {
	user, err := srv.roster.FindUserByEmail(ctx, event.Scope, event.Subject)
	if errors.Is(err, domainerrors.ErrUserNotFound) {
		srv.log(ctx).Info("Invitation withdrawn before delivery", slog.String("event_id", event.EventID))

		return nil
	}
	if err != nil {
		return err
	}
	if user.Registered {
		return nil
	}

	mail := service.Mail{
		To:      user.Email,
		Subject: "You are invited to your yearbook",
		Body: "You have been invited to create your yearbook page.\n\n" +
			"Complete your registration here:\n" +
			registrationLink(srv.baseURL, user.Scope, user.Email) + "\n",
	}
	if err := srv.mailer.Send(ctx, mail); err != nil {
		return errors.Wrap(err, "failed to send invitation")
	}

	return nil
}

func (srv *notificationService) sendSubmissionReceipt(ctx context.Context, event *entity.DomainEvent) error {
	mail := service.Mail{
		To:      event.Subject,
		Subject: "Your yearbook page was submitted",
		Body: "Your yearbook page is locked and will appear in the yearbook.\n\n" +
			"Preview it here:\n" +
			previewLink(srv.baseURL, event.Scope) + "\n",
	}
	if err := srv.mailer.Send(ctx, mail); err != nil {
		return errors.Wrap(err, "failed to send submission receipt")
	}

	return nil
}
