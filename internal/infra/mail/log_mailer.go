// Package mail contains Mailer implementations.
package mail

import (
	"context"
	"log/slog"

	deliverycontext "yearbook/internal/delivery/context"
	"yearbook/internal/domain/service"
)

// logMailer writes outgoing mail to the log instead of a mail server.
type logMailer struct {
	logger *slog.Logger
}

// NewLogMailer creates a Mailer for environments without a mail relay.
func NewLogMailer(logger *slog.Logger) service.Mailer {
	return &logMailer{logger: logger}
}

func (m *logMailer) Send(ctx context.Context, mail service.Mail) error {
	deliverycontext.GetLoggerOrDefault(ctx, m.logger).Info("[LogMailer] Mail queued",
		slog.String("to", mail.To),
		slog.String("subject", mail.Subject),
		slog.Int("body_length", len(mail.Body)),
	)

	return nil
}
