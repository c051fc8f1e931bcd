package service

import "context"

// Mail is one outgoing plain-text email.
type Mail struct {
	To      string
	Subject string
	Body    string
}

// Mailer delivers transactional email such as invitations.
type Mailer interface {
	Send(ctx context.Context, mail Mail) error
}
