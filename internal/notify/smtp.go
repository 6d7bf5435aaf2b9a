package notify

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
)

// SMTP sends nomination notifications through an SMTP relay.
type SMTP struct {
	client   *mail.Client
	sender   string
	receiver string
}

// NewSMTP builds the mail client. sender and receiver are fixed: every
// nomination goes to the same admin inbox.
func NewSMTP(host string, port int, user, password, sender, receiver string) (*SMTP, error) {
	client, err := mail.NewClient(host,
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(user),
		mail.WithPassword(password),
	)
	if err != nil {
		return nil, fmt.Errorf("notify: smtp client: %w", err)
	}
	return &SMTP{client: client, sender: sender, receiver: receiver}, nil
}

// Send delivers one notification.
func (s *SMTP) Send(ctx context.Context, n Nomination) error {
	msg := mail.NewMsg()
	if err := msg.From(s.sender); err != nil {
		return fmt.Errorf("notify: sender address: %w", err)
	}
	if err := msg.To(s.receiver); err != nil {
		return fmt.Errorf("notify: receiver address: %w", err)
	}
	msg.Subject("There is a new dev nomination!")
	msg.SetBodyString(mail.TypeTextPlain, body(n))

	if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("notify: send: %w", err)
	}
	return nil
}
