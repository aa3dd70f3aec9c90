// Package mailer submits plain-text notification mail over an
// authenticated, encrypted SMTP session.
package mailer

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
)

// Settings holds the mail-submission parameters.
type Settings struct {
	Host     string
	Port     int
	From     string
	Password string
}

// Message is one outbound notification. Attachment, when set, is the path
// of a calendar-invite file to attach.
type Message struct {
	To         []string
	Subject    string
	Body       string
	Attachment string
}

// Mailer sends messages one at a time over a fresh session each. There is
// no retry policy: a failed send is terminal for that message and the
// caller decides whether to continue with its siblings.
type Mailer struct {
	settings Settings
}

func New(settings Settings) *Mailer {
	return &Mailer{settings: settings}
}

// Send delivers a single message to all its recipients.
func (m *Mailer) Send(ctx context.Context, msg Message) error {
	out := mail.NewMsg()
	if err := out.From(m.settings.From); err != nil {
		return fmt.Errorf("invalid sender address %q: %w", m.settings.From, err)
	}
	if err := out.To(msg.To...); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	out.Subject(msg.Subject)
	out.SetBodyString(mail.TypeTextPlain, msg.Body)
	if msg.Attachment != "" {
		out.AttachFile(msg.Attachment)
	}

	client, err := mail.NewClient(m.settings.Host,
		mail.WithPort(m.settings.Port),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(m.settings.From),
		mail.WithPassword(m.settings.Password),
	)
	if err != nil {
		return fmt.Errorf("create smtp client for %s: %w", m.settings.Host, err)
	}

	if err := client.DialAndSendWithContext(ctx, out); err != nil {
		return fmt.Errorf("send %q to %d recipients: %w", msg.Subject, len(msg.To), err)
	}
	return nil
}
