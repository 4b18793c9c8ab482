// Package sendgrid sends plain-text notification emails through the SendGrid v3 API.
package sendgrid

import (
	"context"
	"fmt"
	netmail "net/mail"

	"onboarding-intake/internal/models"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Sender is the subset of *sendgrid.Client used here.
type Sender interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

type Mailer struct {
	sender Sender
}

func NewMailer(apiKey string) *Mailer {
	return &Mailer{sender: sendgrid.NewSendClient(apiKey)}
}

// NewMailerWithSender is used by tests to inject a fake sender.
func NewMailerWithSender(sender Sender) *Mailer {
	return &Mailer{sender: sender}
}

func (m *Mailer) Send(ctx context.Context, msg models.EmailMessage) error {
	from := parseAddress(msg.From)
	to := parseAddress(msg.To)

	message := mail.NewV3MailInit(from, msg.Subject, to, mail.NewContent("text/plain", msg.Text))

	response, err := m.sender.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}

	return nil
}

// parseAddress splits "Name <addr>" forms; anything unparseable is used as the bare address.
func parseAddress(raw string) *mail.Email {
	addr, err := netmail.ParseAddress(raw)
	if err != nil {
		return mail.NewEmail("", raw)
	}
	return mail.NewEmail(addr.Name, addr.Address)
}
