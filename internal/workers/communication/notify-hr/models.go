package notifyhr

import (
	"context"

	"onboarding-intake/internal/common/logger"
	"onboarding-intake/internal/models"
)

// Mailer delivers one rendered email. Implemented by the SendGrid and SES clients.
type Mailer interface {
	Send(ctx context.Context, msg models.EmailMessage) error
}

// Publisher pushes a short alert to a topic. Implemented by the SNS client.
type Publisher interface {
	Publish(ctx context.Context, subject, message string) (string, error)
}

type ServiceDependencies struct {
	Mailer Mailer
	Logger logger.Logger
}
