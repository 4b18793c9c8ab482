package notifyhr

import (
	"context"
	"fmt"

	"onboarding-intake/internal/common/errors"
	"onboarding-intake/internal/common/logger"
	"onboarding-intake/internal/common/metrics"
	"onboarding-intake/internal/models"
)

// Service emails the operations address. A send error is logged and swallowed.
// Without a mailer (no provider credential) or a recipient it only logs.
type Service struct {
	config *Config
	mailer Mailer
	logger logger.Logger
}

func NewService(deps ServiceDependencies, config *Config) *Service {
	if config == nil {
		config = DefaultConfig()
	}
	return &Service{
		config: config,
		mailer: deps.Mailer,
		logger: deps.Logger,
	}
}

// Notify renders and sends n. It reports whether the email was accepted.
func (s *Service) Notify(ctx context.Context, n models.Notification) bool {
	log := s.logger.WithFields(map[string]interface{}{
		"requestId": n.RequestID,
		"kind":      string(n.Kind),
	})

	if s.mailer == nil || s.config.NotifyEmail == "" {
		log.Info("Mail not configured, skipping notification", nil)
		return false
	}

	msg, err := s.render(n)
	if err != nil {
		log.Error("Failed to render notification", map[string]interface{}{"error": err.Error()})
		return false
	}

	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	err = s.mailer.Send(ctx, msg)
	metrics.ObserveCall("send_email", err)
	if err != nil {
		stdErr := errors.NewNotificationSendFailedError(string(n.Kind), err)
		log.Error(stdErr.Message, map[string]interface{}{
			"error_code": stdErr.Code,
			"error":      stdErr.Details,
			"subject":    msg.Subject,
		})
		return false
	}

	log.Info("Notification sent successfully", map[string]interface{}{"subject": msg.Subject})
	return true
}

func (s *Service) render(n models.Notification) (models.EmailMessage, error) {
	msg := models.EmailMessage{
		From: s.config.FromEmail,
		To:   s.config.NotifyEmail,
	}
	switch n.Kind {
	case models.NotificationSuccess:
		msg.Subject = SuccessSubject(n.Submission)
		msg.Text = SuccessBody(n)
	case models.NotificationFailure:
		msg.Subject = FailureSubject(n.Submission)
		msg.Text = FailureBody(n)
	default:
		return models.EmailMessage{}, fmt.Errorf("unknown notification kind %q", n.Kind)
	}
	return msg, nil
}
