package notifyhr

import (
	"context"
	"fmt"

	"onboarding-intake/internal/common/logger"
	"onboarding-intake/internal/common/metrics"
	"onboarding-intake/internal/models"
)

// AlertPublisher mirrors failure notifications onto an SNS topic for on-call.
// Success notifications are ignored.
type AlertPublisher struct {
	publisher Publisher
	logger    logger.Logger
}

func NewAlertPublisher(publisher Publisher, log logger.Logger) *AlertPublisher {
	return &AlertPublisher{publisher: publisher, logger: log}
}

func (a *AlertPublisher) Notify(ctx context.Context, n models.Notification) bool {
	if n.Kind != models.NotificationFailure || a.publisher == nil {
		return false
	}

	// The alert carries no personal data beyond the name.
	message := fmt.Sprintf("Request %s failed: %s\n%s", n.RequestID, n.ErrorType, n.ErrorMessage)
	id, err := a.publisher.Publish(ctx, FailureSubject(n.Submission), message)
	metrics.ObserveCall("publish_alert", err)
	if err != nil {
		a.logger.Error("Failed to publish failure alert", map[string]interface{}{
			"requestId": n.RequestID,
			"error":     err.Error(),
		})
		return false
	}

	a.logger.Info("Failure alert published", map[string]interface{}{
		"requestId": n.RequestID,
		"messageId": id,
	})
	return true
}

// Observer receives workflow notifications. It never fails the caller.
type Observer interface {
	Notify(ctx context.Context, n models.Notification) bool
}

// Fanout delivers to every observer and reports whether any accepted.
type Fanout []Observer

func (f Fanout) Notify(ctx context.Context, n models.Notification) bool {
	delivered := false
	for _, o := range f {
		if o == nil {
			continue
		}
		if o.Notify(ctx, n) {
			delivered = true
		}
	}
	return delivered
}
