package notifyhr

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"onboarding-intake/internal/common/logger"
	"onboarding-intake/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, msg models.EmailMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

type MockPublisher struct {
	PublishFunc func(ctx context.Context, subject, message string) (string, error)
}

func (m *MockPublisher) Publish(ctx context.Context, subject, message string) (string, error) {
	return m.PublishFunc(ctx, subject, message)
}

func enabledConfig() *Config {
	cfg := DefaultConfig()
	cfg.NotifyEmail = "ops@example.com"
	return cfg
}

func sampleSubmission() models.Submission {
	return models.Submission{
		EmployeeType:      models.EmployeeTypeInternSchool,
		FullName:          "Jane Tan",
		Email:             "jane@example.com",
		NRIC:              "S1234567A",
		Nationality:       "Singaporean",
		CitizenshipStatus: "sg_citizen",
	}
}

func TestService_Notify_Success(t *testing.T) {
	mailer := new(MockMailer)
	mailer.On("Send", mock.Anything, mock.MatchedBy(func(msg models.EmailMessage) bool {
		return msg.To == "ops@example.com" &&
			msg.Subject == "New Employee: Jane Tan (Intern with School Letter)" &&
			strings.HasPrefix(msg.From, "Tinkercademy Onboarding")
	})).Return(nil)

	svc := NewService(ServiceDependencies{Mailer: mailer, Logger: logger.NewTestLogger(t)}, enabledConfig())

	sent := svc.Notify(t.Context(), models.Notification{
		Kind:       models.NotificationSuccess,
		RequestID:  "req_1_abcdefg",
		Submission: sampleSubmission(),
		PersonID:   "88123",
		InternalID: "307",
	})

	assert.True(t, sent)
	mailer.AssertExpectations(t)
}

func TestService_Notify_SkipsWhenNotConfigured(t *testing.T) {
	t.Run("no mailer", func(t *testing.T) {
		svc := NewService(ServiceDependencies{Logger: logger.NewNoOpLogger()}, enabledConfig())
		assert.False(t, svc.Notify(t.Context(), models.Notification{Kind: models.NotificationSuccess}))
	})

	t.Run("no recipient", func(t *testing.T) {
		mailer := new(MockMailer)
		svc := NewService(ServiceDependencies{Mailer: mailer, Logger: logger.NewNoOpLogger()}, DefaultConfig())

		assert.False(t, svc.Notify(t.Context(), models.Notification{Kind: models.NotificationSuccess}))
		mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})
}

func TestService_Notify_SwallowsSendError(t *testing.T) {
	mailer := new(MockMailer)
	mailer.On("Send", mock.Anything, mock.Anything).Return(errors.New("provider down"))

	svc := NewService(ServiceDependencies{Mailer: mailer, Logger: logger.NewNoOpLogger()}, enabledConfig())

	assert.NotPanics(t, func() {
		sent := svc.Notify(t.Context(), models.Notification{
			Kind:         models.NotificationFailure,
			Submission:   sampleSubmission(),
			ErrorType:    "System Error",
			ErrorMessage: "boom",
		})
		assert.False(t, sent)
	})
}

func TestService_Notify_UnknownKind(t *testing.T) {
	mailer := new(MockMailer)
	svc := NewService(ServiceDependencies{Mailer: mailer, Logger: logger.NewNoOpLogger()}, enabledConfig())

	assert.False(t, svc.Notify(t.Context(), models.Notification{Kind: "digest"}))
	mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestSuccessBody(t *testing.T) {
	jobID := "4455"
	body := SuccessBody(models.Notification{
		Submission: models.Submission{
			EmployeeType: models.EmployeeTypeFullTime,
			FullName:     "Lee Wei",
			Email:        "lee@example.com",
		},
		PersonID:   "88123",
		InternalID: "307",
		JobID:      &jobID,
	})

	assert.Contains(t, body, "Employee Details:\n- Name: Lee Wei\n- Employee Type: Full-time Employee\n")
	assert.Contains(t, body, "- Nationality: Not specified\n")
	assert.Contains(t, body, "- Internal Employee ID: 307\n- Talenox Database ID: 88123\n- Job ID: 4455\n")
	assert.Contains(t, body, "Next Steps:")
	assert.True(t, strings.HasSuffix(body, successFooter))
	assert.NotContains(t, body, "S1234567A")
}

func TestSuccessBody_PendingJob(t *testing.T) {
	body := SuccessBody(models.Notification{Submission: sampleSubmission()})
	assert.Contains(t, body, "- Job ID: Not yet assigned\n")
}

func TestFailureBody(t *testing.T) {
	at := time.Date(2025, time.March, 1, 4, 5, 6, 789_000_000, time.UTC)
	body := FailureBody(models.Notification{
		Kind:         models.NotificationFailure,
		Submission:   models.Submission{},
		ErrorType:    "Talenox API Error (duplicate)",
		ErrorMessage: "This employee may already be registered (Status: 422)",
		At:           at,
	})

	assert.True(t, strings.HasPrefix(body, "FAILED Employee Onboarding Submission\n\n"))
	assert.Contains(t, body, "- Name: Not provided\n- Employee Type: Unknown\n- Email: Not provided\n")
	assert.Contains(t, body, "- Error Type: Talenox API Error (duplicate)\n")
	assert.Contains(t, body, "- Timestamp: 2025-03-01T04:05:06.789Z\n")
	assert.Contains(t, body, "Action Required:")
	assert.True(t, strings.HasSuffix(body, failureFooter))
}

func TestSubjects(t *testing.T) {
	assert.Equal(t, "New Employee: Jane Tan (Intern with School Letter)", SuccessSubject(sampleSubmission()))
	assert.Equal(t, "⚠️ FAILED Onboarding: Jane Tan (Intern with School Letter)", FailureSubject(sampleSubmission()))
	assert.Equal(t, "⚠️ FAILED Onboarding: Unknown (Unknown)", FailureSubject(models.Submission{}))
}

func TestAlertPublisher(t *testing.T) {
	var gotSubject, gotMessage string
	pub := &MockPublisher{PublishFunc: func(_ context.Context, subject, message string) (string, error) {
		gotSubject, gotMessage = subject, message
		return "msg-1", nil
	}}
	alert := NewAlertPublisher(pub, logger.NewNoOpLogger())

	assert.False(t, alert.Notify(t.Context(), models.Notification{Kind: models.NotificationSuccess}))
	assert.Empty(t, gotSubject)

	sent := alert.Notify(t.Context(), models.Notification{
		Kind:         models.NotificationFailure,
		RequestID:    "req_1_abcdefg",
		Submission:   sampleSubmission(),
		ErrorType:    "System Error",
		ErrorMessage: "Unexpected error: boom",
	})
	require.True(t, sent)
	assert.Equal(t, "⚠️ FAILED Onboarding: Jane Tan (Intern with School Letter)", gotSubject)
	assert.Contains(t, gotMessage, "req_1_abcdefg")
	assert.NotContains(t, gotMessage, "S1234567A")
}

func TestAlertPublisher_Error(t *testing.T) {
	pub := &MockPublisher{PublishFunc: func(context.Context, string, string) (string, error) {
		return "", errors.New("throttled")
	}}
	alert := NewAlertPublisher(pub, logger.NewNoOpLogger())
	assert.False(t, alert.Notify(t.Context(), models.Notification{Kind: models.NotificationFailure}))
}

type stubObserver bool

func (s stubObserver) Notify(context.Context, models.Notification) bool { return bool(s) }

func TestFanout(t *testing.T) {
	assert.True(t, Fanout{stubObserver(false), stubObserver(true)}.Notify(t.Context(), models.Notification{}))
	assert.False(t, Fanout{stubObserver(false), nil}.Notify(t.Context(), models.Notification{}))
	assert.False(t, Fanout{}.Notify(t.Context(), models.Notification{}))
}
