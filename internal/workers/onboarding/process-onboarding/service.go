package processonboarding

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"onboarding-intake/internal/common/dedup"
	"onboarding-intake/internal/common/errors"
	"onboarding-intake/internal/common/logger"
	"onboarding-intake/internal/common/metrics"
	"onboarding-intake/internal/common/observability"
	"onboarding-intake/internal/common/talenox"
	"onboarding-intake/internal/models"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"
)

// Service accepts submissions and runs each onboarding workflow in the background.
type Service struct {
	config      *Config
	validator   Validator
	transformer Transformer
	hr          HRClient
	observer    Observer
	deduper     dedup.Deduper
	obs         *observability.Observability
	logger      logger.Logger
	now         func() time.Time

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

func NewService(deps ServiceDependencies, config *Config) *Service {
	if config == nil {
		config = DefaultConfig()
	}
	if config.RawExcerptLimit <= 0 {
		config.RawExcerptLimit = 500
	}
	s := &Service{
		config:      config,
		validator:   deps.Validator,
		transformer: deps.Transformer,
		hr:          deps.HRClient,
		observer:    deps.Observer,
		deduper:     deps.Deduper,
		obs:         deps.Observability,
		logger:      deps.Logger,
		now:         deps.Now,
	}
	if s.deduper == nil {
		s.deduper = dedup.NopDeduper{}
	}
	if s.logger == nil {
		s.logger = logger.NewNoOpLogger()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Submit validates sub and, when it may proceed, starts the workflow and returns at once.
// The acknowledgement always carries the request id, also on error.
func (s *Service) Submit(ctx context.Context, sub models.Submission) (models.Acknowledgement, error) {
	requestID := s.newRequestID()
	ack := models.Acknowledgement{RequestID: requestID}
	log := s.logger.WithFields(map[string]interface{}{"requestId": requestID})

	log.Info("Received onboarding submission", map[string]interface{}{
		"submission": sub.Redacted(),
	})

	if result := s.validator.Validate(sub); !result.Valid() {
		metrics.SubmissionsTotal.WithLabelValues(outcomeRejected).Inc()
		log.Warn("Submission rejected", map[string]interface{}{
			"state":  models.StateRejected,
			"errors": result.Messages(),
		})
		return ack, errors.NewValidationFailedError(result.Messages())
	}

	if !s.config.HRConfigured {
		metrics.SubmissionsTotal.WithLabelValues(outcomeNotConfigured).Inc()
		log.Error("Talenox API not configured", nil)
		return ack, errors.NewSystemNotConfiguredError("Talenox API URL or key is missing")
	}

	key := dedup.Key(sub.NormalizedKey())
	claimed, err := s.deduper.Claim(ctx, key, requestID)
	if err != nil {
		log.Warn("Dedup cache unavailable, accepting submission", map[string]interface{}{
			"error": err.Error(),
		})
		claimed, key = true, ""
	}
	if !claimed {
		metrics.SubmissionsTotal.WithLabelValues(outcomeDuplicate).Inc()
		log.Warn("Duplicate submission within dedup window", nil)
		return ack, errors.NewDuplicateSubmissionError(s.config.ContactEmail, http.StatusConflict)
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		s.release(ctx, key, log)
		metrics.SubmissionsTotal.WithLabelValues(outcomeUnavailable).Inc()
		return ack, errors.NewUnavailableError("service is shutting down")
	}
	s.wg.Add(1)
	s.mu.Unlock()

	metrics.WorkflowsActive.Inc()
	go func() {
		defer s.wg.Done()
		defer metrics.WorkflowsActive.Dec()

		// The caller's connection closes as soon as we return.
		runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.config.Timeout)
		defer cancel()

		outcome := s.Run(runCtx, sub, requestID)
		if releasable(outcome) {
			s.release(runCtx, key, log)
		}
	}()

	metrics.SubmissionsTotal.WithLabelValues(outcomeAccepted).Inc()
	ack.Success = true
	ack.Message = models.AcceptedMessage
	return ack, nil
}

// Run performs the workflow after the acknowledgement. It never returns an error;
// the outcome records how far it got.
func (s *Service) Run(ctx context.Context, sub models.Submission, requestID string) (outcome models.WorkflowOutcome) {
	outcome = models.WorkflowOutcome{
		RequestID:    requestID,
		EmployeeType: sub.EmployeeType,
		StartedAt:    s.now(),
	}
	outcome.Transition(models.StateReceived)

	ctx, span := s.obs.StartSpan(ctx, "onboarding.workflow",
		attribute.String("request_id", requestID),
		attribute.String("employee_type", string(sub.EmployeeType)),
	)
	defer span.End()

	log := s.logger.WithFields(map[string]interface{}{
		"requestId": requestID,
		"traceId":   observability.TraceID(ctx),
	})

	defer func() {
		if r := recover(); r != nil {
			log.Error("Background processing panicked", map[string]interface{}{"panic": fmt.Sprint(r)})
			s.fail(ctx, &outcome, sub, errors.NewInternalError(fmt.Sprintf("panic: %v", r)),
				errorTypeSystem, fmt.Sprintf("Unexpected error: %v", r), log)
		}
		outcome.CompletedAt = s.now()
		if !outcome.Success {
			span.SetStatus(codes.Error, outcome.ErrorCode)
		}
		s.record(ctx, outcome, log)
	}()

	if result := s.validator.Validate(sub); !result.Valid() {
		outcome.ErrorCode = string(errors.ErrCodeValidationFailed)
		outcome.ErrorMessage = "Validation failed"
		outcome.Transition(models.StateRejected)
		return outcome
	}
	outcome.Transition(models.StateValidated)

	log.Info("Processing submission in background", map[string]interface{}{
		"submission": sub.Redacted(),
	})

	if !s.config.HRConfigured {
		stdErr := errors.NewSystemNotConfiguredError("Talenox API URL or key is missing")
		s.fail(ctx, &outcome, sub, stdErr, errorTypeSystem, stdErr.Message, log)
		return outcome
	}

	started := s.now()
	record, err := s.transformer.Transform(ctx, sub)
	s.obs.RecordStep(ctx, "transform", s.now().Sub(started), err)
	if err != nil {
		s.fail(ctx, &outcome, sub, errors.NewInternalError(err.Error()),
			errorTypeSystem, fmt.Sprintf("Unexpected error: %v", err), log)
		return outcome
	}
	outcome.InternalID = record.EmployeeID
	log.Debug("Transformed submission", map[string]interface{}{"record": record.Redacted()})

	created, err := s.createPerson(ctx, record, log)
	if err != nil {
		stdErr, errorType, message := s.classifyCreateError(err)
		log.Error("Talenox API error", map[string]interface{}{
			"error_code": stdErr.Code,
			"error":      err.Error(),
		})
		s.fail(ctx, &outcome, sub, stdErr, errorType, message, log)
		return outcome
	}
	outcome.PersonID = created.ID
	outcome.Transition(models.StatePersonCreated)
	log.Info("Employee created successfully", map[string]interface{}{"personId": created.ID})

	// Settle both: a failed job must not cancel the notification.
	var (
		g        errgroup.Group
		jobID    *string
		notified bool
	)
	fanout := s.now()
	g.Go(func() error {
		id, err := s.createJob(ctx, created.ID, sub.EmployeeType, record, log)
		jobID = id
		return err
	})
	g.Go(func() error {
		notified = s.notify(ctx, models.Notification{
			Kind:       models.NotificationSuccess,
			RequestID:  requestID,
			Submission: sub,
			PersonID:   created.ID,
			InternalID: record.EmployeeID,
			At:         s.now(),
		}, log)
		return nil
	})
	jobErr := g.Wait()

	if jobErr != nil {
		stdErr := errors.NewJobCreateFailedError(jobErr)
		outcome.ErrorCode = string(stdErr.Code)
		outcome.ErrorMessage = stdErr.Details
		outcome.Transition(models.StateJobFailed)
		log.Error("Job creation failed, but employee was created", map[string]interface{}{
			"personId": created.ID,
			"error":    jobErr.Error(),
		})
	} else {
		outcome.JobCreated = true
		outcome.JobID = jobID
		outcome.Transition(models.StateJobCreated)
		log.Info("Job created successfully for employee", map[string]interface{}{"personId": created.ID})
	}

	outcome.NotificationSent = notified
	outcome.Transition(models.StateNotified)
	outcome.Success = true
	outcome.Transition(models.StateDone)

	log.Info("Background processing completed successfully", map[string]interface{}{
		"personId":         created.ID,
		"jobCreated":       outcome.JobCreated,
		"fanoutDurationMs": s.now().Sub(fanout).Milliseconds(),
		"durationMs":       s.now().Sub(outcome.StartedAt).Milliseconds(),
	})
	return outcome
}

// Shutdown stops accepting submissions and waits for running workflows.
func (s *Service) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for onboarding workflows: %w", ctx.Err())
	}
}

func (s *Service) createPerson(ctx context.Context, record talenox.EmployeeRecord, log logger.Logger) (*talenox.CreatedEmployee, error) {
	ctx, span := s.obs.StartSpan(ctx, "talenox.create_employee")
	defer span.End()

	started := s.now()
	created, err := s.hr.CreateEmployee(ctx, record)
	elapsed := s.now().Sub(started)

	metrics.ObserveCall("create_employee", err)
	s.obs.RecordStep(ctx, "create_employee", elapsed, err)
	if err != nil {
		span.RecordError(err)
	}
	log.Info("[Timing] Employee creation completed", map[string]interface{}{
		"durationMs": elapsed.Milliseconds(),
	})
	return created, err
}

func (s *Service) createJob(ctx context.Context, personID string, employeeType models.EmployeeType, record talenox.EmployeeRecord, log logger.Logger) (id *string, err error) {
	ctx, span := s.obs.StartSpan(ctx, "talenox.create_job")
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			id, err = nil, fmt.Errorf("job creation panicked: %v", r)
		}
	}()

	job, err := s.transformer.BuildJob(personID, employeeType, record)
	if err != nil {
		return nil, err
	}

	started := s.now()
	created, err := s.hr.CreateJob(ctx, job)
	elapsed := s.now().Sub(started)

	metrics.ObserveCall("create_job", err)
	s.obs.RecordStep(ctx, "create_job", elapsed, err)
	log.Info("[Timing] Job creation completed", map[string]interface{}{
		"durationMs": elapsed.Milliseconds(),
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if created == nil || created.ID == "" {
		return nil, nil
	}
	return &created.ID, nil
}

// fail moves outcome to Failed and sends the failure notification once.
func (s *Service) fail(ctx context.Context, outcome *models.WorkflowOutcome, sub models.Submission, stdErr *errors.StandardError, errorType, message string, log logger.Logger) {
	outcome.Success = false
	outcome.ErrorCode = string(stdErr.Code)
	outcome.ErrorMessage = stdErr.Message
	outcome.Transition(models.StateFailed)

	outcome.NotificationSent = s.notify(ctx, models.Notification{
		Kind:         models.NotificationFailure,
		RequestID:    outcome.RequestID,
		Submission:   sub,
		ErrorType:    errorType,
		ErrorMessage: message,
		At:           s.now(),
	}, log)
}

func (s *Service) notify(ctx context.Context, n models.Notification, log logger.Logger) (sent bool) {
	if s.observer == nil {
		return false
	}
	defer func() {
		if r := recover(); r != nil {
			log.Error("Notifier panicked", map[string]interface{}{"panic": fmt.Sprint(r)})
			sent = false
		}
		s.obs.RecordNotification(ctx, string(n.Kind), sent)
	}()
	return s.observer.Notify(ctx, n)
}

// classifyCreateError separates likely duplicates from other HR failures.
func (s *Service) classifyCreateError(err error) (*errors.StandardError, string, string) {
	limit := s.config.RawExcerptLimit

	var apiErr *talenox.APIError
	if !stderrors.As(err, &apiErr) {
		return errors.NewHRAPIError("", 0, err.Error()), errorTypeSystem, fmt.Sprintf("Unexpected error: %v", err)
	}

	var stdErr *errors.StandardError
	errorType := errorTypeAPI
	if apiErr.IsDuplicate() {
		stdErr = errors.NewDuplicateSubmissionError(s.config.ContactEmail, apiErr.StatusCode)
		errorType = errorTypeDuplicate
	} else {
		stdErr = errors.NewHRAPIError(apiErr.Message(), apiErr.StatusCode, apiErr.Excerpt(limit))
	}

	message := fmt.Sprintf("%s (Status: %d)\nRaw Response: %s", stdErr.Message, apiErr.StatusCode, apiErr.Excerpt(limit))
	return stdErr, errorType, message
}

func (s *Service) record(ctx context.Context, outcome models.WorkflowOutcome, log logger.Logger) {
	state := string(outcome.State)
	employeeType := string(outcome.EmployeeType)

	metrics.WorkflowsCompleted.WithLabelValues(state, employeeType).Inc()
	metrics.WorkflowDuration.WithLabelValues(state).Observe(outcome.Duration().Seconds())

	log.Info("[Timing] Total execution time", map[string]interface{}{
		"state":      state,
		"success":    outcome.Success,
		"durationMs": outcome.Duration().Milliseconds(),
	})
}

func (s *Service) release(ctx context.Context, key string, log logger.Logger) {
	if key == "" {
		return
	}
	if err := s.deduper.Release(ctx, key); err != nil {
		log.Warn("Failed to release dedup key", map[string]interface{}{"error": err.Error()})
	}
}

func (s *Service) newRequestID() string {
	return fmt.Sprintf("req_%d_%s", s.now().UnixMilli(), uuid.NewString()[:7])
}

// releasable reports whether the applicant should be allowed to resubmit at once:
// nothing was created and the HR system did not call it a duplicate.
func releasable(outcome models.WorkflowOutcome) bool {
	return !outcome.Success &&
		outcome.PersonID == "" &&
		outcome.ErrorCode != string(errors.ErrCodeDuplicateSubmission)
}
