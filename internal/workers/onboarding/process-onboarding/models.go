package processonboarding

import (
	"context"
	"time"

	"onboarding-intake/internal/common/dedup"
	"onboarding-intake/internal/common/logger"
	"onboarding-intake/internal/common/observability"
	"onboarding-intake/internal/common/talenox"
	"onboarding-intake/internal/models"
)

type Validator interface {
	Validate(sub models.Submission) models.ValidationResult
}

type Transformer interface {
	Transform(ctx context.Context, sub models.Submission) (talenox.EmployeeRecord, error)
	BuildJob(personID string, employeeType models.EmployeeType, record talenox.EmployeeRecord) (talenox.JobRecord, error)
}

// HRClient is the part of the Talenox client the workflow calls.
type HRClient interface {
	CreateEmployee(ctx context.Context, record talenox.EmployeeRecord) (*talenox.CreatedEmployee, error)
	CreateJob(ctx context.Context, job talenox.JobRecord) (*talenox.CreatedJob, error)
}

// Observer is told about every settled workflow. It cannot fail the workflow;
// the result only reports whether a notification went out.
type Observer interface {
	Notify(ctx context.Context, n models.Notification) bool
}

type ServiceDependencies struct {
	Validator     Validator
	Transformer   Transformer
	HRClient      HRClient
	Observer      Observer
	Deduper       dedup.Deduper
	Observability *observability.Observability
	Logger        logger.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

// Labels of the synchronous outcome counter.
const (
	outcomeAccepted      = "accepted"
	outcomeRejected      = "rejected"
	outcomeNotConfigured = "not_configured"
	outcomeDuplicate     = "duplicate"
	outcomeUnavailable   = "unavailable"
)

// Error types shown in failure notifications.
const (
	errorTypeDuplicate = "Talenox API Error (duplicate)"
	errorTypeAPI       = "Talenox API Error (unknown)"
	errorTypeSystem    = "System Error"
)
