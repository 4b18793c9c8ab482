package models

import (
	"strings"
	"time"
)

// EmployeeType is the employment category declared on the intake form.
type EmployeeType string

const (
	EmployeeTypeTrainer        EmployeeType = "trainer"
	EmployeeTypeInternSchool   EmployeeType = "intern_school"
	EmployeeTypeInternNoSchool EmployeeType = "intern_no_school"
	EmployeeTypeFullTime       EmployeeType = "fulltime"
)

// IsIntern reports whether t is one of the two intern categories.
func (t EmployeeType) IsIntern() bool {
	return t == EmployeeTypeInternSchool || t == EmployeeTypeInternNoSchool
}

// DisplayName is the human label used in notifications.
func (t EmployeeType) DisplayName() string {
	switch t {
	case EmployeeTypeTrainer:
		return "Freelance Trainer"
	case EmployeeTypeInternSchool:
		return "Intern with School Letter"
	case EmployeeTypeInternNoSchool:
		return "Intern without School Letter"
	case EmployeeTypeFullTime:
		return "Full-time Employee"
	}
	return string(t)
}

// Citizenship statuses sent by the form.
const (
	CitizenshipSGCitizen = "sg_citizen"
	CitizenshipSGPR      = "sg_pr"
)

// DateLayout is the wire format of every form date.
const DateLayout = "2006-01-02"

// Submission is the raw intake. It is never mutated after decoding.
type Submission struct {
	EmployeeType      EmployeeType `json:"employeeType"`
	FullName          string       `json:"fullName"`
	Email             string       `json:"email"`
	NRIC              string       `json:"nric"`
	Nationality       string       `json:"nationality"`
	CitizenshipStatus string       `json:"citizenshipStatus"`
	DOB               string       `json:"dob"`
	Gender            string       `json:"gender"`
	Bank              string       `json:"bank"`
	AccountName       string       `json:"accountName"`
	AccountNumber     string       `json:"accountNumber"`
	StartDate         string       `json:"startDate,omitempty"`
	EndDate           string       `json:"endDate,omitempty"`
	JobTitle          string       `json:"jobTitle,omitempty"`
	RequiresSHG       bool         `json:"requiresSHG"`
}

// Redacted returns a log-safe map of the submission.
func (s Submission) Redacted() map[string]interface{} {
	return map[string]interface{}{
		"employeeType":      s.EmployeeType,
		"fullName":          s.FullName,
		"email":             s.Email,
		"nric":              RedactNRIC(s.NRIC),
		"nationality":       s.Nationality,
		"citizenshipStatus": s.CitizenshipStatus,
		"dob":               s.DOB,
		"gender":            s.Gender,
		"bank":              s.Bank,
		"accountName":       s.AccountName,
		"accountNumber":     RedactAccountNumber(s.AccountNumber),
		"startDate":         s.StartDate,
		"endDate":           s.EndDate,
		"jobTitle":          s.JobTitle,
		"requiresSHG":       s.RequiresSHG,
	}
}

// RedactNRIC keeps the first and last characters: S1234567A -> S****A.
func RedactNRIC(nric string) string {
	if nric == "" {
		return ""
	}
	if len(nric) < 2 {
		return "****"
	}
	return nric[:1] + "****" + nric[len(nric)-1:]
}

// RedactAccountNumber keeps the last four digits.
func RedactAccountNumber(number string) string {
	if number == "" {
		return ""
	}
	if len(number) <= 4 {
		return "****" + number
	}
	return "****" + number[len(number)-4:]
}

// ValidationError is one failed rule.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult holds errors in check order. Empty means the submission may proceed.
type ValidationResult struct {
	Errors []ValidationError `json:"errors"`
}

func (r *ValidationResult) Add(field, message string) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Message: message})
}

func (r ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// Messages returns the human-readable messages in order.
func (r ValidationResult) Messages() []string {
	out := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		out = append(out, e.Message)
	}
	return out
}

// State is a step of the onboarding workflow.
type State string

const (
	StateReceived      State = "received"
	StateValidated     State = "validated"
	StateRejected      State = "rejected"
	StatePersonCreated State = "person_created"
	StateJobCreated    State = "job_created"
	StateJobFailed     State = "job_failed"
	StateNotified      State = "notified"
	StateDone          State = "done"
	StateFailed        State = "failed"
)

// WorkflowOutcome is the result of one background run.
// Success with JobCreated false is a qualified success.
type WorkflowOutcome struct {
	RequestID        string       `json:"requestId"`
	Success          bool         `json:"success"`
	State            State        `json:"state"`
	Path             []State      `json:"path"`
	EmployeeType     EmployeeType `json:"employeeType"`
	PersonID         string       `json:"personId,omitempty"`
	InternalID       string       `json:"internalEmployeeId,omitempty"`
	JobID            *string      `json:"jobId"`
	JobCreated       bool         `json:"jobCreated"`
	ErrorCode        string       `json:"errorCode,omitempty"`
	ErrorMessage     string       `json:"errorMessage,omitempty"`
	StartedAt        time.Time    `json:"startedAt"`
	CompletedAt      time.Time    `json:"completedAt"`
	NotificationSent bool         `json:"notificationSent"`
}

// Transition appends state to the path and makes it current.
func (o *WorkflowOutcome) Transition(state State) {
	o.State = state
	o.Path = append(o.Path, state)
}

// Duration is the wall time between start and completion.
func (o WorkflowOutcome) Duration() time.Duration {
	return o.CompletedAt.Sub(o.StartedAt)
}

// Acknowledgement is returned to the caller before background processing starts.
type Acknowledgement struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	RequestID string `json:"requestId"`
}

// AcceptedMessage is shown to the applicant on acknowledgement.
const AcceptedMessage = "Your submission has been accepted and is being processed. You will receive a confirmation email shortly."

// NormalizedKey is the content identity of a submission used for dedup.
func (s Submission) NormalizedKey() string {
	return strings.Join([]string{
		strings.ToLower(strings.TrimSpace(string(s.EmployeeType))),
		strings.ToUpper(strings.TrimSpace(s.NRIC)),
		strings.ToLower(strings.TrimSpace(s.Email)),
		strings.TrimSpace(s.StartDate),
	}, "|")
}
