// Package errors provides the standardized error taxonomy of the onboarding intake service.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeInvalidRequest      ErrorCode = "INVALID_REQUEST"
	ErrCodeValidationFailed    ErrorCode = "VALIDATION_FAILED"
	ErrCodeSystemNotConfigured ErrorCode = "SYSTEM_NOT_CONFIGURED"

	ErrCodeDuplicateSubmission ErrorCode = "DUPLICATE_SUBMISSION"
	ErrCodeHRAPIError          ErrorCode = "HR_API_ERROR"
	ErrCodeJobCreateFailed     ErrorCode = "JOB_CREATE_FAILED"

	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"

	ErrCodeInternal    ErrorCode = "INTERNAL_ERROR"
	ErrCodeUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewInvalidRequestError is returned when the request body cannot be decoded.
func NewInvalidRequestError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidRequest,
		Message:   "Invalid request",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewValidationFailedError carries the itemized validation messages in Metadata["details"].
func NewValidationFailedError(messages []string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Validation failed",
		Details:   strings.Join(messages, "; "),
		Retryable: false,
		Metadata:  map[string]interface{}{"details": messages},
		Timestamp: time.Now().UTC(),
	}
}

// NewSystemNotConfiguredError is an operator problem: a credential or URL is missing.
func NewSystemNotConfiguredError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSystemNotConfigured,
		Message:   "API configuration error",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDuplicateSubmissionError tells the applicant to contact a human instead of resubmitting.
func NewDuplicateSubmissionError(contact string, statusCode int) *StandardError {
	details := "If you've already submitted this form, please contact HR instead of resubmitting."
	if contact != "" {
		details = fmt.Sprintf("If you've already submitted this form, please contact HR at %s instead of resubmitting.", contact)
	}
	return &StandardError{
		Code:      ErrCodeDuplicateSubmission,
		Message:   "This employee may already be registered",
		Details:   details,
		Retryable: false,
		Metadata:  map[string]interface{}{"statusCode": statusCode},
		Timestamp: time.Now().UTC(),
	}
}

// NewHRAPIError wraps a non-duplicate failure of the HR system.
func NewHRAPIError(message string, statusCode int, rawBody string) *StandardError {
	if message == "" {
		message = "Failed to create employee in Talenox"
	}
	return &StandardError{
		Code:      ErrCodeHRAPIError,
		Message:   message,
		Details:   rawBody,
		Retryable: statusCode >= 500 || statusCode == 0,
		Metadata:  map[string]interface{}{"statusCode": statusCode},
		Timestamp: time.Now().UTC(),
	}
}

func NewJobCreateFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeJobCreateFailed,
		Message:   "Job creation failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewNotificationSendFailedError(notificationType string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationSendFailed,
		Message:   fmt.Sprintf("Failed to send %s notification", notificationType),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewInternalError is used for anything unexpected, panics included.
func NewInternalError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Internal server error",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnavailableError is returned for submissions arriving during shutdown.
func NewUnavailableError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnavailable,
		Message:   "Service unavailable",
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// AsStandardError unwraps err into a StandardError when one is in the chain.
func AsStandardError(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

// Normalize always returns a StandardError, wrapping unknown errors as internal.
func Normalize(err error) *StandardError {
	if stdErr, ok := AsStandardError(err); ok {
		return stdErr
	}
	return NewInternalError(err.Error())
}

// HasCode reports whether err is a StandardError with the given code.
func HasCode(err error, code ErrorCode) bool {
	stdErr, ok := AsStandardError(err)
	return ok && stdErr.Code == code
}

// HTTPStatus maps an error code to the status returned before acknowledgement.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeInvalidRequest, ErrCodeValidationFailed:
		return http.StatusBadRequest
	case ErrCodeDuplicateSubmission:
		return http.StatusConflict
	case ErrCodeSystemNotConfigured, ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	case ErrCodeHRAPIError, ErrCodeJobCreateFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	switch code {
	case ErrCodeInvalidRequest, ErrCodeValidationFailed:
		return "VALIDATION"
	case ErrCodeSystemNotConfigured:
		return "CONFIGURATION"
	case ErrCodeDuplicateSubmission:
		return "DUPLICATE"
	case ErrCodeHRAPIError, ErrCodeJobCreateFailed:
		return "DOWNSTREAM"
	case ErrCodeNotificationSendFailed:
		return "NOTIFICATION"
	default:
		return "SYSTEM"
	}
}
