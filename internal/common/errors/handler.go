// internal/common/errors/handler.go
package errors

import (
	"encoding/json"
	"net/http"
)

// ErrorHandler renders errors as JSON response bodies with standardized logging
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// ErrorBody is the wire shape of every rejected submission.
type ErrorBody struct {
	Error     string      `json:"error"`
	Details   interface{} `json:"details,omitempty"`
	Code      ErrorCode   `json:"code,omitempty"`
	RequestID string      `json:"requestId,omitempty"`
}

// WriteHTTPError normalizes err, logs it and writes the matching status and body.
func (h *ErrorHandler) WriteHTTPError(w http.ResponseWriter, requestID string, err error) {
	stdErr := Normalize(err)
	status := HTTPStatus(stdErr.Code)

	h.logError(requestID, stdErr, status)

	WriteJSON(w, status, BodyFor(stdErr, requestID))
}

// BodyFor builds the response body; validation failures carry the itemized list.
func BodyFor(stdErr *StandardError, requestID string) ErrorBody {
	body := ErrorBody{
		Error:     stdErr.Message,
		Code:      stdErr.Code,
		RequestID: requestID,
	}
	if list, ok := stdErr.Metadata["details"]; ok {
		body.Details = list
	} else if stdErr.Details != "" {
		body.Details = stdErr.Details
	}
	// internals stay in the log
	if stdErr.Code == ErrCodeInternal {
		body.Details = nil
	}
	return body
}

func (h *ErrorHandler) logError(requestID string, stdErr *StandardError, status int) {
	if h.logger == nil {
		return
	}
	fields := map[string]interface{}{
		"requestId":  requestID,
		"error_code": stdErr.Code,
		"category":   GetErrorCategory(stdErr.Code),
		"status":     status,
		"details":    stdErr.Details,
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error(stdErr.Message, fields)
		return
	}
	h.logger.Warn(stdErr.Message, fields)
}

// WriteJSON writes v with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
