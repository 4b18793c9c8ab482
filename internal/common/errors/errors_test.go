package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturingLogger struct {
	warns  []string
	errors []string
}

func (l *capturingLogger) Warn(msg string, _ map[string]interface{})  { l.warns = append(l.warns, msg) }
func (l *capturingLogger) Error(msg string, _ map[string]interface{}) { l.errors = append(l.errors, msg) }

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code     ErrorCode
		expected int
	}{
		{ErrCodeInvalidRequest, http.StatusBadRequest},
		{ErrCodeValidationFailed, http.StatusBadRequest},
		{ErrCodeDuplicateSubmission, http.StatusConflict},
		{ErrCodeSystemNotConfigured, http.StatusServiceUnavailable},
		{ErrCodeUnavailable, http.StatusServiceUnavailable},
		{ErrCodeHRAPIError, http.StatusBadGateway},
		{ErrCodeJobCreateFailed, http.StatusBadGateway},
		{ErrCodeInternal, http.StatusInternalServerError},
		{ErrorCode("SOMETHING_ELSE"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.code))
		})
	}
}

func TestNormalize(t *testing.T) {
	wrapped := fmt.Errorf("submit: %w", NewValidationFailedError([]string{"Full name is required"}))
	assert.Equal(t, ErrCodeValidationFailed, Normalize(wrapped).Code)
	assert.True(t, HasCode(wrapped, ErrCodeValidationFailed))

	plain := Normalize(stderrors.New("boom"))
	assert.Equal(t, ErrCodeInternal, plain.Code)
	assert.Equal(t, "boom", plain.Details)
	assert.False(t, HasCode(stderrors.New("boom"), ErrCodeInternal))
}

func TestNewDuplicateSubmissionError(t *testing.T) {
	withContact := NewDuplicateSubmissionError("hr@example.com", 409)
	assert.Contains(t, withContact.Details, "contact HR at hr@example.com")
	assert.Equal(t, 409, withContact.Metadata["statusCode"])

	withoutContact := NewDuplicateSubmissionError("", 422)
	assert.Contains(t, withoutContact.Details, "please contact HR instead")
}

func TestNewHRAPIError_Retryable(t *testing.T) {
	assert.True(t, NewHRAPIError("", 502, "").Retryable)
	assert.True(t, NewHRAPIError("", 0, "").Retryable)
	assert.False(t, NewHRAPIError("bad bank", 422, "").Retryable)
	assert.Equal(t, "Failed to create employee in Talenox", NewHRAPIError("", 500, "").Message)
}

func TestBodyFor(t *testing.T) {
	validation := BodyFor(NewValidationFailedError([]string{"a", "b"}), "")
	assert.Equal(t, []string{"a", "b"}, validation.Details)
	assert.Empty(t, validation.RequestID)

	internal := BodyFor(NewInternalError("nil pointer at line 12"), "req_1")
	assert.Nil(t, internal.Details)
	assert.Equal(t, "req_1", internal.RequestID)

	notConfigured := BodyFor(NewSystemNotConfiguredError("TALENOX_API_KEY is not set"), "req_2")
	assert.Equal(t, "TALENOX_API_KEY is not set", notConfigured.Details)
}

func TestErrorHandler_WriteHTTPError(t *testing.T) {
	log := &capturingLogger{}
	handler := NewErrorHandler(log)

	rec := httptest.NewRecorder()
	handler.WriteHTTPError(rec, "req_9", NewDuplicateSubmissionError("hr@example.com", 409))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "This employee may already be registered", body["error"])
	assert.Equal(t, "DUPLICATE_SUBMISSION", body["code"])
	assert.Equal(t, "req_9", body["requestId"])
	assert.Len(t, log.warns, 1)
	assert.Empty(t, log.errors)

	rec = httptest.NewRecorder()
	handler.WriteHTTPError(rec, "", stderrors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Len(t, log.errors, 1)
}
