package api

import (
	"encoding/json"
	"io"
	"net/http"

	commonerrors "onboarding-intake/internal/common/errors"
	"onboarding-intake/internal/models"
	validatesubmission "onboarding-intake/internal/workers/onboarding/validate-submission"
)

const maxBodyBytes = 1 << 20

// parseFailureDetails is what the form shows when the body is not a JSON object.
const parseFailureDetails = "Could not parse request data"

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Service   string `json:"service"`
}

func (s *Service) submitOnboarding(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.errors.WriteHTTPError(w, "", commonerrors.NewInvalidRequestError(parseFailureDetails))
		return
	}

	shape, err := validatesubmission.CheckShape(body)
	if err != nil {
		s.errors.WriteHTTPError(w, "", commonerrors.NewInvalidRequestError(parseFailureDetails))
		return
	}
	if !shape.Valid {
		s.errors.WriteHTTPError(w, "", commonerrors.NewValidationFailedError(shape.Messages()))
		return
	}

	var sub models.Submission
	if err := json.Unmarshal(body, &sub); err != nil {
		s.errors.WriteHTTPError(w, "", commonerrors.NewInvalidRequestError(parseFailureDetails))
		return
	}

	ack, err := s.submitter.Submit(r.Context(), sub)
	if err != nil {
		s.errors.WriteHTTPError(w, ack.RequestID, err)
		return
	}

	commonerrors.WriteJSON(w, http.StatusAccepted, ack)
}

func (s *Service) preflight(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (s *Service) healthHandler(w http.ResponseWriter, _ *http.Request) {
	commonerrors.WriteJSON(w, http.StatusOK, healthResponse{
		Status:    "healthy",
		Timestamp: s.now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		Service:   ServiceName,
	})
}

func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	commonerrors.WriteJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "Method not allowed"})
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	commonerrors.WriteJSON(w, http.StatusNotFound, map[string]string{"error": "Not found"})
}
