package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/roadready/driving-school-api/internal/appointment"
	"github.com/roadready/driving-school-api/internal/roster"
	"github.com/roadready/driving-school-api/internal/validate"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, details string) {
	writeJSON(w, status, ErrorResponse{Error: code, Details: details})
}

// writeServiceError maps domain errors onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	var fieldErr *validate.FieldError

	switch {
	case errors.As(err, &fieldErr):
		writeError(w, http.StatusBadRequest, "validation_failed", fieldErr.Error())
	case errors.Is(err, appointment.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden", "you may not perform this action")
	case errors.Is(err, appointment.ErrAppointmentNotFound):
		writeError(w, http.StatusNotFound, "appointment_not_found", err.Error())
	case errors.Is(err, roster.ErrInstructorNotFound):
		writeError(w, http.StatusNotFound, "instructor_not_found", err.Error())
	case errors.Is(err, roster.ErrCandidateNotFound):
		writeError(w, http.StatusNotFound, "candidate_not_found", err.Error())
	case errors.Is(err, roster.ErrCarNotFound):
		writeError(w, http.StatusNotFound, "car_not_found", err.Error())
	case errors.Is(err, roster.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "user_not_found", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}
