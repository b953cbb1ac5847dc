package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roadready/driving-school-api/internal/appointment"
	"github.com/roadready/driving-school-api/internal/roster"
	"github.com/roadready/driving-school-api/internal/validate"
)

func TestWriteServiceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "field error",
			err:        validate.NewFieldError("hours", "must be between 0 and 24"),
			wantStatus: http.StatusBadRequest,
			wantCode:   "validation_failed",
		},
		{
			name:       "forbidden",
			err:        appointment.ErrForbidden,
			wantStatus: http.StatusForbidden,
			wantCode:   "forbidden",
		},
		{
			name:       "appointment missing",
			err:        appointment.ErrAppointmentNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   "appointment_not_found",
		},
		{
			name:       "instructor missing",
			err:        roster.ErrInstructorNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   "instructor_not_found",
		},
		{
			name:       "candidate missing",
			err:        roster.ErrCandidateNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   "candidate_not_found",
		},
		{
			name:       "wrapped sentinel",
			err:        errors.Join(errors.New("query failed"), roster.ErrCarNotFound),
			wantStatus: http.StatusNotFound,
			wantCode:   "car_not_found",
		},
		{
			name:       "unexpected error",
			err:        errors.New("connection reset"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "internal_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeServiceError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantCode, resp.Error)
		})
	}
}
