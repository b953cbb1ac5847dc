package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/roadready/driving-school-api/internal/appointment"
)

func createAppointmentHandler(svc *appointment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := mustActor(w, r)
		if !ok {
			return
		}

		var req CreateAppointmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		instructorID, err := uuid.Parse(req.InstructorID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_instructor_id", "instructor_id must be a valid UUID")
			return
		}
		candidateID, err := uuid.Parse(req.CandidateID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_candidate_id", "candidate_id must be a valid UUID")
			return
		}

		var carID *uuid.UUID
		if req.CarID != nil {
			id, err := uuid.Parse(*req.CarID)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid_car_id", "car_id must be a valid UUID")
				return
			}
			carID = &id
		}

		detail, err := svc.Create(r.Context(), actor, appointment.CreateInput{
			InstructorID: instructorID,
			CandidateID:  candidateID,
			CarID:        carID,
			Date:         req.Date,
			StartTime:    req.StartTime,
			EndTime:      req.EndTime,
			Hours:        req.Hours,
			Status:       req.Status,
			Notes:        req.Notes,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toAppointmentResponse(detail))
	}
}

func updateAppointmentHandler(svc *appointment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := mustActor(w, r)
		if !ok {
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_appointment_id", "id must be a valid UUID")
			return
		}

		var req UpdateAppointmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		in := appointment.UpdateInput{
			Date:      req.Date,
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
			Hours:     req.Hours,
			Status:    req.Status,
			Notes:     req.Notes,
		}

		if req.InstructorID != nil {
			parsed, err := uuid.Parse(*req.InstructorID)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid_instructor_id", "instructor_id must be a valid UUID")
				return
			}
			in.InstructorID = &parsed
		}
		if req.CandidateID != nil {
			parsed, err := uuid.Parse(*req.CandidateID)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid_candidate_id", "candidate_id must be a valid UUID")
				return
			}
			in.CandidateID = &parsed
		}
		if req.CarID != nil {
			parsed, err := uuid.Parse(*req.CarID)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid_car_id", "car_id must be a valid UUID")
				return
			}
			in.CarID = &parsed
		}

		detail, err := svc.Update(r.Context(), actor, id, in)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toAppointmentResponse(detail))
	}
}

func getAppointmentHandler(svc *appointment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := mustActor(w, r)
		if !ok {
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_appointment_id", "id must be a valid UUID")
			return
		}

		detail, err := svc.Get(r.Context(), actor, id)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toAppointmentResponse(detail))
	}
}

func deleteAppointmentHandler(svc *appointment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := mustActor(w, r)
		if !ok {
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_appointment_id", "id must be a valid UUID")
			return
		}

		if err := svc.Delete(r.Context(), actor, id); err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

func listAppointmentsHandler(svc *appointment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := mustActor(w, r)
		if !ok {
			return
		}

		var filter appointment.ListFilter
		if v := r.URL.Query().Get("instructor_id"); v != "" {
			id, err := uuid.Parse(v)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid_instructor_id", "instructor_id must be a valid UUID")
				return
			}
			filter.InstructorID = &id
		}
		if v := r.URL.Query().Get("candidate_id"); v != "" {
			id, err := uuid.Parse(v)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid_candidate_id", "candidate_id must be a valid UUID")
				return
			}
			filter.CandidateID = &id
		}

		details, err := svc.List(r.Context(), actor, filter)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toAppointmentResponses(details))
	}
}

func listMyAppointmentsHandler(svc *appointment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := mustActor(w, r)
		if !ok {
			return
		}

		details, err := svc.ListMine(r.Context(), actor)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toAppointmentResponses(details))
	}
}
