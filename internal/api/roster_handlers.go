package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/roadready/driving-school-api/internal/roster"
)

func urlID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "id must be a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}

// Instructors

func createInstructorHandler(svc *roster.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateInstructorRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		in := roster.CreateInstructorInput{
			Name:        req.Name,
			Phone:       req.Phone,
			Type:        req.Type,
			RatePerHour: req.RatePerHour,
		}
		if req.UserID != nil {
			id, err := uuid.Parse(*req.UserID)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid_user_id", "user_id must be a valid UUID")
				return
			}
			in.UserID = &id
		}

		instr, err := svc.CreateInstructor(r.Context(), in)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toInstructorResponse(instr))
	}
}

func getInstructorHandler(svc *roster.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := urlID(w, r)
		if !ok {
			return
		}
		instr, err := svc.GetInstructor(r.Context(), id)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toInstructorResponse(instr))
	}
}

func listInstructorsHandler(svc *roster.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		instructors, err := svc.ListInstructors(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		out := make([]InstructorResponse, len(instructors))
		for i := range instructors {
			out[i] = toInstructorResponse(&instructors[i])
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func updateInstructorHandler(svc *roster.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := urlID(w, r)
		if !ok {
			return
		}
		var req UpdateInstructorRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		instr, err := svc.UpdateInstructor(r.Context(), id, roster.UpdateInstructorInput{
			Name:        req.Name,
			Phone:       req.Phone,
			Type:        req.Type,
			RatePerHour: req.RatePerHour,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toInstructorResponse(instr))
	}
}

func deleteInstructorHandler(svc *roster.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := urlID(w, r)
		if !ok {
			return
		}
		if err := svc.DeleteInstructor(r.Context(), id); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

// Candidates

func createCandidateHandler(svc *roster.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateCandidateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}
		c, err := svc.CreateCandidate(r.Context(), roster.CreateCandidateInput{
			Name:  req.Name,
			Phone: req.Phone,
			Email: req.Email,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toCandidateResponse(c))
	}
}

func getCandidateHandler(svc *roster.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := urlID(w, r)
		if !ok {
			return
		}
		c, err := svc.GetCandidate(r.Context(), id)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toCandidateResponse(c))
	}
}

func listCandidatesHandler(svc *roster.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		candidates, err := svc.ListCandidates(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		out := make([]CandidateResponse, len(candidates))
		for i := range candidates {
			out[i] = toCandidateResponse(&candidates[i])
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func updateCandidateHandler(svc *roster.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := urlID(w, r)
		if !ok {
			return
		}
		var req UpdateCandidateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}
		c, err := svc.UpdateCandidate(r.Context(), id, roster.UpdateCandidateInput{
			Name:  req.Name,
			Phone: req.Phone,
			Email: req.Email,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toCandidateResponse(c))
	}
}

func deleteCandidateHandler(svc *roster.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := urlID(w, r)
		if !ok {
			return
		}
		if err := svc.DeleteCandidate(r.Context(), id); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

// Cars

func createCarHandler(svc *roster.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateCarRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}
		c, err := svc.CreateCar(r.Context(), roster.CreateCarInput{
			Plate: req.Plate,
			Model: req.Model,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toCarResponse(c))
	}
}

func getCarHandler(svc *roster.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := urlID(w, r)
		if !ok {
			return
		}
		c, err := svc.GetCar(r.Context(), id)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toCarResponse(c))
	}
}

func listCarsHandler(svc *roster.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cars, err := svc.ListCars(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		out := make([]CarResponse, len(cars))
		for i := range cars {
			out[i] = toCarResponse(&cars[i])
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func updateCarHandler(svc *roster.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := urlID(w, r)
		if !ok {
			return
		}
		var req UpdateCarRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}
		c, err := svc.UpdateCar(r.Context(), id, roster.UpdateCarInput{
			Plate: req.Plate,
			Model: req.Model,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toCarResponse(c))
	}
}

func deleteCarHandler(svc *roster.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := urlID(w, r)
		if !ok {
			return
		}
		if err := svc.DeleteCar(r.Context(), id); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}
