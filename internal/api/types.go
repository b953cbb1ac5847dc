package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/roadready/driving-school-api/internal/appointment"
	"github.com/roadready/driving-school-api/internal/roster"
)

// Auth

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

type UserResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
	Role  string    `json:"role"`
}

func toUserResponse(u *roster.User) UserResponse {
	return UserResponse{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
		Role:  string(u.Role),
	}
}

// Appointments

type CreateAppointmentRequest struct {
	InstructorID string  `json:"instructor_id"`
	CandidateID  string  `json:"candidate_id"`
	CarID        *string `json:"car_id,omitempty"`
	Date         string  `json:"date"`
	StartTime    string  `json:"start_time"`
	EndTime      string  `json:"end_time"`
	Hours        float64 `json:"hours,omitempty"`
	Status       string  `json:"status,omitempty"`
	Notes        string  `json:"notes,omitempty"`
}

type UpdateAppointmentRequest struct {
	InstructorID *string  `json:"instructor_id,omitempty"`
	CandidateID  *string  `json:"candidate_id,omitempty"`
	CarID        *string  `json:"car_id,omitempty"`
	Date         *string  `json:"date,omitempty"`
	StartTime    *string  `json:"start_time,omitempty"`
	EndTime      *string  `json:"end_time,omitempty"`
	Hours        *float64 `json:"hours,omitempty"`
	Status       *string  `json:"status,omitempty"`
	Notes        *string  `json:"notes,omitempty"`
}

type InstructorSummaryResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type CandidateSummaryResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type CarSummaryResponse struct {
	ID    uuid.UUID `json:"id"`
	Plate string    `json:"plate"`
	Model string    `json:"model"`
}

type AppointmentResponse struct {
	ID         uuid.UUID                 `json:"id"`
	Instructor InstructorSummaryResponse `json:"instructor"`
	Candidate  CandidateSummaryResponse  `json:"candidate"`
	Car        *CarSummaryResponse       `json:"car,omitempty"`
	Date       string                    `json:"date"`
	StartTime  string                    `json:"start_time"`
	EndTime    string                    `json:"end_time"`
	Hours      float64                   `json:"hours"`
	Status     string                    `json:"status"`
	Notes      string                    `json:"notes,omitempty"`
	CreatedAt  time.Time                 `json:"created_at"`
	UpdatedAt  time.Time                 `json:"updated_at"`
}

func toAppointmentResponse(d *appointment.Detail) AppointmentResponse {
	resp := AppointmentResponse{
		ID:        d.ID,
		Date:      d.Date.Format(appointment.DateLayout),
		StartTime: d.StartTime,
		EndTime:   d.EndTime,
		Hours:     d.Hours,
		Status:    string(d.Status),
		Notes:     d.Notes,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
	if d.Instructor != nil {
		resp.Instructor = InstructorSummaryResponse{ID: d.Instructor.ID, Name: d.Instructor.Name}
	}
	if d.Candidate != nil {
		resp.Candidate = CandidateSummaryResponse{ID: d.Candidate.ID, Name: d.Candidate.Name}
	}
	if d.Car != nil {
		resp.Car = &CarSummaryResponse{ID: d.Car.ID, Plate: d.Car.Plate, Model: d.Car.Model}
	}
	return resp
}

func toAppointmentResponses(details []appointment.Detail) []AppointmentResponse {
	out := make([]AppointmentResponse, len(details))
	for i := range details {
		out[i] = toAppointmentResponse(&details[i])
	}
	return out
}

// Roster

type CreateInstructorRequest struct {
	Name        string  `json:"name"`
	Phone       *string `json:"phone,omitempty"`
	Type        string  `json:"instructor_type,omitempty"`
	RatePerHour float64 `json:"rate_per_hour,omitempty"`
	UserID      *string `json:"user_id,omitempty"`
}

type UpdateInstructorRequest struct {
	Name        *string  `json:"name,omitempty"`
	Phone       *string  `json:"phone,omitempty"`
	Type        *string  `json:"instructor_type,omitempty"`
	RatePerHour *float64 `json:"rate_per_hour,omitempty"`
}

type InstructorResponse struct {
	ID           uuid.UUID `json:"id"`
	UserID       *uuid.UUID `json:"user_id,omitempty"`
	Name         string    `json:"name"`
	Phone        *string   `json:"phone,omitempty"`
	Type         string    `json:"instructor_type"`
	RatePerHour  float64   `json:"rate_per_hour"`
	TotalHours   float64   `json:"total_hours"`
	TotalCredits float64   `json:"total_credits"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toInstructorResponse(in *roster.Instructor) InstructorResponse {
	return InstructorResponse{
		ID:           in.ID,
		UserID:       in.UserID,
		Name:         in.Name,
		Phone:        in.Phone,
		Type:         string(in.Type),
		RatePerHour:  in.RatePerHour,
		TotalHours:   in.TotalHours,
		TotalCredits: in.TotalCredits,
		CreatedAt:    in.CreatedAt,
		UpdatedAt:    in.UpdatedAt,
	}
}

type CreateCandidateRequest struct {
	Name  string  `json:"name"`
	Phone *string `json:"phone,omitempty"`
	Email *string `json:"email,omitempty"`
}

type UpdateCandidateRequest struct {
	Name  *string `json:"name,omitempty"`
	Phone *string `json:"phone,omitempty"`
	Email *string `json:"email,omitempty"`
}

type CandidateResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Phone     *string   `json:"phone,omitempty"`
	Email     *string   `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toCandidateResponse(c *roster.Candidate) CandidateResponse {
	return CandidateResponse{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Email:     c.Email,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

type CreateCarRequest struct {
	Plate string `json:"plate"`
	Model string `json:"model"`
}

type UpdateCarRequest struct {
	Plate *string `json:"plate,omitempty"`
	Model *string `json:"model,omitempty"`
}

type CarResponse struct {
	ID        uuid.UUID `json:"id"`
	Plate     string    `json:"plate"`
	Model     string    `json:"model"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toCarResponse(c *roster.Car) CarResponse {
	return CarResponse{
		ID:        c.ID,
		Plate:     c.Plate,
		Model:     c.Model,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
