package appointment

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/roadready/driving-school-api/internal/roster"
)

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrForbidden           = errors.New("forbidden")
)

// ListFilter narrows a listing to one instructor or one candidate.
type ListFilter struct {
	InstructorID *uuid.UUID
	CandidateID  *uuid.UUID
}

// Repository contains all DB interactions needed by the service.
// Reference lookups return the roster sentinel errors.
type Repository interface {
	GetInstructorByID(ctx context.Context, id uuid.UUID) (*roster.Instructor, error)
	GetCandidateByID(ctx context.Context, id uuid.UUID) (*roster.Candidate, error)
	GetCarByID(ctx context.Context, id uuid.UUID) (*roster.Car, error)

	// Accrual persistence
	UpdateInstructorTotals(ctx context.Context, id uuid.UUID, totalHours, totalCredits float64) error

	CreateAppointment(ctx context.Context, a *Appointment) error
	GetAppointmentByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	UpdateAppointment(ctx context.Context, a *Appointment) error
	DeleteAppointment(ctx context.Context, id uuid.UUID) error

	GetAppointmentDetail(ctx context.Context, id uuid.UUID) (*Detail, error)
	ListAppointmentDetails(ctx context.Context, filter ListFilter) ([]Detail, error)
}
