package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	redisclient "github.com/roadready/driving-school-api/internal/redis"
	"github.com/roadready/driving-school-api/internal/validate"
)

type Service struct {
	repo   Repository
	locker redisclient.Locker
}

func NewService(repo Repository, locker redisclient.Locker) *Service {
	return &Service{
		repo:   repo,
		locker: locker,
	}
}

type CreateInput struct {
	InstructorID uuid.UUID `validate:"required"`
	CandidateID  uuid.UUID `validate:"required"`
	CarID        *uuid.UUID
	Date         string  `validate:"required,datetime=2006-01-02"`
	StartTime    string  `validate:"required,hhmm"`
	EndTime      string  `validate:"required,hhmm"`
	Hours        float64 // derived from the time range when zero
	Status       string  `validate:"omitempty,oneof=scheduled completed cancelled"`
	Notes        string
}

// Create validates the booking, derives lesson hours when none were
// supplied, and persists it. Instructors may only book lessons for
// themselves; admins may book for anyone.
func (s *Service) Create(ctx context.Context, actor Actor, in CreateInput) (*Detail, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}

	if !actor.Owns(in.InstructorID) {
		return nil, ErrForbidden
	}

	date, err := time.Parse(DateLayout, in.Date)
	if err != nil {
		return nil, validate.NewFieldError("date", "must be a valid date in YYYY-MM-DD format")
	}

	// All reference checks run before any write.
	if _, err := s.repo.GetInstructorByID(ctx, in.InstructorID); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetCandidateByID(ctx, in.CandidateID); err != nil {
		return nil, err
	}
	if in.CarID != nil {
		if _, err := s.repo.GetCarByID(ctx, *in.CarID); err != nil {
			return nil, err
		}
	}

	hours := in.Hours
	if hours == 0 {
		hours = LessonHours(in.StartTime, in.EndTime)
	}
	if err := checkHours(hours); err != nil {
		return nil, err
	}

	status := Status(in.Status)
	if status == "" {
		status = StatusScheduled
	}

	a := &Appointment{
		ID:           uuid.New(),
		InstructorID: in.InstructorID,
		CandidateID:  in.CandidateID,
		CarID:        in.CarID,
		Date:         date,
		StartTime:    in.StartTime,
		EndTime:      in.EndTime,
		Hours:        hours,
		Status:       status,
		Notes:        in.Notes,
	}

	if err := s.repo.CreateAppointment(ctx, a); err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}

	return s.repo.GetAppointmentDetail(ctx, a.ID)
}

type UpdateInput struct {
	InstructorID *uuid.UUID
	CandidateID  *uuid.UUID
	CarID        *uuid.UUID
	Date         *string  `validate:"omitempty,datetime=2006-01-02"`
	StartTime    *string  `validate:"omitempty,hhmm"`
	EndTime      *string  `validate:"omitempty,hhmm"`
	Hours        *float64 // explicit hours win over recomputation
	Status       *string  `validate:"omitempty,oneof=scheduled completed cancelled"`
	Notes        *string
}

// Update applies a partial update, recomputing lesson hours when a time
// field changed without an explicit hours value. The transition into
// completed, and only that edge, triggers the instructor accrual.
func (s *Service) Update(ctx context.Context, actor Actor, id uuid.UUID, in UpdateInput) (*Detail, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}

	a, err := s.repo.GetAppointmentByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !actor.Owns(a.InstructorID) {
		return nil, ErrForbidden
	}
	if !actor.IsAdmin() && in.InstructorID != nil && *in.InstructorID != a.InstructorID {
		// Instructors cannot hand their lessons to someone else.
		return nil, ErrForbidden
	}

	prevStatus := a.Status

	if in.InstructorID != nil && *in.InstructorID != a.InstructorID {
		if _, err := s.repo.GetInstructorByID(ctx, *in.InstructorID); err != nil {
			return nil, err
		}
		a.InstructorID = *in.InstructorID
	}
	if in.CandidateID != nil && *in.CandidateID != a.CandidateID {
		if _, err := s.repo.GetCandidateByID(ctx, *in.CandidateID); err != nil {
			return nil, err
		}
		a.CandidateID = *in.CandidateID
	}
	if in.CarID != nil {
		if _, err := s.repo.GetCarByID(ctx, *in.CarID); err != nil {
			return nil, err
		}
		a.CarID = in.CarID
	}
	if in.Date != nil {
		date, err := time.Parse(DateLayout, *in.Date)
		if err != nil {
			return nil, validate.NewFieldError("date", "must be a valid date in YYYY-MM-DD format")
		}
		a.Date = date
	}

	timesChanged := false
	if in.StartTime != nil && *in.StartTime != a.StartTime {
		a.StartTime = *in.StartTime
		timesChanged = true
	}
	if in.EndTime != nil && *in.EndTime != a.EndTime {
		a.EndTime = *in.EndTime
		timesChanged = true
	}

	switch {
	case in.Hours != nil:
		a.Hours = *in.Hours
	case timesChanged:
		a.Hours = LessonHours(a.StartTime, a.EndTime)
	}
	if err := checkHours(a.Hours); err != nil {
		return nil, err
	}

	if in.Status != nil {
		a.Status = Status(*in.Status)
	}
	if in.Notes != nil {
		a.Notes = *in.Notes
	}

	if err := s.repo.UpdateAppointment(ctx, a); err != nil {
		return nil, fmt.Errorf("update appointment: %w", err)
	}

	// The accrual fires on the edge into completed, not on every save of an
	// already-completed lesson. It is best-effort: a failure is logged and
	// never fails the update.
	if prevStatus != StatusCompleted && a.Status == StatusCompleted {
		s.accrueOnCompletion(ctx, a.InstructorID, a.Hours)
	}

	return s.repo.GetAppointmentDetail(ctx, a.ID)
}

// Delete removes an appointment outright. Completed lessons keep their
// accrued hours and credits; there is deliberately no reversal.
func (s *Service) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}
	return s.repo.DeleteAppointment(ctx, id)
}

func (s *Service) Get(ctx context.Context, actor Actor, id uuid.UUID) (*Detail, error) {
	d, err := s.repo.GetAppointmentDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Owns(d.InstructorID) {
		return nil, ErrForbidden
	}
	return d, nil
}

// List returns appointments for admins, optionally narrowed to one
// instructor or candidate. Instructors must use ListMine.
func (s *Service) List(ctx context.Context, actor Actor, filter ListFilter) ([]Detail, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	return s.repo.ListAppointmentDetails(ctx, filter)
}

// ListMine lists the calling instructor's own appointments. A caller
// without an instructor profile gets an empty list, not an error.
func (s *Service) ListMine(ctx context.Context, actor Actor) ([]Detail, error) {
	if actor.InstructorID == nil {
		return []Detail{}, nil
	}
	return s.repo.ListAppointmentDetails(ctx, ListFilter{InstructorID: actor.InstructorID})
}

func checkHours(hours float64) error {
	if hours <= 0 || hours > 24 {
		return validate.NewFieldError("hours", "must be between 0 and 24")
	}
	return nil
}
