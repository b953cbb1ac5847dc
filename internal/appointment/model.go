package appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/roadready/driving-school-api/internal/roster"
)

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// DateLayout is the wire format for lesson dates.
const DateLayout = "2006-01-02"

type Appointment struct {
	ID           uuid.UUID
	InstructorID uuid.UUID
	CandidateID  uuid.UUID
	CarID        *uuid.UUID // nil until a car is assigned
	Date         time.Time  // calendar date, time of day irrelevant
	StartTime    string     // HH:MM
	EndTime      string     // HH:MM
	Hours        float64    // lesson hours, derived unless supplied
	Status       Status
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Display-friendly reference summaries. Responses always resolve references
// to these fixed shapes instead of bare ids.

type InstructorSummary struct {
	ID   uuid.UUID
	Name string
}

type CandidateSummary struct {
	ID   uuid.UUID
	Name string
}

type CarSummary struct {
	ID    uuid.UUID
	Plate string
	Model string
}

type Detail struct {
	Appointment
	Instructor *InstructorSummary
	Candidate  *CandidateSummary
	Car        *CarSummary
}

// Actor is the authenticated caller, resolved once at the auth boundary.
// InstructorID is set only for instructor users that have a linked
// instructor profile.
type Actor struct {
	UserID       uuid.UUID
	Role         roster.Role
	InstructorID *uuid.UUID
}

func (a Actor) IsAdmin() bool {
	return a.Role == roster.RoleAdmin
}

// Owns reports whether the actor may touch an appointment assigned to
// instructorID. Admins own everything.
func (a Actor) Owns(instructorID uuid.UUID) bool {
	if a.IsAdmin() {
		return true
	}
	return a.InstructorID != nil && *a.InstructorID == instructorID
}
