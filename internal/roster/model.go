package roster

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin      Role = "admin"
	RoleInstructor Role = "instructor"
)

// ParseRole maps a stored role string to the typed enum.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleInstructor:
		return Role(s), true
	}
	return "", false
}

type InstructorType string

const (
	// InstructorInsider is on a fixed arrangement; lessons accrue hours only.
	InstructorInsider InstructorType = "insider"
	// InstructorOutsider is paid per completed lesson hour and accrues credits.
	InstructorOutsider InstructorType = "outsider"
)

type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Name         string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Instructor struct {
	ID          uuid.UUID
	UserID      *uuid.UUID // login account, nil for instructors without access
	Name        string
	Phone       *string
	Type        InstructorType
	RatePerHour float64
	// Accrued totals, only ever increased by lesson completions.
	TotalHours   float64
	TotalCredits float64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Candidate struct {
	ID        uuid.UUID
	Name      string
	Phone     *string
	Email     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Car struct {
	ID        uuid.UUID
	Plate     string
	Model     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
