package roster

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInstructorNotFound = errors.New("instructor not found")
	ErrCandidateNotFound  = errors.New("candidate not found")
	ErrCarNotFound        = errors.New("car not found")
)

// Repository contains all DB interactions needed for roster entities.
type Repository interface {
	CreateUser(ctx context.Context, u *User) error
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*User, error)

	CreateInstructor(ctx context.Context, in *Instructor) error
	GetInstructorByID(ctx context.Context, id uuid.UUID) (*Instructor, error)
	GetInstructorByUserID(ctx context.Context, userID uuid.UUID) (*Instructor, error)
	ListInstructors(ctx context.Context) ([]Instructor, error)
	UpdateInstructor(ctx context.Context, in *Instructor) error
	DeleteInstructor(ctx context.Context, id uuid.UUID) error

	// UpdateInstructorTotals persists the accrued counters only.
	UpdateInstructorTotals(ctx context.Context, id uuid.UUID, totalHours, totalCredits float64) error

	CreateCandidate(ctx context.Context, c *Candidate) error
	GetCandidateByID(ctx context.Context, id uuid.UUID) (*Candidate, error)
	ListCandidates(ctx context.Context) ([]Candidate, error)
	UpdateCandidate(ctx context.Context, c *Candidate) error
	DeleteCandidate(ctx context.Context, id uuid.UUID) error

	CreateCar(ctx context.Context, c *Car) error
	GetCarByID(ctx context.Context, id uuid.UUID) (*Car, error)
	ListCars(ctx context.Context) ([]Car, error)
	UpdateCar(ctx context.Context, c *Car) error
	DeleteCar(ctx context.Context, id uuid.UUID) error
}
