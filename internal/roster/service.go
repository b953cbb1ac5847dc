package roster

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/roadready/driving-school-api/internal/auth"
	"github.com/roadready/driving-school-api/internal/validate"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateUserInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
	Name     string `validate:"required"`
	Role     string `validate:"required,oneof=admin instructor"`
}

func (s *Service) CreateUser(ctx context.Context, in CreateUserInput) (*User, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &User{
		ID:           uuid.New(),
		Email:        in.Email,
		PasswordHash: hash,
		Name:         in.Name,
		Role:         Role(in.Role),
	}
	if err := s.repo.CreateUser(ctx, u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// Authenticate verifies credentials and returns the matching user.
// Callers must treat any error as invalid credentials.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	u, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if !auth.CheckPassword(u.PasswordHash, password) {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// InstructorIDForUser resolves the instructor profile linked to a user
// account. A missing profile is reported as ErrInstructorNotFound.
func (s *Service) InstructorIDForUser(ctx context.Context, userID uuid.UUID) (uuid.UUID, error) {
	in, err := s.repo.GetInstructorByUserID(ctx, userID)
	if err != nil {
		return uuid.Nil, err
	}
	return in.ID, nil
}

type CreateInstructorInput struct {
	Name        string  `validate:"required"`
	Phone       *string `validate:"-"`
	Type        string  `validate:"omitempty,oneof=insider outsider"`
	RatePerHour float64 `validate:"gte=0"`
	UserID      *uuid.UUID
}

func (s *Service) CreateInstructor(ctx context.Context, in CreateInstructorInput) (*Instructor, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}

	typ := InstructorType(in.Type)
	if typ == "" {
		typ = InstructorInsider
	}

	instr := &Instructor{
		ID:          uuid.New(),
		UserID:      in.UserID,
		Name:        in.Name,
		Phone:       in.Phone,
		Type:        typ,
		RatePerHour: in.RatePerHour,
	}
	if err := s.repo.CreateInstructor(ctx, instr); err != nil {
		return nil, fmt.Errorf("create instructor: %w", err)
	}
	return instr, nil
}

func (s *Service) GetInstructor(ctx context.Context, id uuid.UUID) (*Instructor, error) {
	return s.repo.GetInstructorByID(ctx, id)
}

func (s *Service) ListInstructors(ctx context.Context) ([]Instructor, error) {
	return s.repo.ListInstructors(ctx)
}

type UpdateInstructorInput struct {
	Name        *string  `validate:"omitempty,min=1"`
	Phone       *string  `validate:"-"`
	Type        *string  `validate:"omitempty,oneof=insider outsider"`
	RatePerHour *float64 `validate:"omitempty,gte=0"`
}

// UpdateInstructor applies a partial update. Accrued totals are not
// settable here; they only move through lesson completion.
func (s *Service) UpdateInstructor(ctx context.Context, id uuid.UUID, in UpdateInstructorInput) (*Instructor, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}

	instr, err := s.repo.GetInstructorByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		instr.Name = *in.Name
	}
	if in.Phone != nil {
		instr.Phone = in.Phone
	}
	if in.Type != nil {
		instr.Type = InstructorType(*in.Type)
	}
	if in.RatePerHour != nil {
		instr.RatePerHour = *in.RatePerHour
	}

	if err := s.repo.UpdateInstructor(ctx, instr); err != nil {
		return nil, fmt.Errorf("update instructor: %w", err)
	}
	return instr, nil
}

func (s *Service) DeleteInstructor(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteInstructor(ctx, id)
}

type CreateCandidateInput struct {
	Name  string  `validate:"required"`
	Phone *string `validate:"-"`
	Email *string `validate:"omitempty,email"`
}

func (s *Service) CreateCandidate(ctx context.Context, in CreateCandidateInput) (*Candidate, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}

	c := &Candidate{
		ID:    uuid.New(),
		Name:  in.Name,
		Phone: in.Phone,
		Email: in.Email,
	}
	if err := s.repo.CreateCandidate(ctx, c); err != nil {
		return nil, fmt.Errorf("create candidate: %w", err)
	}
	return c, nil
}

func (s *Service) GetCandidate(ctx context.Context, id uuid.UUID) (*Candidate, error) {
	return s.repo.GetCandidateByID(ctx, id)
}

func (s *Service) ListCandidates(ctx context.Context) ([]Candidate, error) {
	return s.repo.ListCandidates(ctx)
}

type UpdateCandidateInput struct {
	Name  *string `validate:"omitempty,min=1"`
	Phone *string `validate:"-"`
	Email *string `validate:"omitempty,email"`
}

func (s *Service) UpdateCandidate(ctx context.Context, id uuid.UUID, in UpdateCandidateInput) (*Candidate, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}

	c, err := s.repo.GetCandidateByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		c.Name = *in.Name
	}
	if in.Phone != nil {
		c.Phone = in.Phone
	}
	if in.Email != nil {
		c.Email = in.Email
	}

	if err := s.repo.UpdateCandidate(ctx, c); err != nil {
		return nil, fmt.Errorf("update candidate: %w", err)
	}
	return c, nil
}

func (s *Service) DeleteCandidate(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteCandidate(ctx, id)
}

type CreateCarInput struct {
	Plate string `validate:"required"`
	Model string `validate:"required"`
}

func (s *Service) CreateCar(ctx context.Context, in CreateCarInput) (*Car, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}

	c := &Car{
		ID:    uuid.New(),
		Plate: in.Plate,
		Model: in.Model,
	}
	if err := s.repo.CreateCar(ctx, c); err != nil {
		return nil, fmt.Errorf("create car: %w", err)
	}
	return c, nil
}

func (s *Service) GetCar(ctx context.Context, id uuid.UUID) (*Car, error) {
	return s.repo.GetCarByID(ctx, id)
}

func (s *Service) ListCars(ctx context.Context) ([]Car, error) {
	return s.repo.ListCars(ctx)
}

type UpdateCarInput struct {
	Plate *string `validate:"omitempty,min=1"`
	Model *string `validate:"omitempty,min=1"`
}

func (s *Service) UpdateCar(ctx context.Context, id uuid.UUID, in UpdateCarInput) (*Car, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}

	c, err := s.repo.GetCarByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Plate != nil {
		c.Plate = *in.Plate
	}
	if in.Model != nil {
		c.Model = *in.Model
	}

	if err := s.repo.UpdateCar(ctx, c); err != nil {
		return nil, fmt.Errorf("update car: %w", err)
	}
	return c, nil
}

func (s *Service) DeleteCar(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteCar(ctx, id)
}
