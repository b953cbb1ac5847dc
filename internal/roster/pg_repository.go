package roster

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

// Helpers

func scanUser(row pgx.Row) (*User, error) {
	var u User
	var role string

	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.Name,
		&role,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	u.Role = Role(role)
	return &u, nil
}

func scanInstructor(row pgx.Row) (*Instructor, error) {
	var in Instructor
	var typ string

	err := row.Scan(
		&in.ID,
		&in.UserID,
		&in.Name,
		&in.Phone,
		&typ,
		&in.RatePerHour,
		&in.TotalHours,
		&in.TotalCredits,
		&in.CreatedAt,
		&in.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInstructorNotFound
		}
		return nil, err
	}

	in.Type = InstructorType(typ)
	return &in, nil
}

func scanCandidate(row pgx.Row) (*Candidate, error) {
	var c Candidate

	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Phone,
		&c.Email,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCandidateNotFound
		}
		return nil, err
	}

	return &c, nil
}

func scanCar(row pgx.Row) (*Car, error) {
	var c Car

	err := row.Scan(
		&c.ID,
		&c.Plate,
		&c.Model,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCarNotFound
		}
		return nil, err
	}

	return &c, nil
}

// Users

func (r *PgRepository) CreateUser(ctx context.Context, u *User) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, name, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, now(), now())
	`, u.ID, u.Email, u.PasswordHash, u.Name, string(u.Role))
	return err
}

func (r *PgRepository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, name, role, created_at, updated_at
		FROM users
		WHERE email = $1
	`, email)
	return scanUser(row)
}

func (r *PgRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, name, role, created_at, updated_at
		FROM users
		WHERE id = $1
	`, id)
	return scanUser(row)
}

// Instructors

const instructorColumns = `id, user_id, name, phone, instructor_type, rate_per_hour, total_hours, total_credits, created_at, updated_at`

func (r *PgRepository) CreateInstructor(ctx context.Context, in *Instructor) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO instructors (id, user_id, name, phone, instructor_type, rate_per_hour, total_hours, total_credits, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())
	`, in.ID, in.UserID, in.Name, in.Phone, string(in.Type), in.RatePerHour, in.TotalHours, in.TotalCredits)
	return err
}

func (r *PgRepository) GetInstructorByID(ctx context.Context, id uuid.UUID) (*Instructor, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+instructorColumns+`
		FROM instructors
		WHERE id = $1
	`, id)
	return scanInstructor(row)
}

func (r *PgRepository) GetInstructorByUserID(ctx context.Context, userID uuid.UUID) (*Instructor, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+instructorColumns+`
		FROM instructors
		WHERE user_id = $1
	`, userID)
	return scanInstructor(row)
}

func (r *PgRepository) ListInstructors(ctx context.Context) ([]Instructor, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+instructorColumns+`
		FROM instructors
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Instructor
	for rows.Next() {
		in, err := scanInstructor(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *in)
	}

	return result, rows.Err()
}

func (r *PgRepository) UpdateInstructor(ctx context.Context, in *Instructor) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE instructors
		SET user_id = $2,
		    name = $3,
		    phone = $4,
		    instructor_type = $5,
		    rate_per_hour = $6,
		    updated_at = now()
		WHERE id = $1
	`, in.ID, in.UserID, in.Name, in.Phone, string(in.Type), in.RatePerHour)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrInstructorNotFound
	}
	return nil
}

func (r *PgRepository) DeleteInstructor(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM instructors WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrInstructorNotFound
	}
	return nil
}

func (r *PgRepository) UpdateInstructorTotals(ctx context.Context, id uuid.UUID, totalHours, totalCredits float64) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE instructors
		SET total_hours = $2,
		    total_credits = $3,
		    updated_at = now()
		WHERE id = $1
	`, id, totalHours, totalCredits)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrInstructorNotFound
	}
	return nil
}

// Candidates

func (r *PgRepository) CreateCandidate(ctx context.Context, c *Candidate) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO candidates (id, name, phone, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())
	`, c.ID, c.Name, c.Phone, c.Email)
	return err
}

func (r *PgRepository) GetCandidateByID(ctx context.Context, id uuid.UUID) (*Candidate, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, phone, email, created_at, updated_at
		FROM candidates
		WHERE id = $1
	`, id)
	return scanCandidate(row)
}

func (r *PgRepository) ListCandidates(ctx context.Context) ([]Candidate, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, phone, email, created_at, updated_at
		FROM candidates
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Candidate
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *c)
	}

	return result, rows.Err()
}

func (r *PgRepository) UpdateCandidate(ctx context.Context, c *Candidate) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE candidates
		SET name = $2,
		    phone = $3,
		    email = $4,
		    updated_at = now()
		WHERE id = $1
	`, c.ID, c.Name, c.Phone, c.Email)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrCandidateNotFound
	}
	return nil
}

func (r *PgRepository) DeleteCandidate(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM candidates WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrCandidateNotFound
	}
	return nil
}

// Cars

func (r *PgRepository) CreateCar(ctx context.Context, c *Car) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO cars (id, plate, model, created_at, updated_at)
		VALUES ($1, $2, $3, now(), now())
	`, c.ID, c.Plate, c.Model)
	return err
}

func (r *PgRepository) GetCarByID(ctx context.Context, id uuid.UUID) (*Car, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, plate, model, created_at, updated_at
		FROM cars
		WHERE id = $1
	`, id)
	return scanCar(row)
}

func (r *PgRepository) ListCars(ctx context.Context) ([]Car, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, plate, model, created_at, updated_at
		FROM cars
		ORDER BY plate
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Car
	for rows.Next() {
		c, err := scanCar(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *c)
	}

	return result, rows.Err()
}

func (r *PgRepository) UpdateCar(ctx context.Context, c *Car) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE cars
		SET plate = $2,
		    model = $3,
		    updated_at = now()
		WHERE id = $1
	`, c.ID, c.Plate, c.Model)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrCarNotFound
	}
	return nil
}

func (r *PgRepository) DeleteCar(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM cars WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrCarNotFound
	}
	return nil
}
