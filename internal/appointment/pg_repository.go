package appointment

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/roadready/driving-school-api/internal/roster"
)

type PgRepository struct {
	pool   *pgxpool.Pool
	roster *roster.PgRepository
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{
		pool:   pool,
		roster: roster.NewPgRepository(pool),
	}
}

// Reference lookups delegate to the roster repository so both sides share
// one set of queries and sentinel errors.

func (r *PgRepository) GetInstructorByID(ctx context.Context, id uuid.UUID) (*roster.Instructor, error) {
	return r.roster.GetInstructorByID(ctx, id)
}

func (r *PgRepository) GetCandidateByID(ctx context.Context, id uuid.UUID) (*roster.Candidate, error) {
	return r.roster.GetCandidateByID(ctx, id)
}

func (r *PgRepository) GetCarByID(ctx context.Context, id uuid.UUID) (*roster.Car, error) {
	return r.roster.GetCarByID(ctx, id)
}

func (r *PgRepository) UpdateInstructorTotals(ctx context.Context, id uuid.UUID, totalHours, totalCredits float64) error {
	return r.roster.UpdateInstructorTotals(ctx, id, totalHours, totalCredits)
}

// Helpers

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	var status string

	err := row.Scan(
		&a.ID,
		&a.InstructorID,
		&a.CandidateID,
		&a.CarID,
		&a.Date,
		&a.StartTime,
		&a.EndTime,
		&a.Hours,
		&status,
		&a.Notes,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}

	a.Status = Status(status)
	return &a, nil
}

const appointmentColumns = `id, instructor_id, candidate_id, car_id, lesson_date, start_time, end_time, hours, status, notes, created_at, updated_at`

// Interface methods

func (r *PgRepository) CreateAppointment(ctx context.Context, a *Appointment) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO appointments (id, instructor_id, candidate_id, car_id, lesson_date, start_time, end_time, hours, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now(), now())
	`, a.ID, a.InstructorID, a.CandidateID, a.CarID, a.Date, a.StartTime, a.EndTime, a.Hours, string(a.Status), a.Notes)
	return err
}

func (r *PgRepository) GetAppointmentByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE id = $1
	`, id)
	return scanAppointment(row)
}

func (r *PgRepository) UpdateAppointment(ctx context.Context, a *Appointment) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE appointments
		SET instructor_id = $2,
		    candidate_id = $3,
		    car_id = $4,
		    lesson_date = $5,
		    start_time = $6,
		    end_time = $7,
		    hours = $8,
		    status = $9,
		    notes = $10,
		    updated_at = now()
		WHERE id = $1
	`, a.ID, a.InstructorID, a.CandidateID, a.CarID, a.Date, a.StartTime, a.EndTime, a.Hours, string(a.Status), a.Notes)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}

func (r *PgRepository) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}

const detailQuery = `
	SELECT a.id, a.instructor_id, a.candidate_id, a.car_id, a.lesson_date, a.start_time, a.end_time,
	       a.hours, a.status, a.notes, a.created_at, a.updated_at,
	       i.name, c.name,
	       cars.plate, cars.model
	FROM appointments a
	JOIN instructors i ON i.id = a.instructor_id
	JOIN candidates c ON c.id = a.candidate_id
	LEFT JOIN cars ON cars.id = a.car_id
`

func scanDetail(row pgx.Row) (*Detail, error) {
	var d Detail
	var status string
	var instructorName, candidateName string
	var carPlate, carModel *string

	err := row.Scan(
		&d.ID,
		&d.InstructorID,
		&d.CandidateID,
		&d.CarID,
		&d.Date,
		&d.StartTime,
		&d.EndTime,
		&d.Hours,
		&status,
		&d.Notes,
		&d.CreatedAt,
		&d.UpdatedAt,
		&instructorName,
		&candidateName,
		&carPlate,
		&carModel,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}

	d.Status = Status(status)
	d.Instructor = &InstructorSummary{ID: d.InstructorID, Name: instructorName}
	d.Candidate = &CandidateSummary{ID: d.CandidateID, Name: candidateName}
	if d.CarID != nil && carPlate != nil && carModel != nil {
		d.Car = &CarSummary{ID: *d.CarID, Plate: *carPlate, Model: *carModel}
	}
	return &d, nil
}

func (r *PgRepository) GetAppointmentDetail(ctx context.Context, id uuid.UUID) (*Detail, error) {
	row := r.pool.QueryRow(ctx, detailQuery+` WHERE a.id = $1`, id)
	return scanDetail(row)
}

func (r *PgRepository) ListAppointmentDetails(ctx context.Context, filter ListFilter) ([]Detail, error) {
	q := detailQuery
	args := []any{}

	switch {
	case filter.InstructorID != nil:
		q += ` WHERE a.instructor_id = $1`
		args = append(args, *filter.InstructorID)
	case filter.CandidateID != nil:
		q += ` WHERE a.candidate_id = $1`
		args = append(args, *filter.CandidateID)
	}

	// Start times are HH:MM strings with an optional leading zero, so order
	// numerically rather than lexically.
	q += `
		ORDER BY a.lesson_date DESC,
		         (split_part(a.start_time, ':', 1)::int * 60 + split_part(a.start_time, ':', 2)::int) DESC
	`

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Detail
	for rows.Next() {
		d, err := scanDetail(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *d)
	}

	return result, rows.Err()
}
