package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/roadready/driving-school-api/internal/appointment"
	"github.com/roadready/driving-school-api/internal/auth"
	"github.com/roadready/driving-school-api/internal/db"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("seed starting")

	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		log.Fatal("POSTGRES_DSN is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.ConnectPostgres(ctx, dsn)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	gofakeit.Seed(time.Now().UnixNano())

	// A single bcrypt hash is reused for every seeded account; the seed
	// password is only for local development.
	passwordHash, err := auth.HashPassword("drive-safe-123")
	if err != nil {
		log.Fatalf("hash seed password: %v", err)
	}

	if err := seedAdmin(context.Background(), pool, passwordHash); err != nil {
		log.Fatalf("seed admin: %v", err)
	}

	instructorIDs, err := seedInstructors(context.Background(), pool, passwordHash, 12)
	if err != nil {
		log.Fatalf("seed instructors: %v", err)
	}

	candidateIDs, err := seedCandidates(context.Background(), pool, 200)
	if err != nil {
		log.Fatalf("seed candidates: %v", err)
	}

	carIDs, err := seedCars(context.Background(), pool, 10)
	if err != nil {
		log.Fatalf("seed cars: %v", err)
	}

	if err := seedAppointments(context.Background(), pool, instructorIDs, candidateIDs, carIDs, 400); err != nil {
		log.Fatalf("seed appointments: %v", err)
	}

	log.Println("seed complete")
}

func seedAdmin(ctx context.Context, pool *pgxpool.Pool, passwordHash string) error {
	_, err := pool.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, name, role, created_at, updated_at)
		VALUES ($1, 'admin@roadready.local', $2, 'School Admin', 'admin', now(), now())
		ON CONFLICT (email) DO NOTHING
	`, uuid.New(), passwordHash)
	if err != nil {
		return err
	}
	log.Println("admin seeded (admin@roadready.local / drive-safe-123)")
	return nil
}

func seedInstructors(ctx context.Context, pool *pgxpool.Pool, passwordHash string, count int) ([]uuid.UUID, error) {
	log.Printf("seeding %d instructors", count)

	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	ids := make([]uuid.UUID, 0, count)
	for i := 0; i < count; i++ {
		userID := uuid.New()
		name := gofakeit.Name()
		email := fmt.Sprintf("instructor%d@roadready.local", i+1)

		_, err := tx.Exec(ctx, `
			INSERT INTO users (id, email, password_hash, name, role, created_at, updated_at)
			VALUES ($1, $2, $3, $4, 'instructor', now(), now())
		`, userID, email, passwordHash, name)
		if err != nil {
			return nil, err
		}

		// Every third instructor is an outsider paid per lesson hour.
		typ := "insider"
		rate := 0.0
		if i%3 == 0 {
			typ = "outsider"
			rate = float64(gofakeit.Number(8, 20))
		}

		id := uuid.New()
		phone := gofakeit.Phone()
		_, err = tx.Exec(ctx, `
			INSERT INTO instructors (id, user_id, name, phone, instructor_type, rate_per_hour, total_hours, total_credits, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, 0, 0, now(), now())
		`, id, userID, name, phone, typ, rate)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	log.Println("instructors seeded")
	return ids, nil
}

func seedCandidates(ctx context.Context, pool *pgxpool.Pool, count int) ([]uuid.UUID, error) {
	log.Printf("seeding %d candidates", count)

	const batchSize = 100

	ids := make([]uuid.UUID, 0, count)
	for offset := 0; offset < count; offset += batchSize {
		end := offset + batchSize
		if end > count {
			end = count
		}

		tx, err := pool.Begin(ctx)
		if err != nil {
			return nil, err
		}

		for i := offset; i < end; i++ {
			id := uuid.New()
			phone := gofakeit.Phone()
			email := gofakeit.Email()

			_, err := tx.Exec(ctx, `
				INSERT INTO candidates (id, name, phone, email, created_at, updated_at)
				VALUES ($1, $2, $3, $4, now(), now())
			`, id, gofakeit.Name(), phone, email)
			if err != nil {
				_ = tx.Rollback(ctx)
				return nil, err
			}
			ids = append(ids, id)
		}

		if err := tx.Commit(ctx); err != nil {
			return nil, err
		}

		log.Printf("candidates seeded: %d/%d", end, count)
	}

	return ids, nil
}

func seedCars(ctx context.Context, pool *pgxpool.Pool, count int) ([]uuid.UUID, error) {
	log.Printf("seeding %d cars", count)

	models := []string{
		"VW Golf",
		"Toyota Yaris",
		"Opel Corsa",
		"Renault Clio",
		"Skoda Fabia",
		"Ford Fiesta",
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	ids := make([]uuid.UUID, 0, count)
	for i := 0; i < count; i++ {
		id := uuid.New()
		plate := fmt.Sprintf("%s-%d%d%d", gofakeit.LetterN(2), gofakeit.Number(1, 9), gofakeit.Number(0, 9), gofakeit.Number(0, 9))
		model := models[gofakeit.Number(0, len(models)-1)]

		_, err := tx.Exec(ctx, `
			INSERT INTO cars (id, plate, model, created_at, updated_at)
			VALUES ($1, $2, $3, now(), now())
		`, id, plate, model)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	log.Println("cars seeded")
	return ids, nil
}

func seedAppointments(ctx context.Context, pool *pgxpool.Pool, instructorIDs, candidateIDs, carIDs []uuid.UUID, count int) error {
	log.Printf("seeding %d appointments", count)

	// Past lessons are mostly completed; their hours are accrued onto the
	// instructor totals afterwards so seeded data is internally consistent.
	accruedHours := make(map[uuid.UUID]float64)

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for i := 0; i < count; i++ {
		instructorID := instructorIDs[gofakeit.Number(0, len(instructorIDs)-1)]
		candidateID := candidateIDs[gofakeit.Number(0, len(candidateIDs)-1)]

		var carID *uuid.UUID
		if gofakeit.Number(0, 9) > 0 { // one in ten lessons awaits a car
			id := carIDs[gofakeit.Number(0, len(carIDs)-1)]
			carID = &id
		}

		dayOffset := gofakeit.Number(-60, 14)
		date := time.Now().AddDate(0, 0, dayOffset)

		startHour := gofakeit.Number(8, 19)
		startMinute := []int{0, 15, 30, 45}[gofakeit.Number(0, 3)]
		durationMinutes := []int{45, 90}[gofakeit.Number(0, 1)]
		start := fmt.Sprintf("%02d:%02d", startHour, startMinute)
		endTotal := (startHour*60 + startMinute + durationMinutes) % (24 * 60)
		end := fmt.Sprintf("%02d:%02d", endTotal/60, endTotal%60)

		hours := appointment.LessonHours(start, end)

		status := "scheduled"
		if dayOffset < 0 {
			if gofakeit.Number(0, 9) < 8 {
				status = "completed"
				accruedHours[instructorID] += hours
			} else {
				status = "cancelled"
			}
		}

		_, err := tx.Exec(ctx, `
			INSERT INTO appointments (id, instructor_id, candidate_id, car_id, lesson_date, start_time, end_time, hours, status, notes, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, '', now(), now())
		`, uuid.New(), instructorID, candidateID, carID, date, start, end, hours, status)
		if err != nil {
			return err
		}
	}

	for instructorID, hours := range accruedHours {
		_, err := tx.Exec(ctx, `
			UPDATE instructors
			SET total_hours = total_hours + $2,
			    total_credits = total_credits + rate_per_hour * $2,
			    updated_at = now()
			WHERE id = $1 AND instructor_type = 'outsider'
		`, instructorID, hours)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `
			UPDATE instructors
			SET total_hours = total_hours + $2,
			    updated_at = now()
			WHERE id = $1 AND instructor_type = 'insider'
		`, instructorID, hours)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	log.Println("appointments seeded")
	return nil
}
