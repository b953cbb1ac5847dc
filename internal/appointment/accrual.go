package appointment

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/roadready/driving-school-api/internal/roster"
)

// accrueOnCompletion adds a completed lesson's hours to the owning
// instructor's running totals. Outsider instructors also earn
// ratePerHour * hours in credits.
//
// The instructor row update is a read-modify-write, so it runs under the
// per-instructor redis lock; two lessons completing at once for the same
// instructor cannot lose an update. Any failure here, lock included, is
// logged and swallowed: the appointment write has already happened and
// stays authoritative.
func (s *Service) accrueOnCompletion(ctx context.Context, instructorID uuid.UUID, hours float64) {
	err := s.locker.WithInstructorLock(ctx, instructorID, func(ctx context.Context) error {
		return s.applyAccrual(ctx, instructorID, hours)
	})
	if err != nil {
		slog.ErrorContext(ctx, "instructor accrual failed",
			slog.String("instructor_id", instructorID.String()),
			slog.Float64("hours", hours),
			slog.Any("error", err),
		)
	}
}

func (s *Service) applyAccrual(ctx context.Context, instructorID uuid.UUID, hours float64) error {
	in, err := s.repo.GetInstructorByID(ctx, instructorID)
	if err != nil {
		return err
	}

	totalHours := round2(in.TotalHours + hours)
	totalCredits := in.TotalCredits
	if in.Type == roster.InstructorOutsider {
		totalCredits = round2(totalCredits + in.RatePerHour*hours)
	}

	return s.repo.UpdateInstructorTotals(ctx, instructorID, totalHours, totalCredits)
}
