package appointment

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roadready/driving-school-api/internal/roster"
	"github.com/roadready/driving-school-api/internal/validate"
)

// fakeRepo keeps everything in maps so service behavior can be tested
// without Postgres.
type fakeRepo struct {
	instructors  map[uuid.UUID]*roster.Instructor
	candidates   map[uuid.UUID]*roster.Candidate
	cars         map[uuid.UUID]*roster.Car
	appointments map[uuid.UUID]*Appointment

	totalsErr   error
	totalsCalls int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		instructors:  make(map[uuid.UUID]*roster.Instructor),
		candidates:   make(map[uuid.UUID]*roster.Candidate),
		cars:         make(map[uuid.UUID]*roster.Car),
		appointments: make(map[uuid.UUID]*Appointment),
	}
}

func (f *fakeRepo) addInstructor(typ roster.InstructorType, rate float64) uuid.UUID {
	id := uuid.New()
	f.instructors[id] = &roster.Instructor{ID: id, Name: "Instructor", Type: typ, RatePerHour: rate}
	return id
}

func (f *fakeRepo) addCandidate() uuid.UUID {
	id := uuid.New()
	f.candidates[id] = &roster.Candidate{ID: id, Name: "Candidate"}
	return id
}

func (f *fakeRepo) addCar() uuid.UUID {
	id := uuid.New()
	f.cars[id] = &roster.Car{ID: id, Plate: "AB-123", Model: "VW Golf"}
	return id
}

func (f *fakeRepo) GetInstructorByID(_ context.Context, id uuid.UUID) (*roster.Instructor, error) {
	in, ok := f.instructors[id]
	if !ok {
		return nil, roster.ErrInstructorNotFound
	}
	cp := *in
	return &cp, nil
}

func (f *fakeRepo) GetCandidateByID(_ context.Context, id uuid.UUID) (*roster.Candidate, error) {
	c, ok := f.candidates[id]
	if !ok {
		return nil, roster.ErrCandidateNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeRepo) GetCarByID(_ context.Context, id uuid.UUID) (*roster.Car, error) {
	c, ok := f.cars[id]
	if !ok {
		return nil, roster.ErrCarNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeRepo) UpdateInstructorTotals(_ context.Context, id uuid.UUID, totalHours, totalCredits float64) error {
	f.totalsCalls++
	if f.totalsErr != nil {
		return f.totalsErr
	}
	in, ok := f.instructors[id]
	if !ok {
		return roster.ErrInstructorNotFound
	}
	in.TotalHours = totalHours
	in.TotalCredits = totalCredits
	return nil
}

func (f *fakeRepo) CreateAppointment(_ context.Context, a *Appointment) error {
	cp := *a
	f.appointments[a.ID] = &cp
	return nil
}

func (f *fakeRepo) GetAppointmentByID(_ context.Context, id uuid.UUID) (*Appointment, error) {
	a, ok := f.appointments[id]
	if !ok {
		return nil, ErrAppointmentNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeRepo) UpdateAppointment(_ context.Context, a *Appointment) error {
	if _, ok := f.appointments[a.ID]; !ok {
		return ErrAppointmentNotFound
	}
	cp := *a
	f.appointments[a.ID] = &cp
	return nil
}

func (f *fakeRepo) DeleteAppointment(_ context.Context, id uuid.UUID) error {
	if _, ok := f.appointments[id]; !ok {
		return ErrAppointmentNotFound
	}
	delete(f.appointments, id)
	return nil
}

func (f *fakeRepo) GetAppointmentDetail(_ context.Context, id uuid.UUID) (*Detail, error) {
	a, ok := f.appointments[id]
	if !ok {
		return nil, ErrAppointmentNotFound
	}
	d := &Detail{Appointment: *a}
	if in, ok := f.instructors[a.InstructorID]; ok {
		d.Instructor = &InstructorSummary{ID: in.ID, Name: in.Name}
	}
	if c, ok := f.candidates[a.CandidateID]; ok {
		d.Candidate = &CandidateSummary{ID: c.ID, Name: c.Name}
	}
	if a.CarID != nil {
		if c, ok := f.cars[*a.CarID]; ok {
			d.Car = &CarSummary{ID: c.ID, Plate: c.Plate, Model: c.Model}
		}
	}
	return d, nil
}

func (f *fakeRepo) ListAppointmentDetails(ctx context.Context, filter ListFilter) ([]Detail, error) {
	out := []Detail{}
	for id, a := range f.appointments {
		if filter.InstructorID != nil && a.InstructorID != *filter.InstructorID {
			continue
		}
		if filter.CandidateID != nil && a.CandidateID != *filter.CandidateID {
			continue
		}
		d, err := f.GetAppointmentDetail(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, nil
}

// fakeLocker runs the callback inline, or fails without running it.
type fakeLocker struct {
	err   error
	calls int
}

func (l *fakeLocker) WithInstructorLock(ctx context.Context, _ uuid.UUID, fn func(ctx context.Context) error) error {
	l.calls++
	if l.err != nil {
		return l.err
	}
	return fn(ctx)
}

func adminActor() Actor {
	return Actor{UserID: uuid.New(), Role: roster.RoleAdmin}
}

func instructorActor(instructorID uuid.UUID) Actor {
	return Actor{UserID: uuid.New(), Role: roster.RoleInstructor, InstructorID: &instructorID}
}

func validCreateInput(repo *fakeRepo) CreateInput {
	return CreateInput{
		InstructorID: repo.addInstructor(roster.InstructorInsider, 0),
		CandidateID:  repo.addCandidate(),
		Date:         "2026-09-01",
		StartTime:    "09:00",
		EndTime:      "09:45",
	}
}

func TestCreateDerivesHours(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeLocker{})

	in := validCreateInput(repo)
	in.EndTime = "10:30"

	d, err := svc.Create(context.Background(), adminActor(), in)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, d.Hours, 0.001)
	assert.Equal(t, StatusScheduled, d.Status)
	assert.Equal(t, "Instructor", d.Instructor.Name)
}

func TestCreateExplicitHoursWin(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeLocker{})

	in := validCreateInput(repo)
	in.Hours = 1.5

	d, err := svc.Create(context.Background(), adminActor(), in)
	require.NoError(t, err)
	assert.InDelta(t, 1.5, d.Hours, 0.001)
}

func TestCreateRejectsZeroDuration(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeLocker{})

	in := validCreateInput(repo)
	in.EndTime = in.StartTime

	_, err := svc.Create(context.Background(), adminActor(), in)
	var fe *validate.FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "hours", fe.Field)
}

func TestCreateRejectsBadTime(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeLocker{})

	in := validCreateInput(repo)
	in.StartTime = "25:00"

	_, err := svc.Create(context.Background(), adminActor(), in)
	var fe *validate.FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "StartTime", fe.Field)
	assert.Empty(t, repo.appointments)
}

func TestCreateUnknownReferences(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeLocker{})

	in := validCreateInput(repo)
	in.CandidateID = uuid.New()

	_, err := svc.Create(context.Background(), adminActor(), in)
	assert.ErrorIs(t, err, roster.ErrCandidateNotFound)
	assert.Empty(t, repo.appointments)

	in = validCreateInput(repo)
	missingCar := uuid.New()
	in.CarID = &missingCar

	_, err = svc.Create(context.Background(), adminActor(), in)
	assert.ErrorIs(t, err, roster.ErrCarNotFound)
	assert.Empty(t, repo.appointments)
}

func TestCreateInstructorOnlyForSelf(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeLocker{})

	in := validCreateInput(repo)
	other := repo.addInstructor(roster.InstructorInsider, 0)

	_, err := svc.Create(context.Background(), instructorActor(other), in)
	assert.ErrorIs(t, err, ErrForbidden)

	d, err := svc.Create(context.Background(), instructorActor(in.InstructorID), in)
	require.NoError(t, err)
	assert.Equal(t, in.InstructorID, d.InstructorID)
}

func createScheduled(t *testing.T, svc *Service, repo *fakeRepo, instructorID uuid.UUID) *Detail {
	t.Helper()
	in := CreateInput{
		InstructorID: instructorID,
		CandidateID:  repo.addCandidate(),
		Date:         "2026-09-01",
		StartTime:    "09:00",
		EndTime:      "10:30",
	}
	d, err := svc.Create(context.Background(), adminActor(), in)
	require.NoError(t, err)
	return d
}

func TestUpdateRecomputesHoursOnTimeChange(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeLocker{})
	instructorID := repo.addInstructor(roster.InstructorInsider, 0)
	d := createScheduled(t, svc, repo, instructorID)

	end := "09:45"
	updated, err := svc.Update(context.Background(), adminActor(), d.ID, UpdateInput{EndTime: &end})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, updated.Hours, 0.001)

	// An explicit hours value overrides the recomputation.
	end = "10:30"
	hours := 3.0
	updated, err = svc.Update(context.Background(), adminActor(), d.ID, UpdateInput{EndTime: &end, Hours: &hours})
	require.NoError(t, err)
	assert.InDelta(t, 3.0, updated.Hours, 0.001)
}

func TestUpdateNotFound(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeLocker{})

	notes := "x"
	_, err := svc.Update(context.Background(), adminActor(), uuid.New(), UpdateInput{Notes: &notes})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestUpdateOwnership(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeLocker{})
	instructorID := repo.addInstructor(roster.InstructorInsider, 0)
	other := repo.addInstructor(roster.InstructorInsider, 0)
	d := createScheduled(t, svc, repo, instructorID)

	notes := "updated"
	_, err := svc.Update(context.Background(), instructorActor(other), d.ID, UpdateInput{Notes: &notes})
	assert.ErrorIs(t, err, ErrForbidden)

	// Instructors cannot reassign their lessons to someone else.
	_, err = svc.Update(context.Background(), instructorActor(instructorID), d.ID, UpdateInput{InstructorID: &other})
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := svc.Update(context.Background(), instructorActor(instructorID), d.ID, UpdateInput{Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, "updated", updated.Notes)
}

func TestCompletionAccruesOnce(t *testing.T) {
	repo := newFakeRepo()
	locker := &fakeLocker{}
	svc := NewService(repo, locker)
	instructorID := repo.addInstructor(roster.InstructorOutsider, 10)
	d := createScheduled(t, svc, repo, instructorID) // 2.0 hours

	completed := string(StatusCompleted)
	_, err := svc.Update(context.Background(), adminActor(), d.ID, UpdateInput{Status: &completed})
	require.NoError(t, err)

	in := repo.instructors[instructorID]
	assert.InDelta(t, 2.0, in.TotalHours, 0.001)
	assert.InDelta(t, 20.0, in.TotalCredits, 0.001)
	assert.Equal(t, 1, locker.calls)

	// Saving an already-completed lesson must not accrue again.
	notes := "went well"
	_, err = svc.Update(context.Background(), adminActor(), d.ID, UpdateInput{Notes: &notes})
	require.NoError(t, err)

	in = repo.instructors[instructorID]
	assert.InDelta(t, 2.0, in.TotalHours, 0.001)
	assert.InDelta(t, 20.0, in.TotalCredits, 0.001)
	assert.Equal(t, 1, locker.calls)
}

func TestCompletionInsiderEarnsNoCredits(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeLocker{})
	instructorID := repo.addInstructor(roster.InstructorInsider, 0)
	d := createScheduled(t, svc, repo, instructorID)

	completed := string(StatusCompleted)
	_, err := svc.Update(context.Background(), adminActor(), d.ID, UpdateInput{Status: &completed})
	require.NoError(t, err)

	in := repo.instructors[instructorID]
	assert.InDelta(t, 2.0, in.TotalHours, 0.001)
	assert.Zero(t, in.TotalCredits)
}

func TestAccrualFailureDoesNotFailUpdate(t *testing.T) {
	repo := newFakeRepo()
	repo.totalsErr = errors.New("connection reset")
	svc := NewService(repo, &fakeLocker{})
	instructorID := repo.addInstructor(roster.InstructorOutsider, 10)
	d := createScheduled(t, svc, repo, instructorID)

	completed := string(StatusCompleted)
	updated, err := svc.Update(context.Background(), adminActor(), d.ID, UpdateInput{Status: &completed})
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, updated.Status)
	assert.Zero(t, repo.instructors[instructorID].TotalHours)
}

func TestAccrualLockFailureDoesNotFailUpdate(t *testing.T) {
	repo := newFakeRepo()
	locker := &fakeLocker{err: errors.New("lock not acquired")}
	svc := NewService(repo, locker)
	instructorID := repo.addInstructor(roster.InstructorOutsider, 10)
	d := createScheduled(t, svc, repo, instructorID)

	completed := string(StatusCompleted)
	_, err := svc.Update(context.Background(), adminActor(), d.ID, UpdateInput{Status: &completed})
	require.NoError(t, err)
	assert.Zero(t, repo.totalsCalls)
}

func TestDeleteAdminOnlyAndKeepsAccruals(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeLocker{})
	instructorID := repo.addInstructor(roster.InstructorOutsider, 10)
	d := createScheduled(t, svc, repo, instructorID)

	completed := string(StatusCompleted)
	_, err := svc.Update(context.Background(), adminActor(), d.ID, UpdateInput{Status: &completed})
	require.NoError(t, err)

	err = svc.Delete(context.Background(), instructorActor(instructorID), d.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, svc.Delete(context.Background(), adminActor(), d.ID))
	assert.Empty(t, repo.appointments)

	// Deleting a completed lesson never reverses what was accrued.
	in := repo.instructors[instructorID]
	assert.InDelta(t, 2.0, in.TotalHours, 0.001)
	assert.InDelta(t, 20.0, in.TotalCredits, 0.001)

	err = svc.Delete(context.Background(), adminActor(), d.ID)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestGetOwnership(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeLocker{})
	instructorID := repo.addInstructor(roster.InstructorInsider, 0)
	other := repo.addInstructor(roster.InstructorInsider, 0)
	d := createScheduled(t, svc, repo, instructorID)

	_, err := svc.Get(context.Background(), instructorActor(other), d.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	got, err := svc.Get(context.Background(), instructorActor(instructorID), d.ID)
	require.NoError(t, err)
	assert.Equal(t, d.ID, got.ID)
}

func TestListAdminOnly(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeLocker{})
	instructorID := repo.addInstructor(roster.InstructorInsider, 0)
	createScheduled(t, svc, repo, instructorID)

	_, err := svc.List(context.Background(), instructorActor(instructorID), ListFilter{})
	assert.ErrorIs(t, err, ErrForbidden)

	all, err := svc.List(context.Background(), adminActor(), ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 1)

	none, err := svc.List(context.Background(), adminActor(), ListFilter{InstructorID: ptr(uuid.New())})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestListMine(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeLocker{})
	instructorID := repo.addInstructor(roster.InstructorInsider, 0)
	other := repo.addInstructor(roster.InstructorInsider, 0)
	createScheduled(t, svc, repo, instructorID)
	createScheduled(t, svc, repo, other)

	mine, err := svc.ListMine(context.Background(), instructorActor(instructorID))
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	// An instructor account without a linked profile sees an empty list.
	unlinked := Actor{UserID: uuid.New(), Role: roster.RoleInstructor}
	mine, err = svc.ListMine(context.Background(), unlinked)
	require.NoError(t, err)
	assert.Empty(t, mine)
}

func ptr[T any](v T) *T {
	return &v
}
