package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/roadready/driving-school-api/internal/appointment"
	"github.com/roadready/driving-school-api/internal/roster"
)

type RouterConfig struct {
	Appointments   *appointment.Service
	Roster         *roster.Service
	PgPool         *pgxpool.Pool
	Redis          *redis.Client
	JWTSecret      string
	AccessTokenTTL time.Duration
	LoginLimiter   *RateLimiter
	Env            string
	Version        string
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Apply middleware
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware)

	// Health endpoints
	health := NewHealthHandler(cfg.PgPool, cfg.Redis, cfg.Env, cfg.Version)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)

	// Public auth endpoint, rate limited per client IP
	r.Post("/auth/login", RateLimit(cfg.LoginLimiter, loginHandler(cfg.Roster, cfg.JWTSecret, cfg.AccessTokenTTL)))

	// Everything else requires a verified token
	r.Group(func(r chi.Router) {
		r.Use(Authenticator(cfg.JWTSecret, cfg.Roster))

		r.With(RequireAdmin).Post("/auth/register", registerHandler(cfg.Roster))

		// Appointment lifecycle
		r.Post("/appointments", createAppointmentHandler(cfg.Appointments))
		r.Get("/appointments/mine", listMyAppointmentsHandler(cfg.Appointments))
		r.Get("/appointments/{id}", getAppointmentHandler(cfg.Appointments))
		r.Patch("/appointments/{id}", updateAppointmentHandler(cfg.Appointments))
		r.With(RequireAdmin).Get("/appointments", listAppointmentsHandler(cfg.Appointments))
		r.With(RequireAdmin).Delete("/appointments/{id}", deleteAppointmentHandler(cfg.Appointments))

		// Roster: reads for any authenticated user, writes for admins
		r.Get("/instructors", listInstructorsHandler(cfg.Roster))
		r.Get("/instructors/{id}", getInstructorHandler(cfg.Roster))
		r.With(RequireAdmin).Post("/instructors", createInstructorHandler(cfg.Roster))
		r.With(RequireAdmin).Patch("/instructors/{id}", updateInstructorHandler(cfg.Roster))
		r.With(RequireAdmin).Delete("/instructors/{id}", deleteInstructorHandler(cfg.Roster))

		r.Get("/candidates", listCandidatesHandler(cfg.Roster))
		r.Get("/candidates/{id}", getCandidateHandler(cfg.Roster))
		r.With(RequireAdmin).Post("/candidates", createCandidateHandler(cfg.Roster))
		r.With(RequireAdmin).Patch("/candidates/{id}", updateCandidateHandler(cfg.Roster))
		r.With(RequireAdmin).Delete("/candidates/{id}", deleteCandidateHandler(cfg.Roster))

		r.Get("/cars", listCarsHandler(cfg.Roster))
		r.Get("/cars/{id}", getCarHandler(cfg.Roster))
		r.With(RequireAdmin).Post("/cars", createCarHandler(cfg.Roster))
		r.With(RequireAdmin).Patch("/cars/{id}", updateCarHandler(cfg.Roster))
		r.With(RequireAdmin).Delete("/cars/{id}", deleteCarHandler(cfg.Roster))
	})

	return r
}
