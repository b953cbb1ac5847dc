package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/roadready/driving-school-api/internal/appointment"
	"github.com/roadready/driving-school-api/internal/auth"
	"github.com/roadready/driving-school-api/internal/roster"
)

const actorKey contextKey = "actor"

// InstructorResolver maps a user account to its instructor profile.
type InstructorResolver interface {
	InstructorIDForUser(ctx context.Context, userID uuid.UUID) (uuid.UUID, error)
}

// Authenticator verifies the bearer token and resolves the caller into an
// appointment.Actor exactly once. Handlers downstream never re-derive the
// role from strings. Instructor users without a linked instructor profile
// get a nil InstructorID; whether that matters is up to each operation.
func Authenticator(secret string, resolver InstructorResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if raw == "" || raw == r.Header.Get("Authorization") {
				writeError(w, http.StatusUnauthorized, "unauthenticated", "missing bearer token")
				return
			}

			claims, err := auth.ParseToken(raw, secret)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "unauthenticated", "invalid token")
				return
			}

			userID, err := uuid.Parse(claims.UserID)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "unauthenticated", "invalid token")
				return
			}

			role, ok := roster.ParseRole(claims.Role)
			if !ok {
				writeError(w, http.StatusUnauthorized, "unauthenticated", "invalid token")
				return
			}

			actor := appointment.Actor{UserID: userID, Role: role}

			if role == roster.RoleInstructor {
				instructorID, err := resolver.InstructorIDForUser(r.Context(), userID)
				switch {
				case err == nil:
					actor.InstructorID = &instructorID
				case errors.Is(err, roster.ErrInstructorNotFound):
					// No profile yet; the actor stays unlinked.
				default:
					writeError(w, http.StatusInternalServerError, "internal_error", "could not resolve instructor profile")
					return
				}
			}

			ctx := context.WithValue(r.Context(), actorKey, actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ActorFromContext returns the authenticated actor set by Authenticator.
func ActorFromContext(ctx context.Context) (appointment.Actor, bool) {
	a, ok := ctx.Value(actorKey).(appointment.Actor)
	return a, ok
}

func mustActor(w http.ResponseWriter, r *http.Request) (appointment.Actor, bool) {
	a, ok := ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated", "missing actor")
	}
	return a, ok
}

// RequireAdmin guards admin-only routes.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := mustActor(w, r)
		if !ok {
			return
		}
		if !actor.IsAdmin() {
			writeError(w, http.StatusForbidden, "forbidden", "admin role required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
