package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roadready/driving-school-api/internal/appointment"
	"github.com/roadready/driving-school-api/internal/auth"
	"github.com/roadready/driving-school-api/internal/roster"
)

const testSecret = "test-secret"

type fakeResolver struct {
	instructorID uuid.UUID
	err          error
}

func (f *fakeResolver) InstructorIDForUser(_ context.Context, _ uuid.UUID) (uuid.UUID, error) {
	if f.err != nil {
		return uuid.Nil, f.err
	}
	return f.instructorID, nil
}

func authed(t *testing.T, mw func(http.Handler) http.Handler, header string) (*httptest.ResponseRecorder, *appointment.Actor) {
	t.Helper()

	var captured *appointment.Actor
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a, ok := ActorFromContext(r.Context()); ok {
			captured = &a
		}
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/appointments/mine", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	mw(next).ServeHTTP(rec, req)
	return rec, captured
}

func TestAuthenticatorRejectsMissingOrBadToken(t *testing.T) {
	mw := Authenticator(testSecret, &fakeResolver{})

	rec, actor := authed(t, mw, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, actor)

	rec, _ = authed(t, mw, "Basic abc")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = authed(t, mw, "Bearer not.a.token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Token signed with a different secret
	raw, err := auth.MakeToken(uuid.NewString(), "admin", "other-secret", time.Hour)
	require.NoError(t, err)
	rec, _ = authed(t, mw, "Bearer "+raw)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Valid signature but a role the roster does not know
	raw, err = auth.MakeToken(uuid.NewString(), "superuser", testSecret, time.Hour)
	require.NoError(t, err)
	rec, _ = authed(t, mw, "Bearer "+raw)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticatorResolvesInstructorActor(t *testing.T) {
	userID := uuid.New()
	instructorID := uuid.New()
	mw := Authenticator(testSecret, &fakeResolver{instructorID: instructorID})

	raw, err := auth.MakeToken(userID.String(), "instructor", testSecret, time.Hour)
	require.NoError(t, err)

	rec, actor := authed(t, mw, "Bearer "+raw)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, actor)
	assert.Equal(t, userID, actor.UserID)
	assert.Equal(t, roster.RoleInstructor, actor.Role)
	require.NotNil(t, actor.InstructorID)
	assert.Equal(t, instructorID, *actor.InstructorID)
}

func TestAuthenticatorUnlinkedInstructor(t *testing.T) {
	mw := Authenticator(testSecret, &fakeResolver{err: roster.ErrInstructorNotFound})

	raw, err := auth.MakeToken(uuid.NewString(), "instructor", testSecret, time.Hour)
	require.NoError(t, err)

	rec, actor := authed(t, mw, "Bearer "+raw)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, actor)
	assert.Nil(t, actor.InstructorID)
}

func TestAuthenticatorResolverFailure(t *testing.T) {
	mw := Authenticator(testSecret, &fakeResolver{err: errors.New("db down")})

	raw, err := auth.MakeToken(uuid.NewString(), "instructor", testSecret, time.Hour)
	require.NoError(t, err)

	rec, actor := authed(t, mw, "Bearer "+raw)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Nil(t, actor)
}

func TestAuthenticatorAdminSkipsResolver(t *testing.T) {
	mw := Authenticator(testSecret, &fakeResolver{err: errors.New("db down")})

	raw, err := auth.MakeToken(uuid.NewString(), "admin", testSecret, time.Hour)
	require.NoError(t, err)

	rec, actor := authed(t, mw, "Bearer "+raw)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, actor)
	assert.True(t, actor.IsAdmin())
}

func TestRequireAdmin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	serve := func(actor *appointment.Actor) *httptest.ResponseRecorder {
		req := httptest.NewRequest("DELETE", "/appointments/"+uuid.NewString(), nil)
		if actor != nil {
			req = req.WithContext(context.WithValue(req.Context(), actorKey, *actor))
		}
		rec := httptest.NewRecorder()
		RequireAdmin(next).ServeHTTP(rec, req)
		return rec
	}

	rec := serve(nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = serve(&appointment.Actor{UserID: uuid.New(), Role: roster.RoleInstructor})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = serve(&appointment.Actor{UserID: uuid.New(), Role: roster.RoleAdmin})
	assert.Equal(t, http.StatusOK, rec.Code)
}
