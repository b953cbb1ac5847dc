package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("drive-safe-123")
	require.NoError(t, err)
	assert.NotEqual(t, "drive-safe-123", hash)

	assert.True(t, CheckPassword(hash, "drive-safe-123"))
	assert.False(t, CheckPassword(hash, "wrong"))
	assert.False(t, CheckPassword("not-a-hash", "drive-safe-123"))
}

func TestTokenRoundTrip(t *testing.T) {
	uid := uuid.NewString()

	raw, err := MakeToken(uid, "instructor", "secret", time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(raw, "secret")
	require.NoError(t, err)
	assert.Equal(t, uid, claims.UserID)
	assert.Equal(t, "instructor", claims.Role)
}

func TestParseTokenRejectsBadInput(t *testing.T) {
	raw, err := MakeToken(uuid.NewString(), "admin", "secret", time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(raw, "other-secret")
	assert.Error(t, err)

	_, err = ParseToken("not.a.token", "secret")
	assert.Error(t, err)

	expired, err := MakeToken(uuid.NewString(), "admin", "secret", -time.Minute)
	require.NoError(t, err)
	_, err = ParseToken(expired, "secret")
	assert.Error(t, err)
}
