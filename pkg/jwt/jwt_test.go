package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *Manager {
	return NewManager("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)
}

func TestAccessToken_Roundtrip(t *testing.T) {
	manager := newTestManager()
	hospitalID := uuid.New()

	token, err := manager.GenerateAccessToken(hospitalID, "front-desk@example.org")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, hospitalID, claims.HospitalID)
	assert.Equal(t, "front-desk@example.org", claims.Email)
	assert.Equal(t, hospitalID.String(), claims.Subject)
}

func TestAccessToken_WrongSecretRejected(t *testing.T) {
	manager := newTestManager()
	other := NewManager("different-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)

	token, err := manager.GenerateAccessToken(uuid.New(), "front-desk@example.org")
	require.NoError(t, err)

	_, err = other.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestAccessToken_ExpiredRejected(t *testing.T) {
	manager := NewManager("access-secret", "refresh-secret", -time.Minute, 7*24*time.Hour)

	token, err := manager.GenerateAccessToken(uuid.New(), "front-desk@example.org")
	require.NoError(t, err)

	_, err = manager.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestRefreshToken_Roundtrip(t *testing.T) {
	manager := newTestManager()
	hospitalID := uuid.New()

	token, err := manager.GenerateRefreshToken(hospitalID)
	require.NoError(t, err)

	parsedID, err := manager.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, hospitalID, parsedID)
}

func TestRefreshToken_AccessTokenRejected(t *testing.T) {
	manager := newTestManager()

	// Tokens signed with the access secret must not pass refresh validation
	token, err := manager.GenerateAccessToken(uuid.New(), "front-desk@example.org")
	require.NoError(t, err)

	_, err = manager.ValidateRefreshToken(token)
	assert.Error(t, err)
}

func TestValidateAccessToken_Garbage(t *testing.T) {
	manager := newTestManager()

	_, err := manager.ValidateAccessToken("not-a-token")
	assert.Error(t, err)
}

func TestHashToken(t *testing.T) {
	manager := newTestManager()

	first, err := manager.HashToken("some-refresh-token")
	require.NoError(t, err)
	second, err := manager.HashToken("some-refresh-token")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Len(t, first, 64)

	other, err := manager.HashToken("another-token")
	require.NoError(t, err)
	assert.NotEqual(t, first, other)

	_, err = manager.HashToken("")
	assert.Error(t, err)
}

func TestExpiryAccessors(t *testing.T) {
	manager := newTestManager()

	assert.Equal(t, 15*time.Minute, manager.GetAccessExpiry())
	assert.Equal(t, 7*24*time.Hour, manager.GetRefreshExpiry())
}
