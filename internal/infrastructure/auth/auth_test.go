package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestJWTManagerRoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)

	token, err := m.GenerateAccessToken(42, "alice")
	require.NoError(t, err)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

func TestJWTManagerRejectsOtherSecret(t *testing.T) {
	token, err := NewJWTManager("secret", time.Hour).GenerateAccessToken(1, "alice")
	require.NoError(t, err)

	_, err = NewJWTManager("another", time.Hour).ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestJWTManagerRejectsExpired(t *testing.T) {
	m := NewJWTManager("secret", time.Minute)
	m.now = func() time.Time { return time.Now().Add(-time.Hour) }

	token, err := m.GenerateAccessToken(1, "alice")
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestPasswordManager(t *testing.T) {
	m := NewPasswordManagerWithCost(bcrypt.MinCost)

	hash, err := m.HashPassword("correct horse")
	require.NoError(t, err)

	assert.True(t, m.VerifyPassword(hash, "correct horse"))
	assert.False(t, m.VerifyPassword(hash, "wrong horse"))
}
