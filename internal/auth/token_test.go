package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSignAndVerifyToken(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	token, expiresAt, err := tm.SignToken("7f9c34c1-1d1b-4567-9c2d-2c9f7a1b0c3d")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.WithinDuration(t, time.Now().Add(60*time.Minute), expiresAt, 5*time.Second)

	uuid, err := tm.VerifyToken(token)
	require.NoError(t, err)
	require.Equal(t, "7f9c34c1-1d1b-4567-9c2d-2c9f7a1b0c3d", uuid)
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	token, _, err := NewTokenManager("secret-a", 60).SignToken("some-uuid")
	require.NoError(t, err)

	_, err = NewTokenManager("secret-b", 60).VerifyToken(token)
	require.Error(t, err)
}

func TestVerifyTokenExpired(t *testing.T) {
	tm := &TokenManager{secret: []byte("test-secret"), ttl: -time.Minute}

	token, _, err := tm.SignToken("some-uuid")
	require.NoError(t, err)

	_, err = tm.VerifyToken(token)
	require.Error(t, err)
}

func TestVerifyTokenGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	_, err := tm.VerifyToken("not-a-token")
	require.Error(t, err)
}

func TestNewTokenManagerDefaultTTL(t *testing.T) {
	tm := NewTokenManager("test-secret", 0)
	require.Equal(t, 90*time.Minute, tm.ttl)
}
