package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndComparePassword(t *testing.T) {
	hash, err := HashPassword("password1", bcrypt.MinCost)
	require.NoError(t, err)
	require.NotEqual(t, "password1", hash)

	require.NoError(t, ComparePassword(hash, "password1"))
	require.Error(t, ComparePassword(hash, "password2"))
}

func TestHashPasswordDistinctSalts(t *testing.T) {
	first, err := HashPassword("password1", bcrypt.MinCost)
	require.NoError(t, err)
	second, err := HashPassword("password1", bcrypt.MinCost)
	require.NoError(t, err)

	require.NotEqual(t, first, second)
}
