package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, claims Claims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte("test-key"))
	require.NoError(t, err)
	return token
}

func TestParseDecodesClaims(t *testing.T) {
	token := signToken(t, Claims{
		UserID:      "user-1",
		OrgID:       "org-9",
		Permissions: []string{"customers:*"},
		Role:        "manager",
	})

	s, err := Parse(token)
	require.NoError(t, err)
	require.Equal(t, token, s.Token)
	require.Equal(t, "user-1", s.Claims.UserID)
	require.Equal(t, "org-9", s.Claims.OrgID)
	require.Equal(t, "manager", s.Claims.Role)
	require.True(t, s.HasPermission("customers:delete"))
}

func TestParseExpiredToken(t *testing.T) {
	token := signToken(t, Claims{
		UserID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})

	_, err := Parse(token)
	require.ErrorIs(t, err, ErrNoSession)
}

func TestParseFutureExpiry(t *testing.T) {
	token := signToken(t, Claims{
		UserID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	s, err := Parse(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", s.Claims.UserID)
}

func TestParseGarbage(t *testing.T) {
	_, err := Parse("not-a-token")
	require.Error(t, err)
}

func TestLoadFromEnvironment(t *testing.T) {
	token := signToken(t, Claims{UserID: "env-user", OrgID: "org-1"})
	t.Setenv(EnvToken, token)

	s, err := Load()
	require.NoError(t, err)
	require.Equal(t, "env-user", s.Claims.UserID)
}

func TestStoreCurrentExpired(t *testing.T) {
	token := signToken(t, Claims{
		UserID: "env-user",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	t.Setenv(EnvToken, token)

	require.Nil(t, Store{}.Current())
}
