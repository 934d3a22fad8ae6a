package webserver

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueTokenRoundTrip(t *testing.T) {
	token, err := IssueToken("secret", "anna", "staff", time.Hour)
	require.NoError(t, err)

	parsed, err := jwt.ParseWithClaims(token, &SessionClaims{}, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims := parsed.Claims.(*SessionClaims)
	assert.Equal(t, "anna", claims.Login)
	assert.Equal(t, "staff", claims.Level)
	assert.Equal(t, "anna", claims.Subject)
}

func TestIssueTokenRejectsWrongSecret(t *testing.T) {
	token, err := IssueToken("secret", "anna", "staff", time.Hour)
	require.NoError(t, err)

	_, err = jwt.ParseWithClaims(token, &SessionClaims{}, func(*jwt.Token) (interface{}, error) {
		return []byte("other-secret"), nil
	})
	assert.Error(t, err)
}

func TestIssueTokenExpiry(t *testing.T) {
	token, err := IssueToken("secret", "anna", "staff", -time.Minute)
	require.NoError(t, err)

	_, err = jwt.ParseWithClaims(token, &SessionClaims{}, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}
