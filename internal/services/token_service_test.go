package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexuscart/nexuscart/internal/apperrors"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	token, err := svc.Generate("user-123")
	require.NoError(t, err)

	userID, err := svc.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := NewTokenService("secret-a", time.Hour).Generate("user-123")
	require.NoError(t, err)

	_, err = NewTokenService("secret-b", time.Hour).Parse(token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestTokenExpired(t *testing.T) {
	svc := NewTokenService("secret", -time.Minute)

	token, err := svc.Generate("user-123")
	require.NoError(t, err)

	_, err = svc.Parse(token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestTokenGarbage(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	_, err := svc.Parse("not-a-token")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}
