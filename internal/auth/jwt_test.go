package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret-key-12345", time.Hour)
	userID := uuid.New().String()

	token, err := issuer.Generate(userID, "test@example.com", RoleStaff)
	require.NoError(t, err)

	claims, err := issuer.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "test@example.com", claims.Email)
	assert.Equal(t, RoleStaff, claims.Role)
}

func TestValidate_WrongSecret(t *testing.T) {
	token, err := NewTokenIssuer("one", time.Hour).Generate("u1", "a@b.c", RoleOwner)
	require.NoError(t, err)

	_, err = NewTokenIssuer("two", time.Hour).Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_Expired(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Minute)
	issuer.now = func() time.Time { return time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC) }

	token, err := issuer.Generate("u1", "a@b.c", RoleOwner)
	require.NoError(t, err)

	issuer.now = func() time.Time { return time.Date(2024, 1, 1, 12, 5, 0, 0, time.UTC) }
	_, err = issuer.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGenerate_EmptyUser(t *testing.T) {
	_, err := NewTokenIssuer("secret", time.Hour).Generate("", "a@b.c", RoleOwner)
	assert.Error(t, err)
}
