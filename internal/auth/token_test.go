package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LuisSinastre/ServiceDesk-Backend/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("unit-secret", 60)

	claims := &Claims{
		UserID:     42,
		Name:       "Alice Souza",
		Position:   "COMMERCIAL MANAGER",
		Manager:    "Elisa Prado",
		Profile:    domain.RoleManager,
		ApproverID: 100,
		PageIDs:    []int64{1, 2, 3},
	}

	token, expiresAt, err := tm.GenerateToken(claims)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	parsed, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), parsed.UserID)
	assert.Equal(t, "Alice Souza", parsed.Name)
	assert.Equal(t, domain.RoleManager, parsed.Profile)
	assert.Equal(t, int64(100), parsed.ApproverID)
	assert.Equal(t, int64(0), parsed.TreatmentID)
	assert.Equal(t, []int64{1, 2, 3}, parsed.PageIDs)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	tm := NewTokenManager("secret-a", 60)
	other := NewTokenManager("secret-b", 60)

	token, _, err := tm.GenerateToken(&Claims{UserID: 1})
	require.NoError(t, err)

	_, err = other.ParseToken(token)
	assert.Error(t, err)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	tm := NewTokenManager("unit-secret", 60)
	_, err := tm.ParseToken("not-a-token")
	assert.Error(t, err)
}

func TestTokenTTLDefaultsWhenNonPositive(t *testing.T) {
	tm := NewTokenManager("unit-secret", 0)
	_, expiresAt, err := tm.GenerateToken(&Claims{UserID: 1})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)
}
