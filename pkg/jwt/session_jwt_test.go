package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_IssueAndParse(t *testing.T) {
	m, err := NewTokenManager("secret", time.Hour)
	require.NoError(t, err)

	token, expiresAt, err := m.Issue("user-1", "tenant-1", "coach@example.com", "owner")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "tenant-1", claims.TenantID)
	assert.Equal(t, "coach@example.com", claims.Email)
	assert.Equal(t, "owner", claims.Role)
}

func TestTokenManager_Expired(t *testing.T) {
	m, err := NewTokenManager("secret", time.Minute)
	require.NoError(t, err)
	m.now = func() time.Time { return time.Now().Add(-time.Hour) }

	token, _, err := m.Issue("user-1", "tenant-1", "", "")
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.Parse(token)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	issuer, err := NewTokenManager("secret-a", time.Hour)
	require.NoError(t, err)
	verifier, err := NewTokenManager("secret-b", time.Hour)
	require.NoError(t, err)

	token, _, err := issuer.Issue("user-1", "tenant-1", "", "")
	require.NoError(t, err)

	_, err = verifier.Parse(token)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestTokenManager_RejectsMissingTenant(t *testing.T) {
	m, err := NewTokenManager("secret", time.Hour)
	require.NoError(t, err)

	token, _, err := m.Issue("user-1", "", "", "")
	require.NoError(t, err)

	_, err = m.Parse(token)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestTokenManager_RejectsOtherAlgorithms(t *testing.T) {
	m, err := NewTokenManager("secret", time.Hour)
	require.NoError(t, err)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, SessionClaims{
		TenantID:         "tenant-1",
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"},
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = m.Parse(token)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestNewTokenManager_RequiresSecret(t *testing.T) {
	_, err := NewTokenManager("", time.Hour)
	assert.Error(t, err)
}

func TestTokenManager_Garbage(t *testing.T) {
	m, err := NewTokenManager("secret", time.Hour)
	require.NoError(t, err)

	_, err = m.Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalid)
}
