package auth

import (
	"testing"
	"time"

	"job-board-backend/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	m := NewManager("secret", time.Hour)

	session, claims, err := m.Issue("user-1")
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.NotEmpty(t, claims.TokenID)

	got, err := m.Verify(session.Token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", got.UserID)
	assert.Equal(t, claims.TokenID, got.TokenID)
}

func TestVerifyExpired(t *testing.T) {
	m := NewManager("secret", time.Minute)
	issuedAt := time.Now().Add(-time.Hour)
	m.now = func() time.Time { return issuedAt }

	session, _, err := m.Issue("user-1")
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.Verify(session.Token)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestVerifyRejectsForeignSignature(t *testing.T) {
	session, _, err := NewManager("other", time.Hour).Issue("user-1")
	require.NoError(t, err)

	_, err = NewManager("secret", time.Hour).Verify(session.Token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)

	_, err = NewManager("secret", time.Hour).Verify("not-a-jwt")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestVerifyRejectsNoneAlgorithm(t *testing.T) {
	claims := Claims{UserID: "user-1", RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewManager("secret", time.Hour).Verify(unsigned)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestIssueWithoutSecret(t *testing.T) {
	_, _, err := NewManager("", time.Hour).Issue("user-1")
	assert.Error(t, err)
}
