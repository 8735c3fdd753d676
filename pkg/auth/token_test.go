package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_IssueAndVerify(t *testing.T) {
	svc := NewJWTService([]byte("test-secret"), 0)

	token, err := svc.Issue("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", subject)
}

func TestJWTService_Verify_Failures(t *testing.T) {
	svc := NewJWTService([]byte("test-secret"), 0)

	t.Run("malformed token", func(t *testing.T) {
		_, err := svc.Verify("not-a-jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("tampered token", func(t *testing.T) {
		token, err := svc.Issue("user-123")
		require.NoError(t, err)

		parts := strings.Split(token, ".")
		require.Len(t, parts, 3)
		tampered := parts[0] + "." + parts[1] + ".AAAA" + parts[2][4:]

		_, err = svc.Verify(tampered)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTService([]byte("other-secret"), 0)
		token, err := other.Issue("user-123")
		require.NoError(t, err)

		_, err = svc.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		expiring := NewJWTService([]byte("test-secret"), -time.Minute)
		token, err := expiring.Issue("user-123")
		require.NoError(t, err)

		_, err = NewJWTService([]byte("test-secret"), 0).Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("empty subject", func(t *testing.T) {
		token, err := svc.Issue("")
		require.NoError(t, err)

		_, err = svc.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestJWTService_TTL(t *testing.T) {
	svc := NewJWTService([]byte("test-secret"), time.Hour)

	token, err := svc.Issue("user-123")
	require.NoError(t, err)

	// Tokens with a future expiry still verify
	subject, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", subject)
}
