package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shulehub/shule/core"
)

func newTestTokenService(expiry time.Duration) *TokenService {
	return NewTokenService(&core.Config{
		AppName:            "Shule",
		SecretKey:          []byte("secret"),
		JWTExpirationDelta: expiry,
	})
}

func TestTokenService_roundTrip(t *testing.T) {
	svc := newTestTokenService(10 * time.Minute)

	token, err := svc.IssueToken("usr-001", "jane@test.cd")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "usr-001", claims.Subject)
	assert.Equal(t, "jane@test.cd", claims.Email)
	assert.Equal(t, "Shule", claims.Issuer)
}

func TestTokenService_VerifyToken_errors(t *testing.T) {
	svc := newTestTokenService(10 * time.Minute)

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.VerifyToken("lol.not.atoken")
		assert.Equal(t, ErrInvalidToken, err)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := svc.VerifyToken("")
		assert.Equal(t, ErrInvalidToken, err)
	})

	t.Run("tampered payload", func(t *testing.T) {
		token, err := svc.IssueToken("usr-001", "jane@test.cd")
		require.NoError(t, err)

		parts := strings.Split(token, ".")
		require.Len(t, parts, 3)
		parts[1] = strings.Repeat("A", len(parts[1]))
		_, err = svc.VerifyToken(strings.Join(parts, "."))
		assert.Equal(t, ErrInvalidToken, err)
	})

	t.Run("wrong key", func(t *testing.T) {
		other := NewTokenService(&core.Config{
			AppName:            "Shule",
			SecretKey:          []byte("other-secret"),
			JWTExpirationDelta: 10 * time.Minute,
		})
		token, err := other.IssueToken("usr-001", "jane@test.cd")
		require.NoError(t, err)

		_, err = svc.VerifyToken(token)
		assert.Equal(t, ErrInvalidToken, err)
	})

	t.Run("expired", func(t *testing.T) {
		defer func() { NowFunc = time.Now }()
		NowFunc = func() time.Time { return time.Now().Add(-time.Hour) }

		expired := newTestTokenService(time.Minute)
		token, err := expired.IssueToken("usr-001", "jane@test.cd")
		require.NoError(t, err)

		_, err = svc.VerifyToken(token)
		assert.Equal(t, ErrInvalidToken, err)
	})
}
