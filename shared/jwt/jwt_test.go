package jwt

import (
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/itchan-dev/forum/shared/domain"
	internal_errors "github.com/itchan-dev/forum/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "test-secret-key-0123456789"

func sign(t *testing.T, method jwt.SigningMethod, key any, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func requireUnauthorized(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, internal_errors.StatusCode(err))
}

func TestRoundTrip(t *testing.T) {
	svc := New(testKey, time.Hour)

	for _, user := range []domain.User{{Id: 7}, {Id: 1, Admin: true}} {
		token, err := svc.NewToken(user)
		require.NoError(t, err)

		decoded, err := svc.DecodeToken(token)
		require.NoError(t, err)
		assert.Equal(t, user, *decoded)
	}
}

func TestDecodeToken_Rejects(t *testing.T) {
	svc := New(testKey, time.Hour)
	valid := jwt.MapClaims{"uid": 5, "admin": false, "exp": time.Now().Add(time.Hour).Unix()}

	t.Run("expired", func(t *testing.T) {
		token, err := New(testKey, -time.Minute).NewToken(domain.User{Id: 5})
		require.NoError(t, err)
		_, err = svc.DecodeToken(token)
		requireUnauthorized(t, err)
	})

	t.Run("wrong key", func(t *testing.T) {
		token, err := New("another-key-0123456789", time.Hour).NewToken(domain.User{Id: 5})
		require.NoError(t, err)
		_, err = svc.DecodeToken(token)
		requireUnauthorized(t, err)
	})

	t.Run("other hmac method", func(t *testing.T) {
		_, err := svc.DecodeToken(sign(t, jwt.SigningMethodHS512, []byte(testKey), valid))
		requireUnauthorized(t, err)
	})

	t.Run("none method", func(t *testing.T) {
		_, err := svc.DecodeToken(sign(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, valid))
		requireUnauthorized(t, err)
	})

	t.Run("missing exp", func(t *testing.T) {
		_, err := svc.DecodeToken(sign(t, jwt.SigningMethodHS256, []byte(testKey), jwt.MapClaims{"uid": 5}))
		requireUnauthorized(t, err)
	})

	t.Run("missing uid", func(t *testing.T) {
		claims := jwt.MapClaims{"admin": true, "exp": time.Now().Add(time.Hour).Unix()}
		_, err := svc.DecodeToken(sign(t, jwt.SigningMethodHS256, []byte(testKey), claims))
		requireUnauthorized(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.DecodeToken("not.a.token")
		requireUnauthorized(t, err)
	})
}
