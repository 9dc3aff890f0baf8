package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/itchan-dev/forum/shared/domain"
	jwt_internal "github.com/itchan-dev/forum/shared/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_secret_0123456789"

func TestAuth(t *testing.T) {
	jwtService := jwt_internal.New(testSecret, time.Hour)
	admin := &domain.User{Id: 1, Admin: true}
	tokenAdmin, err := jwtService.NewToken(*admin)
	require.NoError(t, err)
	user := &domain.User{Id: 2, Admin: false}
	token, err := jwtService.NewToken(*user)
	require.NoError(t, err)

	tests := []struct {
		name           string
		adminOnly      bool
		cookie         *http.Cookie
		bearer         string
		expectedStatus int
		expectedUser   *domain.User
		clearsCookie   bool
	}{
		{
			name:           "Valid token - Admin",
			adminOnly:      true,
			cookie:         &http.Cookie{Name: AccessTokenCookie, Value: tokenAdmin},
			expectedStatus: http.StatusOK,
			expectedUser:   admin,
		},
		{
			name:           "Valid token - Non-admin",
			cookie:         &http.Cookie{Name: AccessTokenCookie, Value: token},
			expectedStatus: http.StatusOK,
			expectedUser:   user,
		},
		{
			name:           "Bearer header",
			bearer:         token,
			expectedStatus: http.StatusOK,
			expectedUser:   user,
		},
		{
			name:           "No token",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Invalid cookie token",
			cookie:         &http.Cookie{Name: AccessTokenCookie, Value: "invalid_token"},
			expectedStatus: http.StatusUnauthorized,
			clearsCookie:   true,
		},
		{
			name:           "Invalid bearer token",
			bearer:         "invalid_token",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Non-admin accessing admin route",
			adminOnly:      true,
			cookie:         &http.Cookie{Name: AccessTokenCookie, Value: token},
			expectedStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "http://example.com", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			if tt.bearer != "" {
				req.Header.Set("Authorization", "Bearer "+tt.bearer)
			}
			rr := httptest.NewRecorder()
			authMw := NewAuth(jwtService, false)
			middleware := authMw.NeedAuth()
			if tt.adminOnly {
				middleware = authMw.AdminOnly()
			}
			handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got := GetUserFromContext(r)
				require.NotNil(t, got, "Auth should always propagate user thru context")
				assert.Equal(t, tt.expectedUser, got)
				w.WriteHeader(http.StatusOK)
			}))
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code, "handler returned wrong status code")

			var cleared bool
			for _, c := range rr.Result().Cookies() {
				if c.Name == AccessTokenCookie && c.MaxAge < 0 {
					cleared = true
				}
			}
			assert.Equal(t, tt.clearsCookie, cleared)
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	jwtService := jwt_internal.New(testSecret, time.Hour)
	token, err := jwtService.NewToken(domain.User{Id: 9})
	require.NoError(t, err)

	var got *domain.User
	handler := NewAuth(jwtService, false).OptionalAuth()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetUserFromContext(r)
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("anonymous", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Nil(t, got)
	})

	t.Run("invalid token is ignored", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Nil(t, got)
	})

	t.Run("valid token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
		require.NotNil(t, got)
		assert.Equal(t, domain.UserId(9), got.Id)
	})
}

func TestGetUserFromContext(t *testing.T) {
	t.Run("no user in context", func(t *testing.T) {
		assert.Nil(t, GetUserFromContext(httptest.NewRequest("GET", "/", nil)))
	})

	t.Run("user in context", func(t *testing.T) {
		user := &domain.User{Id: 1, Admin: true}
		req := withUser(httptest.NewRequest("GET", "/", nil), user)
		assert.Equal(t, user, GetUserFromContext(req))
	})
}
