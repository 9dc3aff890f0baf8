package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/itchan-dev/forum/backend/internal/handler"
	"github.com/itchan-dev/forum/backend/internal/setup"
	"github.com/itchan-dev/forum/shared/config"
	"github.com/itchan-dev/forum/shared/domain"
	"github.com/itchan-dev/forum/shared/jwt"
	mw "github.com/itchan-dev/forum/shared/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const threadPath = "/v1/threads/5a0c1d8e-7b1f-4c36-9f4e-2f1a9d3c6b01"

type healthyStorage struct{}

func (healthyStorage) Ping(ctx context.Context) error { return nil }

func newTestDeps(t *testing.T, limits config.RateLimits) (*setup.Dependencies, jwt.JwtService) {
	t.Helper()
	cfg := &config.Config{Public: config.Public{
		AllowedOrigins: []string{"http://localhost:8081"},
		RateLimits:     limits,
	}}
	jwtService := jwt.New("router-test-secret-key", time.Hour)
	limiters := setup.NewRateLimiters(limits)
	t.Cleanup(limiters.Stop)
	return &setup.Dependencies{
		Config:         cfg,
		Handler:        handler.New(nil, nil, nil, healthyStorage{}, cfg),
		AuthMiddleware: mw.NewAuth(jwtService, false),
		Jwt:            jwtService,
		RateLimiters:   limiters,
	}, jwtService
}

func bearer(t *testing.T, j jwt.JwtService, user domain.User) string {
	t.Helper()
	token, err := j.NewToken(user)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestRouter(t *testing.T) {
	deps, j := newTestDeps(t, config.RateLimits{})
	r := New(deps)

	serve := func(method, path, auth string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, nil)
		if auth != "" {
			req.Header.Set("Authorization", auth)
		}
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		return rr
	}

	t.Run("health and metrics endpoints", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, serve(http.MethodGet, "/health", "").Code)
		assert.Equal(t, http.StatusOK, serve(http.MethodGet, "/ready", "").Code)

		rr := serve(http.MethodGet, "/metrics", "")
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "forum_http_requests_total")
	})

	t.Run("security headers", func(t *testing.T) {
		rr := serve(http.MethodGet, "/health", "")
		assert.Equal(t, "DENY", rr.Header().Get("X-Frame-Options"))
		assert.Equal(t, "default-src 'none'; frame-ancestors 'none'", rr.Header().Get("Content-Security-Policy"))
	})

	t.Run("writes need a token", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, serve(http.MethodPost, "/v1/threads", "").Code)
		assert.Equal(t, http.StatusUnauthorized, serve(http.MethodPut, "/v1/posts/8d2e4f60-1a3b-4c5d-8e9f-0a1b2c3d4e5f/vote", "").Code)
		assert.Equal(t, http.StatusUnauthorized, serve(http.MethodPut, threadPath+"/best_answer", "").Code)
	})

	t.Run("admin routes", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, serve(http.MethodDelete, "/v1/admin"+threadPath[3:], "").Code)
		user := bearer(t, j, domain.User{Id: 1})
		assert.Equal(t, http.StatusForbidden, serve(http.MethodDelete, "/v1/admin"+threadPath[3:], user).Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, serve(http.MethodPost, "/v1/threads", "Bearer garbage").Code)
	})

	t.Run("unknown route", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, serve(http.MethodGet, "/v1/boards", "").Code)
	})

	t.Run("cors preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, threadPath, nil)
		req.Header.Set("Origin", "http://localhost:8081")
		req.Header.Set("Access-Control-Request-Method", http.MethodGet)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		assert.Equal(t, "http://localhost:8081", rr.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestRouter_UsesDependencyLimiters(t *testing.T) {
	deps, j := newTestDeps(t, config.RateLimits{WritePerUser: 1})
	r := New(deps)

	// the write group spends tokens from the limiter owned by deps
	require.NotNil(t, deps.RateLimiters.WritePerUser)
	req := httptest.NewRequest(http.MethodPost, "/v1/threads", nil)
	req.Header.Set("Authorization", bearer(t, j, domain.User{Id: 7}))
	r.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, 1, deps.RateLimiters.WritePerUser.Len())
	assert.Nil(t, deps.RateLimiters.ReadPerIP)
}

func TestRouter_NoLimiters(t *testing.T) {
	deps, _ := newTestDeps(t, config.RateLimits{})
	deps.RateLimiters = nil
	r := New(deps)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRouter_GlobalRateLimit(t *testing.T) {
	deps, _ := newTestDeps(t, config.RateLimits{Global: 1})
	r := New(deps)

	codes := make([]int, 0, 3)
	for range 3 {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
		codes = append(codes, rr.Code)
	}

	assert.Equal(t, http.StatusOK, codes[0])
	assert.Contains(t, codes[1:], http.StatusTooManyRequests)
}
