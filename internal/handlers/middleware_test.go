package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"als-tracker-api/internal/models"
	"als-tracker-api/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func okHandler() (http.Handler, *bool) {
	called := false
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}), &called
}

func TestJWTMiddleware(t *testing.T) {
	jwtUtil := utils.NewJWTUtil("test-secret", time.Hour)
	next, called := okHandler()
	protected := JWTMiddleware(jwtUtil)(next)

	t.Run("missing header", func(t *testing.T) {
		*called = false
		rr := httptest.NewRecorder()
		protected.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.False(t, *called)
	})

	t.Run("not a bearer token", func(t *testing.T) {
		*called = false
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Basic abc")
		rr := httptest.NewRecorder()
		protected.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("valid token passes claims", func(t *testing.T) {
		*called = false
		token, err := jwtUtil.GenerateToken(7, models.RoleAdmin)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		protected.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, *called)
	})
}

func TestRequireRole(t *testing.T) {
	next, called := okHandler()
	gate := RequireRole(models.RoleMasterAdmin)(next)

	withClaims := func(role models.Role) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		claims := &utils.Claims{UserID: 1, Role: role}
		return req.WithContext(context.WithValue(req.Context(), userClaimsKey, claims))
	}

	t.Run("wrong role forbidden", func(t *testing.T) {
		*called = false
		rr := httptest.NewRecorder()
		gate.ServeHTTP(rr, withClaims(models.RoleAdmin))
		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.False(t, *called)
	})

	t.Run("matching role passes", func(t *testing.T) {
		*called = false
		rr := httptest.NewRecorder()
		gate.ServeHTTP(rr, withClaims(models.RoleMasterAdmin))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, *called)
	})

	t.Run("no claims unauthorized", func(t *testing.T) {
		*called = false
		rr := httptest.NewRecorder()
		gate.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	limiter := rate.NewLimiter(rate.Every(time.Hour), 2)
	handler := RateLimitMiddleware(limiter)(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	for i := 0; i < 2; i++ {
		rr := httptest.NewRecorder()
		handler(rr, httptest.NewRequest(http.MethodPost, "/", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
	}

	rr := httptest.NewRecorder()
	handler(rr, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
}
