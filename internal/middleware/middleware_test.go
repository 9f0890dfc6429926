package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"stockstores-be/internal/auth"
	"stockstores-be/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuth(t *testing.T) {
	issuer := auth.NewIssuer("test-secret", time.Hour, time.Minute)
	mw := Auth(issuer)

	t.Run("Missing Token", func(t *testing.T) {
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, ok := utils.GetUserIDFromContext(r.Context())
			assert.False(t, ok)
			w.WriteHeader(http.StatusOK)
		})

		w := httptest.NewRecorder()
		mw(next).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders/1", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Invalid Token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/orders/1", nil)
		req.Header.Set("Authorization", "Bearer invalid-token")
		w := httptest.NewRecorder()

		mw(http.NotFoundHandler()).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"message":"Invalid Token"}`, w.Body.String())
	})

	t.Run("Valid Token", func(t *testing.T) {
		tok, err := issuer.Generate(auth.Identity{ID: "u1", Email: "a@b.c"})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/orders/1", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		w := httptest.NewRecorder()

		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := utils.GetUserIDFromContext(r.Context())
			assert.True(t, ok)
			assert.Equal(t, "u1", userID)
			assert.Equal(t, "a@b.c", utils.GetUserEmailFromContext(r.Context()))
			w.WriteHeader(http.StatusOK)
		})

		mw(next).ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Malformed Header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/orders/1", nil)
		req.Header.Set("Authorization", "Basic user:pass")
		w := httptest.NewRecorder()

		mw(okHandler()).ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRateLimiter(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t.Run("Strict tier on login", func(t *testing.T) {
		rl := NewRateLimiter(ctx, "")
		handler := rl.Middleware(okHandler())

		codes := make([]int, 0, burstStrict+1)
		for i := 0; i < burstStrict+1; i++ {
			req := httptest.NewRequest(http.MethodPost, "/users/login", nil)
			req.RemoteAddr = "10.0.0.1:1234"
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)
			codes = append(codes, w.Code)
		}

		assert.Equal(t, http.StatusOK, codes[0])
		assert.Equal(t, http.StatusTooManyRequests, codes[burstStrict])
	})

	t.Run("Separate identities", func(t *testing.T) {
		rl := NewRateLimiter(ctx, "")
		handler := rl.Middleware(okHandler())

		for i := 0; i < burstStrict; i++ {
			req := httptest.NewRequest(http.MethodPost, "/users/login", nil)
			req.Header.Set("X-Device-ID", "device-a")
			handler.ServeHTTP(httptest.NewRecorder(), req)
		}

		req := httptest.NewRequest(http.MethodPost, "/users/login", nil)
		req.Header.Set("X-Device-ID", "device-b")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Tier resolution", func(t *testing.T) {
		rl := NewRateLimiter(ctx, "s3cret")

		req := httptest.NewRequest(http.MethodGet, "/users/login", nil)
		req.Header.Set("X-Service-Auth", "s3cret")
		_, _, tier := rl.resolveTier(req)
		assert.Equal(t, "internal", tier)

		_, _, tier = rl.resolveTier(httptest.NewRequest(http.MethodPost, "/upload/user/1", nil))
		assert.Equal(t, "strict", tier)

		req = httptest.NewRequest(http.MethodGet, "/products/x", nil)
		req.Header.Set("X-Client-Type", "frontend-heavy")
		_, _, tier = rl.resolveTier(req)
		assert.Equal(t, "frontend", tier)

		_, _, tier = rl.resolveTier(httptest.NewRequest(http.MethodGet, "/stores/", nil))
		assert.Equal(t, "general", tier)
	})

	t.Run("Evicts stale visitors", func(t *testing.T) {
		rl := NewRateLimiter(ctx, "")
		rl.getVisitor("ip:1:general", limitGeneral, burstGeneral)

		rl.evict(time.Now().Add(visitorTTL + time.Second))

		rl.mu.Lock()
		defer rl.mu.Unlock()
		assert.Empty(t, rl.visitors)
	})
}
