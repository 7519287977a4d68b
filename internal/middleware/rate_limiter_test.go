package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"Finora/internal/middleware"

	"github.com/gin-gonic/gin"
)

func TestAllowAtSlidingWindow(t *testing.T) {
	t.Parallel()

	limiter := middleware.NewRateLimiter(2, time.Minute)
	base := time.Date(2025, time.July, 1, 12, 0, 0, 0, time.UTC)

	if !limiter.AllowAt("key", base) {
		t.Fatal("expected first request to be allowed")
	}
	if !limiter.AllowAt("key", base.Add(time.Second)) {
		t.Fatal("expected second request to be allowed")
	}
	if limiter.AllowAt("key", base.Add(2*time.Second)) {
		t.Fatal("expected third request within the window to be rejected")
	}

	// Passada a janela, os registros antigos saem da contagem.
	if !limiter.AllowAt("key", base.Add(61*time.Second)) {
		t.Fatal("expected request after the window to be allowed")
	}
}

func TestAllowAtCountsPerKey(t *testing.T) {
	t.Parallel()

	limiter := middleware.NewRateLimiter(1, time.Minute)
	now := time.Date(2025, time.July, 1, 12, 0, 0, 0, time.UTC)

	if !limiter.AllowAt("alice", now) {
		t.Fatal("expected alice to be allowed")
	}
	if !limiter.AllowAt("bob", now) {
		t.Fatal("expected bob to have his own budget")
	}
	if limiter.AllowAt("alice", now) {
		t.Fatal("expected alice to be limited independently")
	}
}

func TestByUserID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name    string
		prepare func(c *gin.Context)
		want    string
	}{
		{
			name:    "authenticated user",
			prepare: func(c *gin.Context) { c.Set("user_id", "01JZZZZZZZZZZZZZZZZZZZZZZZ") },
			want:    "01JZZZZZZZZZZZZZZZZZZZZZZZ",
		},
		{
			name:    "no user falls back to ip",
			prepare: func(c *gin.Context) {},
			want:    "10.0.0.7",
		},
		{
			name:    "non-string user falls back to ip",
			prepare: func(c *gin.Context) { c.Set("user_id", 42) },
			want:    "10.0.0.7",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			c.Request.RemoteAddr = "10.0.0.7:51234"

			tt.prepare(c)

			if got := middleware.ByUserID(c); got != tt.want {
				t.Fatalf("expected key %q, got %q", tt.want, got)
			}
		})
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	limiter := middleware.NewRateLimiter(1, time.Minute)

	router := gin.New()
	router.Use(middleware.RateLimit(limiter, middleware.ByClientIP))
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	request := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "10.0.0.7:51234"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	if w := request(); w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d (body %s)", w.Code, w.Body.String())
	}

	w := request()
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected status 429, got %d (body %s)", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "RATE_LIMIT_EXCEEDED") {
		t.Fatalf("expected RATE_LIMIT_EXCEEDED in body, got %s", w.Body.String())
	}
}
