package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newLimitedEngine(rps float64, burst int) *gin.Engine {
	r := gin.New()
	rl := NewRateLimiter(rps, burst, KeyByClientIP())
	r.Use(rl.Handler())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestRateLimiter_AllowsWithinBurst(t *testing.T) {
	r := newLimitedEngine(100, 5)
	for i := 0; i < 5; i++ {
		w := doGet(r, "/x", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d", i, w.Code)
		}
	}
}

func TestRateLimiter_RejectsOverBurst(t *testing.T) {
	// Near-zero refill so the bucket does not recover during the test.
	r := newLimitedEngine(0.0001, 2)

	for i := 0; i < 2; i++ {
		if w := doGet(r, "/x", nil); w.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d", i, w.Code)
		}
	}

	w := doGet(r, "/x", nil)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Fatal("expected a Retry-After header")
	}
	if !strings.Contains(w.Body.String(), "rate_limited") {
		t.Fatalf("body = %q", w.Body.String())
	}
}

func TestRateLimiter_SeparateKeys(t *testing.T) {
	rl := NewRateLimiter(0.0001, 1, func(c *gin.Context) string {
		return c.GetHeader("X-Tenant")
	})
	r := gin.New()
	r.Use(rl.Handler())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	// Exhaust tenant a, tenant b must still pass.
	if w := doGet(r, "/x", map[string]string{"X-Tenant": "a"}); w.Code != http.StatusOK {
		t.Fatalf("tenant a first: %d", w.Code)
	}
	if w := doGet(r, "/x", map[string]string{"X-Tenant": "a"}); w.Code != http.StatusTooManyRequests {
		t.Fatalf("tenant a second: %d, want 429", w.Code)
	}
	if w := doGet(r, "/x", map[string]string{"X-Tenant": "b"}); w.Code != http.StatusOK {
		t.Fatalf("tenant b: %d", w.Code)
	}
}

func TestNewRateLimiter_CoercesBurst(t *testing.T) {
	rl := NewRateLimiter(1, 0, KeyByClientIP())
	if rl.burst != 1 {
		t.Fatalf("burst = %d, want 1", rl.burst)
	}
}

func TestKeyByClientIP_Prefix(t *testing.T) {
	var key string
	r := gin.New()
	fn := KeyByClientIP()
	r.GET("/x", func(c *gin.Context) {
		key = fn(c)
		c.Status(http.StatusOK)
	})
	doGet(r, "/x", nil)
	if !strings.HasPrefix(key, "ip:") {
		t.Fatalf("key = %q", key)
	}
}

func TestRateLimiter_ConcurrentAccess(t *testing.T) {
	rl := NewRateLimiter(1000, 1000, KeyByClientIP())
	r := gin.New()
	r.Use(rl.Handler())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 50; j++ {
				req := httptest.NewRequest(http.MethodGet, "/x", nil)
				w := httptest.NewRecorder()
				r.ServeHTTP(w, req)
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
