package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func TestUserRateLimiterKeysByUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rl := NewUserRateLimiter(RateLimiterConfig{RequestsPerSecond: 0.001, BurstSize: 2})
	defer rl.Stop()

	alice, bob := uuid.New(), uuid.New()
	r := gin.New()
	r.Use(func(c *gin.Context) {
		switch c.GetHeader("X-User") {
		case "alice":
			c.Set(ContextUserID, alice)
		case "bob":
			c.Set(ContextUserID, bob)
		}
		c.Next()
	})
	r.Use(rl.Middleware())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	hit := func(user string) int {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-User", user)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	for i := 0; i < 2; i++ {
		if code := hit("alice"); code != http.StatusOK {
			t.Fatalf("request %d = %d, want 200", i, code)
		}
	}
	if code := hit("alice"); code != http.StatusTooManyRequests {
		t.Fatalf("over burst = %d, want 429", code)
	}
	if code := hit("bob"); code != http.StatusOK {
		t.Fatalf("other user = %d, want 200", code)
	}
	if code := hit(""); code != http.StatusOK {
		t.Fatalf("anonymous = %d, want 200", code)
	}
}

func TestShortID(t *testing.T) {
	if got := shortID("abc"); got != "abc" {
		t.Fatalf("shortID(abc) = %q", got)
	}
	if got := shortID("0123456789abcdef"); len(got) != 8 {
		t.Fatalf("shortID long = %q", got)
	}
}
