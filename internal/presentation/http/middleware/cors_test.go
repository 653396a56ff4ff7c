package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/autoshop-api/internal/config"
)

func corsRouter(cfg *config.CORSConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware(cfg))
	r.POST("/api/invoices", func(c *gin.Context) {
		c.Header(IdempotencyReplayedHeader, "true")
		c.Status(http.StatusCreated)
	})
	return r
}

func TestCORSExposesIdempotencyReplay(t *testing.T) {
	r := corsRouter(&config.CORSConfig{FrontendURL: "https://shop.example.com/"})

	req := httptest.NewRequest(http.MethodPost, "/api/invoices", nil)
	req.Header.Set("Origin", "https://shop.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://shop.example.com" {
		t.Fatalf("allow origin = %q", got)
	}
	exposed := strings.ToLower(w.Header().Get("Access-Control-Expose-Headers"))
	for _, h := range []string{"x-idempotency-replayed", "x-request-id", "content-disposition"} {
		if !strings.Contains(exposed, h) {
			t.Fatalf("expose headers %q missing %s", exposed, h)
		}
	}
}

func TestCORSPreflightAllowsIdempotencyKey(t *testing.T) {
	// Custom header lists still admit the headers the front end depends on.
	r := corsRouter(&config.CORSConfig{FrontendURL: "https://shop.example.com", AllowedHeaders: []string{"Accept"}})

	req := httptest.NewRequest(http.MethodOptions, "/api/invoices", nil)
	req.Header.Set("Origin", "https://shop.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Authorization, Idempotency-Key")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code >= 300 {
		t.Fatalf("preflight status = %d", w.Code)
	}
	allowed := strings.ToLower(w.Header().Get("Access-Control-Allow-Headers"))
	if !strings.Contains(allowed, "idempotency-key") || !strings.Contains(allowed, "authorization") {
		t.Fatalf("allow headers = %q", allowed)
	}
}

func TestCORSRejectsUnknownOrigin(t *testing.T) {
	r := corsRouter(&config.CORSConfig{FrontendURL: "https://shop.example.com"})

	req := httptest.NewRequest(http.MethodPost, "/api/invoices", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
}

func TestWithRequiredIsCaseInsensitive(t *testing.T) {
	got := withRequired([]string{"authorization", "Accept"}, requiredRequestHeaders)
	if len(got) != 4 {
		t.Fatalf("headers = %v", got)
	}
}
