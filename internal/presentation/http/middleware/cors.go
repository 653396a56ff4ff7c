package middleware

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sangkips/autoshop-api/internal/config"
)

// Headers the front end must always be able to send.
var requiredRequestHeaders = []string{"Authorization", "Content-Type", IdempotencyKeyHeader}

// Response headers set by this API that browser code reads.
var exposedHeaders = []string{
	"Content-Disposition",
	"X-Request-ID",
	"X-Document-Location",
	IdempotencyReplayedHeader,
	"X-RateLimit-Limit",
	"X-RateLimit-Remaining",
	"Retry-After",
}

var devOrigins = []string{"http://localhost:3000", "http://localhost:5173", "http://127.0.0.1:3000"}

// CORSMiddleware admits the shop front end (FRONTEND_URL plus any extra
// configured origins) with credentials.
func CORSMiddleware(cfg *config.CORSConfig) gin.HandlerFunc {
	origins := cfg.Origins()
	if len(origins) == 0 {
		origins = devOrigins
	}

	methods := cfg.AllowedMethods
	if len(methods) == 0 {
		methods = []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		}
	}

	headers := cfg.AllowedHeaders
	if len(headers) == 0 {
		headers = []string{"Accept", "Origin", "X-Request-ID"}
	}

	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     methods,
		AllowHeaders:     withRequired(headers, requiredRequestHeaders),
		ExposeHeaders:    exposedHeaders,
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

func withRequired(headers, required []string) []string {
	out := append([]string(nil), headers...)
	for _, r := range required {
		found := false
		for _, h := range headers {
			if http.CanonicalHeaderKey(h) == http.CanonicalHeaderKey(r) {
				found = true
				break
			}
		}
		if !found {
			out = append(out, r)
		}
	}
	return out
}
