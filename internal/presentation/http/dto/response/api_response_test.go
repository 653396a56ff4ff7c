package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/autoshop-api/pkg/apperror"
)

func serve(t *testing.T, h gin.HandlerFunc) (*httptest.ResponseRecorder, APIResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", func(c *gin.Context) {
		c.Set("request_id", "req-42")
		h(c)
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	var body APIResponse
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode %q: %v", w.Body.String(), err)
		}
	}
	return w, body
}

func TestErrorHidesInternalCause(t *testing.T) {
	w, body := serve(t, func(c *gin.Context) {
		Error(c, apperror.Internal("Failed to create invoice", errors.New("pq: connection refused")))
	})
	if w.Code != http.StatusInternalServerError || body.Success {
		t.Fatalf("status = %d success = %v", w.Code, body.Success)
	}
	if strings.Contains(w.Body.String(), "connection refused") {
		t.Fatalf("cause leaked: %s", w.Body.String())
	}
	if body.Meta == nil || body.Meta.RequestID != "req-42" {
		t.Fatalf("meta = %+v", body.Meta)
	}
}

func TestErrorCarriesStatusAndFields(t *testing.T) {
	w, body := serve(t, func(c *gin.Context) {
		Error(c, apperror.NewValidationError([]apperror.FieldError{{Field: "vin", Message: "vin is invalid"}}))
	})
	if w.Code != http.StatusUnprocessableEntity || len(body.Errors) != 1 || body.Errors[0].Field != "vin" {
		t.Fatalf("status = %d errors = %+v", w.Code, body.Errors)
	}

	w, _ = serve(t, func(c *gin.Context) { Error(c, errors.New("plain")) })
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("plain error status = %d", w.Code)
	}
}

func TestPartialKeepsWarnings(t *testing.T) {
	w, body := serve(t, func(c *gin.Context) {
		Partial(c, "Receipt generated but printing failed", gin.H{"receipt": "INV-202403-0001"}, "printer offline")
	})
	if w.Code != http.StatusOK || !body.Success || len(body.Warnings) != 1 || body.Warnings[0] != "printer offline" {
		t.Fatalf("status = %d body = %+v", w.Code, body)
	}
}

func TestPDFHeaders(t *testing.T) {
	w, _ := serve(t, func(c *gin.Context) {
		PDF(c, "INV-202403-0001.pdf", "s3://docs/invoices/2024/03/INV-202403-0001.pdf", []byte("%PDF-1.3"))
	})
	if w.Header().Get("Content-Type") != "application/pdf" {
		t.Fatalf("content type = %q", w.Header().Get("Content-Type"))
	}
	if !strings.Contains(w.Header().Get("Content-Disposition"), "INV-202403-0001.pdf") {
		t.Fatalf("disposition = %q", w.Header().Get("Content-Disposition"))
	}
	if w.Header().Get("X-Document-Location") == "" {
		t.Fatal("missing archive location")
	}
}

func TestUnavailable(t *testing.T) {
	w, body := serve(t, func(c *gin.Context) { Unavailable(c, "Identity webhooks are not configured") })
	if w.Code != http.StatusServiceUnavailable || body.Success {
		t.Fatalf("status = %d", w.Code)
	}
}
