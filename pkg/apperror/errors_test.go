package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestGetAppErrorHidesUnexpectedCause(t *testing.T) {
	cause := errors.New("pq: connection refused")
	appErr := GetAppError(cause)

	if appErr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", appErr.Code)
	}
	if appErr.Message == cause.Error() {
		t.Fatalf("internal cause leaked into message")
	}
	if !errors.Is(appErr, cause) {
		t.Fatalf("expected cause to be unwrappable")
	}
}

func TestGetAppErrorPassesThroughWrapped(t *testing.T) {
	wrapped := fmt.Errorf("adjusting stock: %w", NewBadRequestError("Insufficient stock"))
	appErr := GetAppError(wrapped)
	if appErr.Code != http.StatusBadRequest || appErr.Message != "Insufficient stock" {
		t.Fatalf("unexpected error: %d %q", appErr.Code, appErr.Message)
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		want bool
	}{
		{"not found", NewNotFoundError("Invoice"), http.StatusNotFound, true},
		{"conflict vs forbidden", NewConflictError("dup"), http.StatusForbidden, false},
		{"forbidden", NewForbiddenError("nope"), http.StatusForbidden, true},
		{"plain error", errors.New("x"), http.StatusNotFound, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Fatalf("Is() = %v, want %v", got, tt.want)
			}
		})
	}
}
