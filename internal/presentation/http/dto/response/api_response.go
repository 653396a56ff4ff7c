package response

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/autoshop-api/pkg/apperror"
	"github.com/sangkips/autoshop-api/pkg/pagination"
)

// APIResponse is the envelope every JSON endpoint returns.
type APIResponse struct {
	Success  bool                  `json:"success"`
	Message  string                `json:"message"`
	Data     interface{}           `json:"data,omitempty"`
	Errors   []apperror.FieldError `json:"errors,omitempty"`
	Warnings []string              `json:"warnings,omitempty"`
	Meta     *Meta                 `json:"meta,omitempty"`
}

// Meta ties a response to the request id the logger middleware printed.
type Meta struct {
	Timestamp string `json:"timestamp"`
	RequestID string `json:"request_id"`
}

func newMeta(c *gin.Context) *Meta {
	requestID := c.GetString("request_id")
	if requestID == "" {
		requestID = c.GetHeader("X-Request-ID")
	}
	if requestID == "" {
		requestID = uuid.New().String()
	}
	return &Meta{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		RequestID: requestID,
	}
}

func write(c *gin.Context, status int, body APIResponse) {
	body.Meta = newMeta(c)
	c.JSON(status, body)
}

// OK sends a 200 with data.
func OK(c *gin.Context, message string, data interface{}) {
	write(c, http.StatusOK, APIResponse{Success: true, Message: message, Data: data})
}

// Created sends a 201 with the new resource.
func Created(c *gin.Context, message string, data interface{}) {
	write(c, http.StatusCreated, APIResponse{Success: true, Message: message, Data: data})
}

// Partial sends a 200 for an operation whose main effect succeeded while a
// side effect, such as printing a receipt, did not.
func Partial(c *gin.Context, message string, data interface{}, warnings ...string) {
	write(c, http.StatusOK, APIResponse{Success: true, Message: message, Data: data, Warnings: warnings})
}

// Page sends one page of a list endpoint.
func Page[T any](c *gin.Context, message string, result *pagination.PaginatedResult[T]) {
	write(c, http.StatusOK, APIResponse{Success: true, Message: message, Data: result})
}

// PDF streams a rendered document as a download. location, when set, is
// where the archived copy lives.
func PDF(c *gin.Context, filename, location string, data []byte) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	if location != "" {
		c.Header("X-Document-Location", location)
	}
	c.Data(http.StatusOK, "application/pdf", data)
}

// Error maps err to its HTTP status. Causes behind 5xx responses are logged
// and never sent to the client.
func Error(c *gin.Context, err error) {
	appErr := apperror.GetAppError(err)
	if appErr.Code >= http.StatusInternalServerError {
		if cause := errors.Unwrap(appErr); cause != nil {
			log.Printf("[API] %s %s: %s: %v", c.Request.Method, c.FullPath(), appErr.Message, cause)
		}
	}
	write(c, appErr.Code, APIResponse{Message: appErr.Message, Errors: appErr.Errors})
}

// ValidationError sends a 422 listing each rejected field.
func ValidationError(c *gin.Context, errs []apperror.FieldError) {
	write(c, http.StatusUnprocessableEntity, APIResponse{Message: "Validation failed", Errors: errs})
}

func BadRequest(c *gin.Context, message string) {
	write(c, http.StatusBadRequest, APIResponse{Message: message})
}

func Unauthorized(c *gin.Context, message string) {
	write(c, http.StatusUnauthorized, APIResponse{Message: message})
}

func Forbidden(c *gin.Context, message string) {
	write(c, http.StatusForbidden, APIResponse{Message: message})
}

// Unavailable reports a feature whose backing integration is not configured.
func Unavailable(c *gin.Context, message string) {
	write(c, http.StatusServiceUnavailable, APIResponse{Message: message})
}
