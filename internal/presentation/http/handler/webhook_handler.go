package handler

import (
	"context"
	"io"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/autoshop-api/internal/presentation/http/dto/response"
	"github.com/sangkips/autoshop-api/pkg/apperror"
	"github.com/sangkips/autoshop-api/pkg/identity"
)

// maxWebhookBody caps how much of a webhook payload is read.
const maxWebhookBody = 1 << 20

// IdentitySyncer applies identity-provider user events.
type IdentitySyncer interface {
	SyncIdentityEvent(ctx context.Context, ev *identity.Event) error
}

// WebhookHandler receives signed identity-provider webhooks
type WebhookHandler struct {
	verifier *identity.WebhookVerifier
	users    IdentitySyncer
}

// NewWebhookHandler creates a webhook handler. A nil verifier means webhooks
// are not configured and every delivery is refused.
func NewWebhookHandler(verifier *identity.WebhookVerifier, users IdentitySyncer) *WebhookHandler {
	return &WebhookHandler{verifier: verifier, users: users}
}

// Identity handles user.created, user.updated and user.deleted events
func (h *WebhookHandler) Identity(c *gin.Context) {
	if h.verifier == nil {
		response.Unavailable(c, "Identity webhooks are not configured")
		return
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		response.BadRequest(c, "Failed to read request body")
		return
	}

	if err := h.verifier.Verify(c.Request.Header, body); err != nil {
		log.Printf("[Webhook] rejected %s: %v", c.GetHeader(identity.HeaderID), err)
		response.Error(c, apperror.ErrInvalidSignature)
		return
	}

	event, err := identity.ParseEvent(body)
	if err != nil {
		response.BadRequest(c, "Invalid webhook payload")
		return
	}

	if err := h.users.SyncIdentityEvent(c.Request.Context(), event); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Webhook processed", gin.H{"type": event.Type})
}
