package payments

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"folio-backend/internal/shared/server/middleware"
	"folio-backend/internal/shared/server/respond"
)

const maxWebhookBody = 64 << 10 // 64KB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc           *Service
	WebhookSecret string
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, webhookSecret string) *Handler {
	return &Handler{Svc: svc, WebhookSecret: webhookSecret}
}

// RegisterRoutes attaches authenticated payment routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/payments", h.createCheckout)
	rg.GET("/payments/subscription", h.subscription)
}

// RegisterPublicRoutes attaches routes that need no authentication.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/payments/plans", h.plans)
}

// RegisterWebhookRoutes attaches the provider-facing webhook endpoint.
// It is verified by signature, not by user auth.
func (h *Handler) RegisterWebhookRoutes(rg *gin.RouterGroup) {
	rg.POST("/webhooks/payments", h.webhook)
}

func (h *Handler) plans(c *gin.Context) {
	respond.JSON(c, http.StatusOK, gin.H{"plans": Plans()})
}

func (h *Handler) createCheckout(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	payment, sub, err := h.Svc.CreateCheckout(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create checkout", nil)
		return
	}

	respond.JSON(c, http.StatusCreated, gin.H{
		"payment":      payment,
		"subscription": sub,
	})
}

func (h *Handler) subscription(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	sub, err := h.Svc.SubscriptionStatus(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.JSON(c, http.StatusOK, gin.H{"subscription": nil})
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch subscription", nil)
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{"subscription": sub})
}

type webhookPayload struct {
	Type string `json:"type"`
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

func (h *Handler) webhook(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read body", nil)
		return
	}

	msgID := c.GetHeader("webhook-id")
	timestamp := c.GetHeader("webhook-timestamp")
	signature := c.GetHeader("webhook-signature")

	if err := VerifySignature(h.WebhookSecret, msgID, timestamp, body, signature); err != nil {
		respond.Error(c, http.StatusUnauthorized, "invalid_signature", "webhook signature verification failed", nil)
		return
	}

	var payload webhookPayload
	if err := json.Unmarshal(body, &payload); err != nil || payload.Data.ID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid webhook payload", nil)
		return
	}

	if err := h.Svc.HandleEvent(c.Request.Context(), msgID, payload.Type, payload.Data.ID); err != nil {
		switch {
		case errors.Is(err, ErrUnknownEvent):
			// Acknowledge events we do not handle so the provider
			// stops retrying them.
			respond.JSON(c, http.StatusOK, gin.H{"received": true, "handled": false})
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "payment not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to process webhook", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{"received": true, "handled": true})
}
