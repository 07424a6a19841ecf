package api

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adhub/adhub/backend/internal/service"
)

const maxWebhookBytes = 1 << 20

type WebhookHandler struct {
	webhooks service.IWebhookService
}

func NewWebhookHandler(webhooks service.IWebhookService) *WebhookHandler {
	return &WebhookHandler{webhooks: webhooks}
}

func (h *WebhookHandler) RegisterRoutes(router *gin.Engine) {
	router.POST("/api/webhooks/identity", h.Identity)
}

// Identity receives signed user lifecycle events from the identity provider.
func (h *WebhookHandler) Identity(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBytes))
	if err != nil {
		badRequest(c, "could not read payload")
		return
	}
	if err := h.webhooks.Handle(c.Request.Context(), payload, c.Request.Header); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}
