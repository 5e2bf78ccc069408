package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/momentum-hq/momentum-api/internal/slack"
)

// readSlackBody buffers the raw body for signature verification and restores
// it so form binding still works.
func (h *Handlers) readSlackBody(c *gin.Context) ([]byte, bool) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.respondBadRequest(c, err)
		return nil, false
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(body))

	signature := c.GetHeader("X-Slack-Signature")
	timestamp := c.GetHeader("X-Slack-Request-Timestamp")
	if !h.slack.VerifySignature(signature, timestamp, body) {
		h.log.Warn("handlers: invalid slack signature")
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": gin.H{"code": "UNAUTHORIZED", "message": "invalid signature"},
		})
		return nil, false
	}
	return body, true
}

// slackCommand acks the slash command; Slack requires a response within
// three seconds, so failures come back as an ephemeral message, never 5xx.
func (h *Handlers) slackCommand(c *gin.Context) {
	if _, ok := h.readSlackBody(c); !ok {
		return
	}

	var payload slack.CommandPayload
	if err := c.ShouldBind(&payload); err != nil {
		h.respondBadRequest(c, err)
		return
	}

	if err := h.slack.HandleCommand(c.Request.Context(), payload); err != nil {
		h.log.Error("handlers.slackCommand: failed to open modal", slog.Any("error", err))
		c.JSON(http.StatusOK, gin.H{
			"response_type": "ephemeral",
			"text":          "Failed to open blocker form. Please try again.",
		})
		return
	}
	c.Status(http.StatusOK)
}

func (h *Handlers) slackInteraction(c *gin.Context) {
	if _, ok := h.readSlackBody(c); !ok {
		return
	}

	var payload slack.InteractionPayload
	if err := json.Unmarshal([]byte(c.PostForm("payload")), &payload); err != nil {
		h.respondBadRequest(c, err)
		return
	}

	if payload.Type != "view_submission" {
		c.Status(http.StatusOK)
		return
	}

	if err := h.slack.HandleInteraction(c.Request.Context(), payload); err != nil {
		h.log.Error("handlers.slackInteraction: submission failed", slog.Any("error", err))
		// Keeps the modal open with an inline error.
		c.JSON(http.StatusOK, gin.H{
			"response_action": "errors",
			"errors": gin.H{
				"description_block": "Failed to log blocker. Please try again.",
			},
		})
		return
	}
	c.Status(http.StatusOK)
}

// slackEvent answers the Events API url_verification challenge.
func (h *Handlers) slackEvent(c *gin.Context) {
	var body struct {
		Type      string `json:"type"`
		Challenge string `json:"challenge"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondBadRequest(c, err)
		return
	}

	if body.Type == "url_verification" && body.Challenge != "" {
		c.JSON(http.StatusOK, gin.H{"challenge": body.Challenge})
		return
	}
	c.Status(http.StatusOK)
}
