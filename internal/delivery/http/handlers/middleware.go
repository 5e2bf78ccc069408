package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/momentum-hq/momentum-api/internal/domain"
)

const (
	requestIDHeader = "X-Request-Id"
	actorKey        = "actor"
)

// RequestID tags every request with an id, honoring one supplied by the
// client or a proxy.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(requestIDHeader, id)
		c.Set("request_id", id)
		c.Next()
	}
}

// Auth validates the bearer token and attaches the actor to the context.
func (h *Handlers) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			h.respondError(c, domain.ErrUnauthorized)
			return
		}

		actor, err := h.tokens.Parse(token)
		if err != nil {
			h.respondError(c, domain.ErrUnauthorized)
			return
		}

		c.Set(actorKey, actor)
		c.Next()
	}
}

func (h *Handlers) RequireManager() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := currentActor(c)
		if actor == nil || !actor.IsManager {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": gin.H{"code": "FORBIDDEN", "message": "manager role required"},
			})
			return
		}
		c.Next()
	}
}

func currentActor(c *gin.Context) *domain.Actor {
	value, exists := c.Get(actorKey)
	if !exists {
		return nil
	}
	actor, ok := value.(*domain.Actor)
	if !ok {
		return nil
	}
	return actor
}
