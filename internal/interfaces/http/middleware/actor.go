package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/retail/backoffice/internal/interfaces/http/dto"
)

// ActorIDKey is the context key under which the acting employee ID is stored
const ActorIDKey = "actor_id"

// ActorHeader carries the acting employee's ID on mutating requests
const ActorHeader = "X-Actor-ID"

// RequireActor rejects requests that do not carry a valid X-Actor-ID header.
// Mutating routes need to know which employee acted for audit trails.
func RequireActor() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(ActorHeader)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest,
				dto.NewErrorResponse(dto.ErrCodeValidation, "X-Actor-ID header is required"))
			return
		}
		actorID, err := uuid.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest,
				dto.NewErrorResponse(dto.ErrCodeValidation, "X-Actor-ID must be a valid UUID"))
			return
		}
		c.Set(ActorIDKey, actorID)
		c.Next()
	}
}

// GetActorID returns the acting employee ID set by RequireActor
func GetActorID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ActorIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
