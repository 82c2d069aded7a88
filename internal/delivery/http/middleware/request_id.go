package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"skills-platform-backend/internal/domain"
)

// RequestID attaches a request id to the context and echoes it in the
// X-Request-ID header, reusing the client's value when one is sent.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(string(domain.KeyRequestID), id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}
