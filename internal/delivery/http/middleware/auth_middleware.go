package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"skills-platform-backend/internal/delivery/http/response"
	"skills-platform-backend/internal/domain"
	"skills-platform-backend/pkg/auth"
)

// AuthMiddleware validates the Bearer token and stores the user id in the
// context. expected pins the token type so that a refresh token cannot be
// used on a regular endpoint, and vice versa.
func AuthMiddleware(tokens *auth.Manager, expected auth.TokenType) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header required", nil)
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		if tokenString == header || tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header must be a Bearer token", nil)
			c.Abort()
			return
		}

		claims, err := tokens.Parse(tokenString)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "Invalid or expired token", nil)
			c.Abort()
			return
		}
		if claims.Type != expected {
			response.Error(c, http.StatusUnauthorized, "Invalid token type for this endpoint", nil)
			c.Abort()
			return
		}

		c.Set(string(domain.KeyUserID), claims.UserID)
		c.Set(string(domain.KeyTokenType), string(claims.Type))
		c.Next()
	}
}

// UserID reads the authenticated user id set by AuthMiddleware.
func UserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(string(domain.KeyUserID))
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
