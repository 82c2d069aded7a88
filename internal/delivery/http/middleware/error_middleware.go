package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"skills-platform-backend/internal/delivery/http/response"
	"skills-platform-backend/pkg/apperror"
	"skills-platform-backend/pkg/logger"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Code >= http.StatusInternalServerError {
				logger.Log.Error("request failed", "path", c.Request.URL.Path, "error", appErr.Err)
			}
			response.Error(c, appErr.Code, appErr.Message, nil)
			return
		}

		// Never expose internal error details to clients.
		logger.Log.Error("unhandled error", "path", c.Request.URL.Path, "error", err)
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
	}
}
