package middleware

import (
	"errors"
	"net/http"

	"agentic-landing-site/internal/delivery/http/response"
	"agentic-landing-site/pkg/apperror"
	"agentic-landing-site/pkg/logger"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Code >= http.StatusInternalServerError && appErr.Err != nil {
				logger.Log.Error("Request failed", "error", appErr.Err, "path", c.FullPath(), "request_id", c.GetString(RequestIDKey))
			}
			response.Error(c, appErr.Code, appErr.Message, appErr.Details)
			return
		}

		// Never expose internal error details to clients
		logger.Log.Error("Internal Server Error", "error", err, "path", c.FullPath(), "request_id", c.GetString(RequestIDKey))
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
	}
}
