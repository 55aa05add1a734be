package middleware

import (
	"errors"
	"net/http"

	"job-board-backend/internal/delivery/http/response"
	"job-board-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const genericErrorMessage = "An unexpected error occurred. Please try again later."

// ErrorHandler renders the last error pushed with c.Error. It is the only
// place errors are turned into responses.
func ErrorHandler(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		reqID := zap.String("request_id", c.GetString(response.RequestIDKey))

		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			log.Error("unhandled error", reqID, zap.String("path", c.Request.URL.Path), zap.Error(err))
			response.Error(c, http.StatusInternalServerError, genericErrorMessage)
			return
		}

		if appErr.Err != nil {
			log.Error(appErr.Message, reqID, zap.String("kind", string(appErr.Kind)), zap.Error(appErr.Err))
		}
		if appErr.Kind == apperror.KindInternal {
			response.Error(c, appErr.Code, genericErrorMessage)
			return
		}
		response.Error(c, appErr.Code, appErr.Message)
	}
}
