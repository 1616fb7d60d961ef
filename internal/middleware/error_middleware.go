package middleware

import (
	"errors"
	"net/http"

	"taskboard/internal/transport/httpdto"
	taskboard_errors "taskboard/pkg/errors"
	"taskboard/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StatusFor maps a service error to its HTTP status and response code.
func StatusFor(err error) (int, string) {
	switch {
	case errors.Is(err, taskboard_errors.ErrMalformedRequest):
		return http.StatusBadRequest, httpdto.CodeMalformedRequest
	case errors.Is(err, taskboard_errors.ErrDuplicateName):
		return http.StatusBadRequest, httpdto.CodeDuplicateName
	case errors.Is(err, taskboard_errors.ErrTaskNotFound):
		return http.StatusNotFound, httpdto.CodeTaskNotFound
	case errors.Is(err, taskboard_errors.ErrUserNotFound):
		return http.StatusNotFound, httpdto.CodeUserNotFound
	case errors.Is(err, taskboard_errors.ErrStorageFailure):
		return http.StatusInternalServerError, httpdto.CodeStorageFailure
	default:
		return http.StatusInternalServerError, httpdto.CodeInternal
	}
}

// ErrorHandler renders the last error a handler attached with c.Error.
// Server-side failures are logged and their details are not sent to the client.
func ErrorHandler(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status, code := StatusFor(err)
		message := err.Error()
		if status >= http.StatusInternalServerError {
			if l != nil {
				l.ErrorCtx(c.Request.Context(), "request error",
					zap.String("path", c.Request.URL.Path),
					zap.String("code", code),
					zap.Error(err),
				)
			}
			message = http.StatusText(status)
		}
		c.JSON(status, httpdto.NewErrorResponse(message, code))
	}
}

// Recovery turns a panic into a 500 envelope.
func Recovery(l *logger.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		if l != nil {
			l.ErrorCtx(c.Request.Context(), "panic recovered",
				zap.Any("panic", recovered),
				zap.String("path", c.Request.URL.Path),
			)
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError,
			httpdto.NewErrorResponse(http.StatusText(http.StatusInternalServerError), httpdto.CodeInternal))
	})
}
