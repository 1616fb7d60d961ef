package middleware

import (
	"context"
	"crypto/rand"
	"encoding/hex"

	"taskboard/pkg/logger"

	"github.com/gin-gonic/gin"
)

const (
	RequestIDHeader = "X-Request-Id"

	maxRequestIDLength = 64
)

// RequestIDMiddleware propagates the caller's request id or assigns a new one,
// and stores it in the request context for the logger.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" || len(requestID) > maxRequestIDLength {
			requestID = newRequestID()
		}
		c.Writer.Header().Set(RequestIDHeader, requestID)
		c.Set(string(logger.RequestIdKey), requestID)

		ctx := context.WithValue(c.Request.Context(), logger.RequestIdKey, requestID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// newRequestID returns 32 hex characters.
func newRequestID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return ""
	}
	return hex.EncodeToString(buf)
}
