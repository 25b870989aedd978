package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/pageza/pantry-chef/internal/logger"
)

const defaultErrorMessage = "An internal server error occurred."

// Recovery turns a panic into a 500 JSON error response carrying the panic
// message
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.FromContext(c.Request.Context()).Error("panic recovered",
					"panic", fmt.Sprintf("%v", rec),
					"stack", string(debug.Stack()),
					"path", c.Request.URL.Path,
					"method", c.Request.Method,
				)

				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": panicMessage(rec)})
			}
		}()

		c.Next()
	}
}

func panicMessage(rec any) string {
	var msg string
	switch v := rec.(type) {
	case error:
		msg = v.Error()
	case string:
		msg = v
	default:
		msg = fmt.Sprintf("%v", v)
	}
	if msg == "" {
		return defaultErrorMessage
	}
	return msg
}
