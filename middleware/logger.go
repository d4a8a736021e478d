package middleware

import (
	"time"

	"github.com/LovationAdmin/finanzas/utils"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs every finished request with its status and duration.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		utils.LogAPIRequest(
			c.Request.Method,
			c.Request.URL.Path,
			GetRequestID(c),
			c.Writer.Status(),
			time.Since(start).String(),
		)
		for _, e := range c.Errors {
			utils.SafeError("❌ %s %s: %v", c.Request.Method, c.Request.URL.Path, e.Err)
		}
	}
}
