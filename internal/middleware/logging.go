package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"gramhealth-go/pkg/log"
)

// RequestLogger logs one line per request. Bodies are never logged: they
// carry passwords and patient symptoms.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		c.Next()

		fields := []interface{}{
			"statusCode", c.Writer.Status(),
			"latency", time.Since(startTime).String(),
			"clientIP", c.ClientIP(),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"responseSize", c.Writer.Size(),
		}
		if s := CurrentSession(c); s.Authenticated {
			fields = append(fields, "username", s.Username)
		}
		if len(c.Errors) > 0 {
			log.Warnw("HTTP Request Log", append(fields, "errors", c.Errors.String())...)
			return
		}
		log.Infow("HTTP Request Log", fields...)
	}
}
