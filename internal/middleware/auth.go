// Package middleware holds the gin middleware.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"gramhealth-go/internal/model"
	"gramhealth-go/internal/service"
	"gramhealth-go/pkg/log"
)

const (
	// SessionKey is the gin context key holding the model.Session.
	SessionKey   = "session"
	bearerPrefix = "Bearer "
)

// AuthMiddleware verifies the bearer access token and stores the session in the context.
func AuthMiddleware(userService service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    http.StatusUnauthorized,
				"message": "missing Authorization header",
			})
			return
		}
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    http.StatusUnauthorized,
				"message": "invalid Authorization header format",
			})
			return
		}

		session, err := userService.Authenticate(c.Request.Context(), strings.TrimPrefix(authHeader, bearerPrefix))
		if err != nil {
			log.Warnf("[Auth] rejected token for %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    http.StatusUnauthorized,
				"message": "invalid or expired token",
			})
			return
		}

		c.Set(SessionKey, session)
		c.Next()
	}
}

// BearerToken returns the raw token from the Authorization header.
func BearerToken(c *gin.Context) string {
	return strings.TrimPrefix(c.GetHeader("Authorization"), bearerPrefix)
}

// CurrentSession returns the session set by AuthMiddleware, or model.Anonymous.
func CurrentSession(c *gin.Context) model.Session {
	v, ok := c.Get(SessionKey)
	if !ok {
		return model.Anonymous
	}
	session, ok := v.(model.Session)
	if !ok {
		return model.Anonymous
	}
	return session
}
