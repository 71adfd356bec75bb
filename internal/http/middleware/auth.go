// README: Firebase auth middleware; resolves the caller's uid for handlers.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"courier/internal/infra"
)

const callerUIDKey = "caller_uid"

// Auth verifies the Bearer token on every request and stores the caller
// uid on the context. A nil verifier switches to demo mode: the uid is
// read from the X-User-ID header so the API can run without Firebase.
func Auth(verifier infra.TokenVerifier) gin.HandlerFunc {
	if verifier == nil {
		return demoAuth()
	}
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "no token provided"})
			return
		}
		token, err := verifier.VerifyIDToken(c.Request.Context(), strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "unauthorized"})
			return
		}
		c.Set(callerUIDKey, token.UID)
		c.Next()
	}
}

func demoAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetHeader("X-User-ID")
		if uid == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "no user id provided"})
			return
		}
		c.Set(callerUIDKey, uid)
		c.Next()
	}
}

// CallerUID returns the authenticated uid set by Auth, or "".
func CallerUID(c *gin.Context) string {
	uid, _ := c.Get(callerUIDKey)
	s, _ := uid.(string)
	return s
}
