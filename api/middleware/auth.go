package middleware

import (
	"net/http"
	"strings"

	"pairdiary/services"

	"github.com/gin-gonic/gin"
)

// Clients send the session token either as X-Session-ID (edge clients) or as
// a bearer Authorization header. The core accepts both.
func tokenFromRequest(c *gin.Context) string {
	if token := c.GetHeader("X-Session-ID"); token != "" {
		return token
	}
	if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

// RequireAuth resolves the session token and stores user_id on the context,
// aborting with 401 when the token is absent or unknown.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "login required"})
			c.Abort()
			return
		}
		userID, err := services.Sessions.Resolve(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "invalid session"})
			c.Abort()
			return
		}
		c.Set("user_id", userID)
		c.Set("session_token", token)
		c.Next()
	}
}

// OptionalAuth resolves the session when a token is present but never rejects
// the request. Used by public diary detail to let authors see their drafts.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := tokenFromRequest(c); token != "" {
			if userID, err := services.Sessions.Resolve(c.Request.Context(), token); err == nil {
				c.Set("user_id", userID)
			}
		}
		c.Next()
	}
}
