package auth

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
)

// Context keys for user data
const (
	ContextKeyUserID   = "auth_user_id"
	ContextKeyUsername = "auth_username"
)

// CurrentUser returns a middleware that reads the session at the start of
// every request and establishes a request-scoped current user in the gin
// context. Anonymous requests get an empty context, never an error.
func CurrentUser(sm *SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID := sm.GetUserID(c.Request); userID != 0 {
			c.Set(ContextKeyUserID, userID)
			c.Set(ContextKeyUsername, sm.GetUsername(c.Request))
		}
		c.Next()
	}
}

// RequireAuth guards mutation routes: anonymous requests are redirected to
// the login page with a message instead of reaching the handler.
func RequireAuth(message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetUserID(c) == 0 {
			target := "/login?next=" + url.QueryEscape(c.Request.URL.Path)
			if message != "" {
				target += "&flash=" + url.QueryEscape(message)
			}
			c.Redirect(http.StatusFound, target)
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetUserID retrieves the authenticated user's ID from the context.
// Returns 0 for anonymous requests.
func GetUserID(c *gin.Context) uint {
	if id, exists := c.Get(ContextKeyUserID); exists {
		if userID, ok := id.(uint); ok {
			return userID
		}
	}
	return 0
}

// GetUsername retrieves the authenticated user's username from the context.
func GetUsername(c *gin.Context) string {
	if name, exists := c.Get(ContextKeyUsername); exists {
		if username, ok := name.(string); ok {
			return username
		}
	}
	return ""
}

// IsAuthenticated returns true if the request carries a logged-in user.
func IsAuthenticated(c *gin.Context) bool {
	return GetUserID(c) != 0
}
