package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// SessionTokenKey is the context key for the bearer token.
	SessionTokenKey = "session_token"
	// SessionTeamKey is the context key for the caller's team id.
	SessionTeamKey = "session_team_id"
	// TeamIDHeader carries the caller's team scope.
	TeamIDHeader = "X-Team-ID"
)

// Session lifts the session token and team id off the request into the
// context. Identity is carried, not enforced: requests without either
// header pass through untouched.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if token, ok := strings.CutPrefix(auth, "Bearer "); ok && token != "" {
			c.Set(SessionTokenKey, token)
		}
		if teamID := c.GetHeader(TeamIDHeader); teamID != "" {
			c.Set(SessionTeamKey, teamID)
		}
		c.Next()
	}
}

// GetSessionTeamID returns the team id carried by the request, or empty.
func GetSessionTeamID(c *gin.Context) string {
	if v, exists := c.Get(SessionTeamKey); exists {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}
