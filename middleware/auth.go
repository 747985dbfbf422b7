package middleware

import (
	"net/http"
	"strings"

	"github.com/Bishesh-P/coffee-alpico-sub000/auth"
	"github.com/gin-gonic/gin"
)

// SessionKey is the gin context key holding the guest session id.
const SessionKey = "session_id"

// ValidateToken requires a guest token in the Authorization header, with
// or without the Bearer prefix.
func ValidateToken(issuer *auth.GuestIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := strings.TrimSpace(c.GetHeader("Authorization"))
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
			return
		}
		tokenString = strings.TrimSpace(strings.TrimPrefix(tokenString, "Bearer "))

		claims, err := issuer.Parse(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(SessionKey, claims.SessionID)
		c.Next()
	}
}
