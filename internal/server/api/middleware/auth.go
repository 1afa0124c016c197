// Package middleware holds the gin middleware of the store REST API.
package middleware

import (
	"net/http"
	"strings"

	"github.com/dmitrijs2005/billed/internal/common"
	"github.com/dmitrijs2005/billed/internal/server/auth"
	"github.com/gin-gonic/gin"
)

const (
	// ContextKeyEmail holds the authenticated account's email in the gin context.
	ContextKeyEmail = "email"
	// ContextKeyUserType holds the authenticated account's type.
	ContextKeyUserType = "userType"
)

// Authenticator resolves a bearer token to its claims.
type Authenticator interface {
	Authenticate(token string) (*auth.Claims, error)
}

// AuthMiddleware rejects requests without a valid bearer token and stores the
// caller's identity in the context.
func AuthMiddleware(a Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(common.AuthorizationHeaderName)
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		scheme, token, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		claims, err := a.Authenticate(strings.TrimSpace(token))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(ContextKeyEmail, claims.Email)
		c.Set(ContextKeyUserType, claims.Type)
		c.Next()
	}
}
