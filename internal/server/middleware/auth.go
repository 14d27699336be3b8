// Package middleware holds the gin middleware shared by every route group.
package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/livestockcare/internal/domain/models"
)

const principalKey = "principal"

// Verifier resolves a bearer token into the calling principal.
type Verifier interface {
	Verify(ctx context.Context, raw string) (models.Principal, error)
}

// Authenticate rejects requests without a valid bearer token and stores the
// resolved principal on the gin context.
func Authenticate(v Verifier, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}

		p, err := v.Verify(c.Request.Context(), strings.TrimSpace(token))
		if err != nil {
			var domainErr *models.Error
			if !errors.As(err, &domainErr) {
				logger.Error("token verification failed", zap.Error(err))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": domainErr.Message})
			return
		}

		c.Set(principalKey, p)
		c.Next()
	}
}

// RequireRoles lets the request through only when the caller holds one of roles.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := CurrentPrincipal(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}
		if !p.HasRole(roles...) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}
		c.Next()
	}
}

// CurrentPrincipal returns the caller stored by Authenticate.
func CurrentPrincipal(c *gin.Context) (models.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return models.Principal{}, false
	}
	p, ok := v.(models.Principal)
	return p, ok
}

// SetPrincipal stores p on the context. It is used by tests and by
// Authenticate.
func SetPrincipal(c *gin.Context, p models.Principal) {
	c.Set(principalKey, p)
}
