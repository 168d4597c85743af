// Package middleware provides the reconciling bearer middleware.
package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"community_backend/internal/api"
	authentity "community_backend/internal/feature/auth/domain/entity"
	"community_backend/internal/feature/identity/domain"
)

// ContextUser is the context key under which the reconciled user is stored.
const ContextUser = "currentUser"

// Reconciler validates a provider token and upserts the matching local user.
type Reconciler interface {
	Sync(ctx context.Context, token string) (*authentity.User, error)
}

// IdentityRequired returns a Gin middleware that authenticates the request
// against the external identity provider and reconciles the caller into a
// local User, stored under ContextUser. Unlike a plain token check, every
// authenticated request keeps the local user record in sync.
func IdentityRequired(reconciler Reconciler) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.Error("Access denied. No token provided."))
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))

		user, err := reconciler.Sync(c.Request.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrInvalidToken), errors.Is(err, domain.ErrNoToken):
				c.AbortWithStatusJSON(http.StatusUnauthorized, api.Error("Invalid token."))
			case errors.Is(err, domain.ErrNoEmail):
				c.AbortWithStatusJSON(http.StatusBadRequest, api.Error("Supabase user has no email"))
			default:
				slog.Error("identity middleware failed", "error", err, "remote_addr", c.ClientIP())
				c.AbortWithStatusJSON(http.StatusInternalServerError, api.Error("Server error in authentication."))
			}
			return
		}

		c.Set(ContextUser, user)
		c.Next()
	}
}

// CurrentUser retrieves the reconciled user stored by IdentityRequired.
func CurrentUser(c *gin.Context) (*authentity.User, bool) {
	v, ok := c.Get(ContextUser)
	if !ok {
		return nil, false
	}
	user, ok := v.(*authentity.User)
	return user, ok
}
