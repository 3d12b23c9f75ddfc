package auth

import (
	"context"
	"net/http"
	"strings"

	"taskhive-backend/internal/database/models"
	apperrors "taskhive-backend/internal/errors"
	"taskhive-backend/internal/logger"
	"taskhive-backend/internal/tenancy"

	"github.com/gin-gonic/gin"
)

const (
	ginUserKey   = "current_user"
	ginClaimsKey = "auth_claims"
)

type contextKey string

// UserKey is the request-context key holding the authenticated user
const UserKey contextKey = "current_user"

// Middleware provides gin handlers for token authentication
type Middleware struct {
	service *Service
}

// NewMiddleware creates authentication middleware backed by the given service
func NewMiddleware(service *Service) *Middleware {
	return &Middleware{service: service}
}

// RequireAuth validates the bearer token, loads the user, and stores
// both on the request. When a tenant has already been resolved for the
// request, a token minted for a different tenant is rejected.
func (m *Middleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractBearerToken(c)
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"message": "Unauthenticated.",
				"error":   apperrors.ErrMissingToken.Error(),
			})
			c.Abort()
			return
		}

		claims, err := m.service.ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"message": "Unauthenticated.",
				"error":   err.Error(),
			})
			c.Abort()
			return
		}

		if tenant := tenancy.CurrentTenant(c); tenant != nil && tenant.ID.String() != claims.TenantID {
			c.JSON(http.StatusUnauthorized, gin.H{
				"message": "Unauthenticated.",
				"error":   apperrors.ErrInvalidToken.Error(),
			})
			c.Abort()
			return
		}

		user, err := m.service.CurrentUserFromClaims(claims)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"message": "Unauthenticated.",
				"error":   apperrors.ErrInvalidToken.Error(),
			})
			c.Abort()
			return
		}

		SetCurrentUser(c, user)
		SetCurrentClaims(c, claims)

		c.Next()
	}
}

// SetCurrentClaims binds validated token claims to the current request
func SetCurrentClaims(c *gin.Context, claims *Claims) {
	c.Set(ginClaimsKey, claims)
}

// SetCurrentUser binds the authenticated user to the current request
func SetCurrentUser(c *gin.Context, user *models.User) {
	c.Set(ginUserKey, user)
	ctx := context.WithValue(c.Request.Context(), UserKey, user)
	ctx = context.WithValue(ctx, logger.EmailKey, user.Email)
	c.Request = c.Request.WithContext(ctx)
}

// CurrentUser returns the authenticated user for the request, or nil
func CurrentUser(c *gin.Context) *models.User {
	value, exists := c.Get(ginUserKey)
	if !exists {
		return nil
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil
	}
	return user
}

// CurrentClaims returns the validated token claims for the request, or nil
func CurrentClaims(c *gin.Context) *Claims {
	value, exists := c.Get(ginClaimsKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*Claims)
	if !ok {
		return nil
	}
	return claims
}

func extractBearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
