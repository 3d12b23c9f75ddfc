package authz

import (
	"net/http"

	"taskhive-backend/internal/auth"
	"taskhive-backend/internal/database/models"
	apperrors "taskhive-backend/internal/errors"

	"github.com/gin-gonic/gin"
)

// RequireRole rejects requests from users whose role is not in the
// allowed set. It must run after the auth middleware.
func RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.CurrentUser(c)
		if user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated."})
			c.Abort()
			return
		}

		allowed := false
		for _, role := range roles {
			if user.Role == role {
				allowed = true
				break
			}
		}

		if !allowed {
			c.JSON(http.StatusForbidden, gin.H{"message": apperrors.ErrRoleNotAllowed.Error()})
			c.Abort()
			return
		}

		c.Next()
	}
}
