package tenancy

import (
	"errors"
	"net/http"

	apperrors "taskhive-backend/internal/errors"

	"github.com/gin-gonic/gin"
)

// Middleware establishes the tenant context for tenant-scoped routes
type Middleware struct {
	resolver *Resolver
}

// NewMiddleware creates a new tenancy middleware
func NewMiddleware(resolver *Resolver) *Middleware {
	return &Middleware{resolver: resolver}
}

// RequireTenant resolves the tenant identifier supplied in the
// X-Tenant-ID header, the X-Tenant header, or the tenant query
// parameter, and binds the tenant to the request. Missing identifier
// is a 400; an identifier that matches no tenant is a 404.
func (m *Middleware) RequireTenant() gin.HandlerFunc {
	return func(c *gin.Context) {
		identifier := c.GetHeader("X-Tenant-ID")
		if identifier == "" {
			identifier = c.GetHeader("X-Tenant")
		}
		if identifier == "" {
			identifier = c.Query("tenant")
		}

		if identifier == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"message": "Tenant could not be identified by request data",
				"error":   apperrors.ErrMissingTenantID.Error(),
			})
			c.Abort()
			return
		}

		tenant, err := m.resolver.Resolve(identifier)
		if err != nil {
			if errors.Is(err, apperrors.ErrTenantNotFound) {
				c.JSON(http.StatusNotFound, gin.H{
					"message": "Tenant not found",
					"error":   "No tenant found with identifier: " + identifier,
				})
				c.Abort()
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		SetCurrentTenant(c, tenant)
		c.Next()
	}
}
