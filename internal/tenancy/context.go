package tenancy

import (
	"context"

	"taskhive-backend/internal/database/models"
	"taskhive-backend/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type contextKey string

// TenantIDKey is the request-context key under which the active
// tenant's ID travels. The binding lives for one request; it is never
// stored in process-wide state.
const TenantIDKey contextKey = "tenant_id"

// ginTenantKey is the gin-context key for the resolved tenant record
const ginTenantKey = "tenant"

// SetCurrentTenant binds the resolved tenant to the current request:
// the full record in the gin context and the ID in the request context.
func SetCurrentTenant(c *gin.Context, tenant *models.Tenant) {
	c.Set(ginTenantKey, tenant)
	ctx := context.WithValue(c.Request.Context(), TenantIDKey, tenant.ID)
	ctx = context.WithValue(ctx, logger.TenantSlugKey, tenant.Slug)
	c.Request = c.Request.WithContext(ctx)
}

// CurrentTenant returns the tenant resolved for this request, or nil
func CurrentTenant(c *gin.Context) *models.Tenant {
	value, exists := c.Get(ginTenantKey)
	if !exists {
		return nil
	}
	tenant, ok := value.(*models.Tenant)
	if !ok {
		return nil
	}
	return tenant
}

// TenantIDFromContext extracts the active tenant ID from a request context
func TenantIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(TenantIDKey).(uuid.UUID)
	return id, ok
}
