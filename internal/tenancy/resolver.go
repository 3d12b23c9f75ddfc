package tenancy

import (
	"errors"
	"fmt"

	"taskhive-backend/internal/database/models"
	apperrors "taskhive-backend/internal/errors"
	"taskhive-backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Resolver maps a tenant identifier token to exactly one tenant
type Resolver struct {
	tenantRepo repository.TenantRepositoryInterface
}

// NewResolver creates a new tenant resolver
func NewResolver(tenantRepo repository.TenantRepositoryInterface) *Resolver {
	return &Resolver{tenantRepo: tenantRepo}
}

// Resolve looks the identifier up as a tenant ID first, then as a
// slug. It returns ErrTenantNotFound when neither matches.
func (r *Resolver) Resolve(identifier string) (*models.Tenant, error) {
	if id, err := uuid.Parse(identifier); err == nil {
		tenant, err := r.tenantRepo.GetByID(id)
		if err == nil {
			return tenant, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("resolve tenant by id: %w", err)
		}
	}

	tenant, err := r.tenantRepo.GetBySlug(identifier)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTenantNotFound
		}
		return nil, fmt.Errorf("resolve tenant by slug: %w", err)
	}
	return tenant, nil
}
