package repository

import (
	"taskhive-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/repository_mocks.go -package=mocks

// TenantRepositoryInterface defines the interface for tenant repository operations
type TenantRepositoryInterface interface {
	Create(tenant *models.Tenant) error
	CreateWithOwner(tenant *models.Tenant, owner *models.User, subscription *models.Subscription) error
	GetByID(id uuid.UUID) (*models.Tenant, error)
	GetBySlug(slug string) (*models.Tenant, error)
	GetWithUsers(id uuid.UUID) (*models.Tenant, error)
	AddUser(tenant *models.Tenant, user *models.User) error
}

// UserRepositoryInterface defines the interface for user repository operations
type UserRepositoryInterface interface {
	Create(user *models.User) error
	GetByID(id uuid.UUID) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetMemberByEmail(tenantID uuid.UUID, email string) (*models.User, error)
	GetWithTenants(id uuid.UUID) (*models.User, error)
}

// TaskFilters carries the optional listing filters and pagination
type TaskFilters struct {
	Status  *models.TaskStatus
	Search  string
	Page    int
	PerPage int
}

// TaskRepositoryInterface defines the interface for task repository operations
type TaskRepositoryInterface interface {
	Create(task *models.Task) error
	// GetByID is a global lookup: task IDs are UUIDs, unique across
	// all tenants, so the fetch itself is not tenant-filtered.
	GetByID(id uuid.UUID) (*models.Task, error)
	List(tenantID uuid.UUID, visible func(*gorm.DB) *gorm.DB, filters TaskFilters) ([]models.Task, int64, error)
	Update(task *models.Task) error
	Delete(id uuid.UUID) error

	CountByTenant(tenantID uuid.UUID) (int64, error)
	CountByStatus(tenantID uuid.UUID, status models.TaskStatus) (int64, error)
	CountAssignedTo(tenantID, userID uuid.UUID) (int64, error)
	CountAssignedToWithStatus(tenantID, userID uuid.UUID, status models.TaskStatus) (int64, error)
}

// SubscriptionRepositoryInterface defines the interface for subscription repository operations
type SubscriptionRepositoryInterface interface {
	Create(subscription *models.Subscription) error
	GetActiveByTenant(tenantID uuid.UUID) (*models.Subscription, error)
	Update(subscription *models.Subscription) error
}

// SubscriptionFeatureRepositoryInterface defines the interface for the plan feature catalog
type SubscriptionFeatureRepositoryInterface interface {
	GetEnabledByPlan(plan models.SubscriptionPlan) ([]models.SubscriptionFeature, error)
}

// DashboardWidgetRepositoryInterface defines the interface for the widget catalog
type DashboardWidgetRepositoryInterface interface {
	GetActiveByRole(role models.UserRole) ([]models.DashboardWidget, error)
}
