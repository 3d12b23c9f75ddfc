package repository

import (
	"errors"
	"time"

	"taskhive-backend/internal/database/models"
	apperrors "taskhive-backend/internal/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TenantRepository handles database operations for tenants
type TenantRepository struct {
	db *gorm.DB
}

// NewTenantRepository creates a new tenant repository
func NewTenantRepository(db *gorm.DB) *TenantRepository {
	return &TenantRepository{db: db}
}

// Create creates a new tenant
func (r *TenantRepository) Create(tenant *models.Tenant) error {
	return r.db.Create(tenant).Error
}

// CreateWithOwner performs the registration write sequence in a single
// transaction: the tenant, its first user, the membership link, and
// the initial subscription either all land or none do. This avoids
// orphaned partial tenants when a later step fails.
func (r *TenantRepository) CreateWithOwner(tenant *models.Tenant, owner *models.User, subscription *models.Subscription) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(tenant).Error; err != nil {
			return err
		}
		if err := tx.Create(owner).Error; err != nil {
			return err
		}
		if err := tx.Model(tenant).Association("Users").Append(owner); err != nil {
			return err
		}
		if subscription != nil {
			subscription.TenantID = tenant.ID
			if err := createSubscription(tx, subscription); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetByID retrieves a tenant by ID
func (r *TenantRepository) GetByID(id uuid.UUID) (*models.Tenant, error) {
	var tenant models.Tenant
	err := r.db.First(&tenant, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

// GetBySlug retrieves a tenant by slug
func (r *TenantRepository) GetBySlug(slug string) (*models.Tenant, error) {
	var tenant models.Tenant
	err := r.db.First(&tenant, "slug = ?", slug).Error
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

// GetWithUsers retrieves a tenant with its member users
func (r *TenantRepository) GetWithUsers(id uuid.UUID) (*models.Tenant, error) {
	var tenant models.Tenant
	err := r.db.Preload("Users").First(&tenant, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

// AddUser links a user to a tenant
func (r *TenantRepository) AddUser(tenant *models.Tenant, user *models.User) error {
	return r.db.Model(tenant).Association("Users").Append(user)
}

// createSubscription inserts a subscription after verifying the tenant
// has no other active one. Shared by SubscriptionRepository.Create and
// the registration transaction.
func createSubscription(tx *gorm.DB, subscription *models.Subscription) error {
	var existing models.Subscription
	err := tx.
		Where("tenant_id = ? AND status = ?", subscription.TenantID, models.SubscriptionStatusActive).
		Where("expires_at IS NULL OR expires_at > ?", time.Now()).
		First(&existing).Error
	if err == nil {
		return apperrors.ErrActiveSubscriptionExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return tx.Create(subscription).Error
}
