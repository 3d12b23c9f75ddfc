package repository

import (
	"time"

	"taskhive-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SubscriptionRepository handles database operations for subscriptions
type SubscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository creates a new subscription repository
func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// Create inserts a subscription, rejecting it when the tenant already
// has an active one. The one-active-per-tenant invariant is enforced
// here, at write time, rather than by a database constraint.
func (r *SubscriptionRepository) Create(subscription *models.Subscription) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return createSubscription(tx, subscription)
	})
}

// GetActiveByTenant retrieves the tenant's active subscription:
// status active and not expired.
func (r *SubscriptionRepository) GetActiveByTenant(tenantID uuid.UUID) (*models.Subscription, error) {
	var subscription models.Subscription
	err := r.db.
		Where("tenant_id = ? AND status = ?", tenantID, models.SubscriptionStatusActive).
		Where("expires_at IS NULL OR expires_at > ?", time.Now()).
		First(&subscription).Error
	if err != nil {
		return nil, err
	}
	return &subscription, nil
}

// Update updates a subscription
func (r *SubscriptionRepository) Update(subscription *models.Subscription) error {
	return r.db.Save(subscription).Error
}
