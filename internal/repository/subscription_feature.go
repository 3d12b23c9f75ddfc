package repository

import (
	"taskhive-backend/internal/database/models"

	"gorm.io/gorm"
)

// SubscriptionFeatureRepository reads the static plan feature catalog
type SubscriptionFeatureRepository struct {
	db *gorm.DB
}

// NewSubscriptionFeatureRepository creates a new feature catalog repository
func NewSubscriptionFeatureRepository(db *gorm.DB) *SubscriptionFeatureRepository {
	return &SubscriptionFeatureRepository{db: db}
}

// GetEnabledByPlan returns the enabled features of a plan
func (r *SubscriptionFeatureRepository) GetEnabledByPlan(plan models.SubscriptionPlan) ([]models.SubscriptionFeature, error) {
	var features []models.SubscriptionFeature
	err := r.db.
		Where("plan = ? AND is_enabled = ?", plan, true).
		Order("feature_key").
		Find(&features).Error
	if err != nil {
		return nil, err
	}
	return features, nil
}
