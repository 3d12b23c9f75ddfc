package repository

import (
	"taskhive-backend/internal/database/models"

	"gorm.io/gorm"
)

// DashboardWidgetRepository reads the static widget catalog
type DashboardWidgetRepository struct {
	db *gorm.DB
}

// NewDashboardWidgetRepository creates a new widget catalog repository
func NewDashboardWidgetRepository(db *gorm.DB) *DashboardWidgetRepository {
	return &DashboardWidgetRepository{db: db}
}

// GetActiveByRole returns the active widgets for a role, ordered for display
func (r *DashboardWidgetRepository) GetActiveByRole(role models.UserRole) ([]models.DashboardWidget, error) {
	var widgets []models.DashboardWidget
	err := r.db.
		Where("role = ? AND is_active = ?", role, true).
		Order("display_order ASC").
		Find(&widgets).Error
	if err != nil {
		return nil, err
	}
	return widgets, nil
}
