package database

import (
	"errors"
	"fmt"

	"taskhive-backend/internal/database/models"

	"gorm.io/gorm"
)

func intPtr(v int) *int { return &v }

// featureCatalog is the static plan catalog. limit_value is advisory
// reporting data; nothing enforces it at runtime.
var featureCatalog = []models.SubscriptionFeature{
	// Basic plan
	{Plan: models.PlanBasic, FeatureKey: "max_agents", FeatureName: "Maximum Agents", Description: "Maximum number of agents allowed", IsEnabled: true, LimitValue: intPtr(5)},
	{Plan: models.PlanBasic, FeatureKey: "basic_tasks", FeatureName: "Basic Task Management", Description: "Create and manage basic tasks", IsEnabled: true},
	{Plan: models.PlanBasic, FeatureKey: "no_automation", FeatureName: "No Automation", Description: "Automation features not available", IsEnabled: false},

	// Pro plan
	{Plan: models.PlanPro, FeatureKey: "max_agents", FeatureName: "Maximum Agents", Description: "Maximum number of agents allowed", IsEnabled: true, LimitValue: intPtr(20)},
	{Plan: models.PlanPro, FeatureKey: "advanced_tasks", FeatureName: "Advanced Task Management", Description: "Advanced task features and customization", IsEnabled: true},
	{Plan: models.PlanPro, FeatureKey: "basic_automation", FeatureName: "Basic Automation", Description: "Basic automation tools", IsEnabled: true},
	{Plan: models.PlanPro, FeatureKey: "reports", FeatureName: "Reports", Description: "Access to reporting features", IsEnabled: true},

	// Enterprise plan (max_agents has no limit, meaning unlimited)
	{Plan: models.PlanEnterprise, FeatureKey: "max_agents", FeatureName: "Maximum Agents", Description: "Maximum number of agents allowed", IsEnabled: true},
	{Plan: models.PlanEnterprise, FeatureKey: "all_features", FeatureName: "All Features", Description: "Access to all features", IsEnabled: true},
	{Plan: models.PlanEnterprise, FeatureKey: "advanced_automation", FeatureName: "Advanced Automation", Description: "Advanced automation tools", IsEnabled: true},
	{Plan: models.PlanEnterprise, FeatureKey: "advanced_reports", FeatureName: "Advanced Reports", Description: "Advanced reporting and analytics", IsEnabled: true},
	{Plan: models.PlanEnterprise, FeatureKey: "api_access", FeatureName: "API Access", Description: "Access to API endpoints", IsEnabled: true},
}

// widgetCatalog describes which dashboard widgets each role sees.
var widgetCatalog = []models.DashboardWidget{
	// Manager widgets
	{Role: models.RoleManager, WidgetKey: "user_management", WidgetName: "User Management", Description: "Manage users and their roles", IsActive: true, Order: 1},
	{Role: models.RoleManager, WidgetKey: "reports", WidgetName: "Reports", Description: "View detailed reports and analytics", IsActive: true, Order: 2},
	{Role: models.RoleManager, WidgetKey: "analytics", WidgetName: "Analytics", Description: "Performance metrics and analytics", IsActive: true, Order: 3},
	{Role: models.RoleManager, WidgetKey: "activity_logs", WidgetName: "Activity Logs", Description: "View system activity logs", IsActive: true, Order: 4},
	{Role: models.RoleManager, WidgetKey: "subscription_overview", WidgetName: "Subscription Overview", Description: "Current subscription and billing", IsActive: true, Order: 5},

	// Team lead widgets
	{Role: models.RoleTeamLead, WidgetKey: "team_tasks", WidgetName: "Team Tasks", Description: "Tasks assigned to your team", IsActive: true, Order: 1},
	{Role: models.RoleTeamLead, WidgetKey: "performance_metrics", WidgetName: "Performance Metrics", Description: "Team performance statistics", IsActive: true, Order: 2},
	{Role: models.RoleTeamLead, WidgetKey: "team_activity", WidgetName: "Team Activity", Description: "Recent team activity", IsActive: true, Order: 3},

	// Agent widgets
	{Role: models.RoleAgent, WidgetKey: "my_tasks", WidgetName: "My Tasks", Description: "Tasks assigned to you", IsActive: true, Order: 1},
	{Role: models.RoleAgent, WidgetKey: "notifications", WidgetName: "Notifications", Description: "Your notifications", IsActive: true, Order: 2},
	{Role: models.RoleAgent, WidgetKey: "personal_stats", WidgetName: "Personal Stats", Description: "Your performance statistics", IsActive: true, Order: 3},
}

// SeedReferenceData upserts the subscription feature catalog and the
// dashboard widget catalog. It is idempotent and safe to run at every
// startup.
func SeedReferenceData(db *gorm.DB) error {
	for _, feature := range featureCatalog {
		var existing models.SubscriptionFeature
		err := db.Where("plan = ? AND feature_key = ?", feature.Plan, feature.FeatureKey).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := db.Create(&feature).Error; err != nil {
				return fmt.Errorf("seed feature %s/%s: %w", feature.Plan, feature.FeatureKey, err)
			}
		case err != nil:
			return fmt.Errorf("lookup feature %s/%s: %w", feature.Plan, feature.FeatureKey, err)
		default:
			updates := map[string]interface{}{
				"feature_name": feature.FeatureName,
				"description":  feature.Description,
				"is_enabled":   feature.IsEnabled,
				"limit_value":  feature.LimitValue,
			}
			if err := db.Model(&existing).Updates(updates).Error; err != nil {
				return fmt.Errorf("update feature %s/%s: %w", feature.Plan, feature.FeatureKey, err)
			}
		}
	}

	for _, widget := range widgetCatalog {
		var existing models.DashboardWidget
		err := db.Where("widget_key = ?", widget.WidgetKey).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := db.Create(&widget).Error; err != nil {
				return fmt.Errorf("seed widget %s: %w", widget.WidgetKey, err)
			}
		case err != nil:
			return fmt.Errorf("lookup widget %s: %w", widget.WidgetKey, err)
		default:
			updates := map[string]interface{}{
				"role":          widget.Role,
				"widget_name":   widget.WidgetName,
				"description":   widget.Description,
				"is_active":     widget.IsActive,
				"display_order": widget.Order,
			}
			if err := db.Model(&existing).Updates(updates).Error; err != nil {
				return fmt.Errorf("update widget %s: %w", widget.WidgetKey, err)
			}
		}
	}

	return nil
}
