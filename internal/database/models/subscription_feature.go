package models

// SubscriptionFeature is a row of the static plan catalog, keyed by
// (plan, feature_key). LimitValue is advisory only; nothing in the
// application enforces it.
type SubscriptionFeature struct {
	BaseModel
	Plan        SubscriptionPlan `json:"plan" gorm:"type:varchar(20);not null;uniqueIndex:idx_plan_feature"`
	FeatureKey  string           `json:"feature_key" gorm:"not null;size:100;uniqueIndex:idx_plan_feature"`
	FeatureName string           `json:"feature_name" gorm:"not null;size:255"`
	Description string           `json:"description" gorm:"type:text"`
	IsEnabled   bool             `json:"is_enabled" gorm:"not null;default:true"`
	LimitValue  *int             `json:"limit_value"`
}

// TableName returns the table name for SubscriptionFeature
func (SubscriptionFeature) TableName() string {
	return "subscription_features"
}

// HasLimit returns true if the feature carries a numeric limit
func (f *SubscriptionFeature) HasLimit() bool {
	return f.LimitValue != nil
}
