package models

// DashboardWidget is static reference data describing which UI widgets
// are visible for each role, and in what order.
type DashboardWidget struct {
	BaseModel
	Role        UserRole `json:"role" gorm:"type:varchar(20);not null;index"`
	WidgetKey   string   `json:"widget_key" gorm:"uniqueIndex;not null;size:100"`
	WidgetName  string   `json:"widget_name" gorm:"not null;size:255"`
	Description string   `json:"description" gorm:"type:text"`
	IsActive    bool     `json:"is_active" gorm:"not null;default:true"`
	Order       int      `json:"order" gorm:"column:display_order;not null;default:0"`
}

// TableName returns the table name for DashboardWidget
func (DashboardWidget) TableName() string {
	return "dashboard_widgets"
}
