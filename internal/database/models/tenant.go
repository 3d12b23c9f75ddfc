package models

// Tenant represents an isolated customer account. It is the scoping
// boundary for all task and subscription data.
type Tenant struct {
	BaseModel
	Name string `json:"name" gorm:"not null;size:255" validate:"required,max=255"`
	Slug string `json:"slug" gorm:"uniqueIndex;not null;size:255" validate:"required,max=255"`

	// Relationships
	Users []User `json:"users,omitempty" gorm:"many2many:tenant_users;"`
}

// TableName returns the table name for Tenant
func (Tenant) TableName() string {
	return "tenants"
}
