package models

// UserRole governs task visibility and mutation rights.
//
// The role is stored on the user record, not on the tenant membership:
// a user keeps the same role in every tenant they belong to.
type UserRole string

const (
	RoleManager  UserRole = "manager"
	RoleTeamLead UserRole = "team_lead"
	RoleAgent    UserRole = "agent"
)

// IsValid checks if the UserRole is valid
func (r UserRole) IsValid() bool {
	switch r {
	case RoleManager, RoleTeamLead, RoleAgent:
		return true
	}
	return false
}

// User represents an authenticated account. A user may belong to
// multiple tenants through the tenant_users membership table.
type User struct {
	BaseModel
	Name         string   `json:"name" gorm:"not null;size:255" validate:"required,max=255"`
	Email        string   `json:"email" gorm:"uniqueIndex;not null;size:255" validate:"required,email,max=255"`
	PasswordHash string   `json:"-" gorm:"not null;size:255"`
	Role         UserRole `json:"role" gorm:"type:varchar(20);not null;default:'manager'"`

	// Relationships
	Tenants []Tenant `json:"tenants,omitempty" gorm:"many2many:tenant_users;"`
}

// TableName returns the table name for User
func (User) TableName() string {
	return "users"
}

// IsManager returns true if the user has the manager role
func (u *User) IsManager() bool {
	return u.Role == RoleManager
}

// IsTeamLead returns true if the user has the team lead role
func (u *User) IsTeamLead() bool {
	return u.Role == RoleTeamLead
}

// IsAgent returns true if the user has the agent role
func (u *User) IsAgent() bool {
	return u.Role == RoleAgent
}
