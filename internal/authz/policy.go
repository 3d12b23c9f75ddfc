// Package authz implements the role-based task authorization policy.
//
// Roles are capability sets, not an ordered hierarchy: managers see and
// mutate everything in the tenant, team leads list only work they own
// or were assigned, and agents are scoped to their own assignments.
// Listing, single-item view, edit, and delete each have their own rule,
// and the asymmetries between them are deliberate.
package authz

import (
	"taskhive-backend/internal/database/models"

	"gorm.io/gorm"
)

// VisibleScope returns the listing filter for the user's role, applied
// server-side before pagination:
//   - manager: every task in the tenant
//   - team_lead: tasks assigned to them or created by them
//   - agent: only tasks assigned to them
func VisibleScope(user *models.User) func(*gorm.DB) *gorm.DB {
	userID := user.ID
	switch user.Role {
	case models.RoleAgent:
		return func(db *gorm.DB) *gorm.DB {
			return db.Where("assigned_to = ?", userID)
		}
	case models.RoleTeamLead:
		return func(db *gorm.DB) *gorm.DB {
			return db.Where("assigned_to = ? OR created_by = ?", userID, userID)
		}
	default:
		return func(db *gorm.DB) *gorm.DB {
			return db
		}
	}
}

// CanView reports whether the user may fetch a single task. Agents
// must be the assignee; managers and team leads may view any task.
// A team lead's listing restriction deliberately does not apply here.
func CanView(user *models.User, task *models.Task) bool {
	if user.IsAgent() {
		return task.IsAssignedTo(user.ID)
	}
	return true
}

// CanEdit reports whether the user may update a task. Agents must be
// the assignee; managers and team leads may edit any task.
func CanEdit(user *models.User, task *models.Task) bool {
	if user.IsAgent() {
		return task.IsAssignedTo(user.ID)
	}
	return true
}

// CanDelete reports whether the user may delete a task: managers may
// delete anything, everyone else only tasks they created. An agent
// assigned a task they didn't create can view and edit it but not
// delete it.
func CanDelete(user *models.User, task *models.Task) bool {
	return user.IsManager() || task.CreatedBy == user.ID
}
