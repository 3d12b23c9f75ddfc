package models

import (
	"github.com/google/uuid"
)

// TaskStatus defines the lifecycle states of a task
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusCancelled  TaskStatus = "cancelled"
)

// IsValid checks if the TaskStatus is valid
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusCancelled:
		return true
	}
	return false
}

// Task belongs to exactly one tenant. Every query against tasks must be
// scoped to the active tenant; task IDs are UUIDs and therefore unique
// across the whole store.
type Task struct {
	BaseModel
	TenantID    uuid.UUID  `json:"tenant_id" gorm:"type:uuid;not null;index"`
	Title       string     `json:"title" gorm:"not null;size:255" validate:"required,max=255"`
	Description string     `json:"description" gorm:"type:text"`
	Status      TaskStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending'"`
	AssignedTo  *uuid.UUID `json:"assigned_to" gorm:"type:uuid;index"`
	CreatedBy   uuid.UUID  `json:"created_by" gorm:"type:uuid;not null;index"`

	// Relationships
	AssignedUser *User `json:"assigned_user,omitempty" gorm:"foreignKey:AssignedTo"`
	Creator      *User `json:"creator,omitempty" gorm:"foreignKey:CreatedBy"`
}

// TableName returns the table name for Task
func (Task) TableName() string {
	return "tasks"
}

// IsPending returns true if the task has not been started yet
func (t *Task) IsPending() bool {
	return t.Status == TaskStatusPending
}

// IsCompleted returns true if the task has been completed
func (t *Task) IsCompleted() bool {
	return t.Status == TaskStatusCompleted
}

// IsAssignedTo returns true if the task is assigned to the given user
func (t *Task) IsAssignedTo(userID uuid.UUID) bool {
	return t.AssignedTo != nil && *t.AssignedTo == userID
}
