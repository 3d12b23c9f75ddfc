package repository

import (
	"taskhive-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskRepository handles database operations for tasks. Every listing
// and counting query is scoped to a tenant; only the single-item
// GetByID relies on UUID global uniqueness instead.
type TaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create creates a new task
func (r *TaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// GetByID retrieves a task by ID with its assignee and creator
func (r *TaskRepository) GetByID(id uuid.UUID) (*models.Task, error) {
	var task models.Task
	err := r.db.
		Preload("AssignedUser").
		Preload("Creator").
		First(&task, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// List returns the tenant's tasks the visibility scope allows, with
// optional status and search filters, newest first, paginated.
func (r *TaskRepository) List(tenantID uuid.UUID, visible func(*gorm.DB) *gorm.DB, filters TaskFilters) ([]models.Task, int64, error) {
	query := r.db.Model(&models.Task{}).
		Where("tenant_id = ?", tenantID).
		Scopes(visible)

	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}

	if filters.Search != "" {
		pattern := "%" + filters.Search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filters.Page
	if page < 1 {
		page = 1
	}
	perPage := filters.PerPage
	if perPage < 1 {
		perPage = 15
	}

	var tasks []models.Task
	err := query.
		Preload("AssignedUser").
		Preload("Creator").
		Order("created_at DESC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&tasks).Error
	if err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// Update updates a task
func (r *TaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// Delete deletes a task
func (r *TaskRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Task{}, "id = ?", id).Error
}

// CountByTenant counts every task in the tenant
func (r *TaskRepository) CountByTenant(tenantID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.Task{}).
		Where("tenant_id = ?", tenantID).
		Count(&count).Error
	return count, err
}

// CountByStatus counts the tenant's tasks in the given status
func (r *TaskRepository) CountByStatus(tenantID uuid.UUID, status models.TaskStatus) (int64, error) {
	var count int64
	err := r.db.Model(&models.Task{}).
		Where("tenant_id = ? AND status = ?", tenantID, status).
		Count(&count).Error
	return count, err
}

// CountAssignedTo counts the tenant's tasks assigned to the given user
func (r *TaskRepository) CountAssignedTo(tenantID, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.Task{}).
		Where("tenant_id = ? AND assigned_to = ?", tenantID, userID).
		Count(&count).Error
	return count, err
}

// CountAssignedToWithStatus counts the tenant's tasks assigned to the
// given user that are in the given status
func (r *TaskRepository) CountAssignedToWithStatus(tenantID, userID uuid.UUID, status models.TaskStatus) (int64, error) {
	var count int64
	err := r.db.Model(&models.Task{}).
		Where("tenant_id = ? AND assigned_to = ? AND status = ?", tenantID, userID, status).
		Count(&count).Error
	return count, err
}
