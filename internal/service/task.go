package service

import (
	"errors"
	"fmt"
	"time"

	"taskhive-backend/internal/authz"
	"taskhive-backend/internal/database/models"
	apperrors "taskhive-backend/internal/errors"
	"taskhive-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskService provides tenant-scoped task business logic. Every
// mutation passes the authorization policy before it touches the
// store; a denial never leaves a partial write behind.
type TaskService struct {
	taskRepo  repository.TaskRepositoryInterface
	validator *validator.Validate
}

// Ensure TaskService implements TaskServiceInterface
var _ TaskServiceInterface = (*TaskService)(nil)

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepositoryInterface, validator *validator.Validate) *TaskService {
	return &TaskService{
		taskRepo:  taskRepo,
		validator: validator,
	}
}

// CreateTaskRequest represents the request to create a task
type CreateTaskRequest struct {
	Title       string             `json:"title" validate:"required,max=255"`
	Description string             `json:"description"`
	Status      models.TaskStatus  `json:"status" validate:"omitempty,oneof=pending in_progress completed cancelled"`
	AssignedTo  *uuid.UUID         `json:"assigned_to"`
}

// UpdateTaskRequest represents the request to update a task. Nil
// fields are left unchanged.
type UpdateTaskRequest struct {
	Title       *string            `json:"title" validate:"omitempty,max=255"`
	Description *string            `json:"description"`
	Status      *models.TaskStatus `json:"status" validate:"omitempty,oneof=pending in_progress completed cancelled"`
	AssignedTo  *uuid.UUID         `json:"assigned_to"`
}

// ListTasksRequest carries the listing filters and pagination
type ListTasksRequest struct {
	Status  string `form:"status" validate:"omitempty,oneof=pending in_progress completed cancelled"`
	Search  string `form:"search"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}

// UserSummary represents a user reference in task responses
type UserSummary struct {
	ID    uuid.UUID       `json:"id"`
	Name  string          `json:"name"`
	Email string          `json:"email"`
	Role  models.UserRole `json:"role"`
}

// TaskResponse represents a single task in API responses
type TaskResponse struct {
	ID           uuid.UUID         `json:"id"`
	TenantID     uuid.UUID         `json:"tenant_id"`
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	Status       models.TaskStatus `json:"status"`
	AssignedTo   *uuid.UUID        `json:"assigned_to"`
	CreatedBy    uuid.UUID         `json:"created_by"`
	AssignedUser *UserSummary      `json:"assigned_user,omitempty"`
	Creator      *UserSummary      `json:"creator,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// TaskListResponse represents a paginated list of tasks
type TaskListResponse struct {
	Tasks   []TaskResponse `json:"tasks"`
	Total   int64          `json:"total"`
	Page    int            `json:"page"`
	PerPage int            `json:"per_page"`
}

// Create creates a task in the tenant, stamped with the creating user
func (s *TaskService) Create(user *models.User, tenantID uuid.UUID, req *CreateTaskRequest) (*TaskResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	status := req.Status
	if status == "" {
		status = models.TaskStatusPending
	}

	task := &models.Task{
		TenantID:    tenantID,
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		AssignedTo:  req.AssignedTo,
		CreatedBy:   user.ID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	created, err := s.taskRepo.GetByID(task.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load created task: %w", err)
	}

	resp := s.toResponse(created)
	return &resp, nil
}

// List returns the tasks the user is allowed to see in the tenant
func (s *TaskService) List(user *models.User, tenantID uuid.UUID, req *ListTasksRequest) (*TaskListResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	filters := repository.TaskFilters{
		Search:  req.Search,
		Page:    req.Page,
		PerPage: req.PerPage,
	}
	if req.Status != "" {
		status := models.TaskStatus(req.Status)
		filters.Status = &status
	}
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.PerPage < 1 {
		filters.PerPage = 15
	}

	tasks, total, err := s.taskRepo.List(tenantID, authz.VisibleScope(user), filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	responses := make([]TaskResponse, len(tasks))
	for i, task := range tasks {
		responses[i] = s.toResponse(&task)
	}

	return &TaskListResponse{
		Tasks:   responses,
		Total:   total,
		Page:    filters.Page,
		PerPage: filters.PerPage,
	}, nil
}

// GetByID returns a single task if the user may view it
func (s *TaskService) GetByID(user *models.User, tenantID, id uuid.UUID) (*TaskResponse, error) {
	task, err := s.fetch(tenantID, id)
	if err != nil {
		return nil, err
	}

	if !authz.CanView(user, task) {
		return nil, apperrors.ErrCannotViewTask
	}

	resp := s.toResponse(task)
	return &resp, nil
}

// Update applies partial changes to a task if the user may edit it
func (s *TaskService) Update(user *models.User, tenantID, id uuid.UUID, req *UpdateTaskRequest) (*TaskResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	task, err := s.fetch(tenantID, id)
	if err != nil {
		return nil, err
	}

	if !authz.CanEdit(user, task) {
		return nil, apperrors.ErrCannotEditTask
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Status != nil {
		task.Status = *req.Status
	}
	if req.AssignedTo != nil {
		task.AssignedTo = req.AssignedTo
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	updated, err := s.taskRepo.GetByID(task.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load updated task: %w", err)
	}

	resp := s.toResponse(updated)
	return &resp, nil
}

// Delete removes a task if the user may delete it
func (s *TaskService) Delete(user *models.User, tenantID, id uuid.UUID) error {
	task, err := s.fetch(tenantID, id)
	if err != nil {
		return err
	}

	if !authz.CanDelete(user, task) {
		return apperrors.ErrCannotDeleteTask
	}

	if err := s.taskRepo.Delete(task.ID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// fetch loads a task and hides it behind not-found when it belongs to
// another tenant.
func (s *TaskService) fetch(tenantID, id uuid.UUID) (*models.Task, error) {
	task, err := s.taskRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	if task.TenantID != tenantID {
		return nil, apperrors.ErrTaskNotFound
	}
	return task, nil
}

// toResponse converts a Task model to API response
func (s *TaskService) toResponse(task *models.Task) TaskResponse {
	resp := TaskResponse{
		ID:          task.ID,
		TenantID:    task.TenantID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		AssignedTo:  task.AssignedTo,
		CreatedBy:   task.CreatedBy,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
	if task.AssignedUser != nil {
		resp.AssignedUser = &UserSummary{
			ID:    task.AssignedUser.ID,
			Name:  task.AssignedUser.Name,
			Email: task.AssignedUser.Email,
			Role:  task.AssignedUser.Role,
		}
	}
	if task.Creator != nil {
		resp.Creator = &UserSummary{
			ID:    task.Creator.ID,
			Name:  task.Creator.Name,
			Email: task.Creator.Email,
			Role:  task.Creator.Role,
		}
	}
	return resp
}
