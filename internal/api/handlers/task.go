package handlers

import (
	"errors"
	"net/http"

	"taskhive-backend/internal/auth"
	apperrors "taskhive-backend/internal/errors"
	"taskhive-backend/internal/service"
	"taskhive-backend/internal/tenancy"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// TaskHandler handles HTTP requests for task operations
type TaskHandler struct {
	taskService service.TaskServiceInterface
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService service.TaskServiceInterface) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks handles GET /api/tasks
// @Summary List tasks
// @Description List the tenant's tasks the current user may see, with optional status and search filters
// @Tags tasks
// @Accept json
// @Produce json
// @Param status query string false "Filter by status" Enums(pending, in_progress, completed, cancelled)
// @Param search query string false "Substring match on title or description"
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Number of items per page" default(15)
// @Success 200 {object} service.TaskListResponse "Successfully retrieved tasks"
// @Failure 401 {object} map[string]interface{} "Unauthenticated"
// @Failure 422 {object} map[string]interface{} "Validation failed"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /tasks [get]
func (h *TaskHandler) ListTasks(c *gin.Context) {
	user := auth.CurrentUser(c)
	tenant := tenancy.CurrentTenant(c)
	if user == nil || tenant == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated."})
		return
	}

	var req service.ListTasksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters", "details": err.Error()})
		return
	}

	resp, err := h.taskService.List(user, tenant.ID, &req)
	if err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Validation failed", "errors": vErrs.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list tasks", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// CreateTask handles POST /api/tasks
// @Summary Create a task
// @Description Create a task in the current tenant, stamped with the current user as creator
// @Tags tasks
// @Accept json
// @Produce json
// @Param task body service.CreateTaskRequest true "Task data"
// @Success 201 {object} map[string]interface{} "Successfully created task"
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Failure 401 {object} map[string]interface{} "Unauthenticated"
// @Failure 422 {object} map[string]interface{} "Validation failed"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /tasks [post]
func (h *TaskHandler) CreateTask(c *gin.Context) {
	user := auth.CurrentUser(c)
	tenant := tenancy.CurrentTenant(c)
	if user == nil || tenant == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated."})
		return
	}

	var req service.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	task, err := h.taskService.Create(user, tenant.ID, &req)
	if err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Validation failed", "errors": vErrs.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Task created successfully",
		"task":    task,
	})
}

// GetTask handles GET /api/tasks/:id
// @Summary Get a task
// @Description Get a single task by its UUID if the current user may view it
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID (UUID)"
// @Success 200 {object} map[string]interface{} "Successfully retrieved task"
// @Failure 400 {object} map[string]interface{} "Invalid task ID"
// @Failure 401 {object} map[string]interface{} "Unauthenticated"
// @Failure 403 {object} map[string]interface{} "Forbidden"
// @Failure 404 {object} map[string]interface{} "Task not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /tasks/{id} [get]
func (h *TaskHandler) GetTask(c *gin.Context) {
	user := auth.CurrentUser(c)
	tenant := tenancy.CurrentTenant(c)
	if user == nil || tenant == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated."})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID: invalid UUID format"})
		return
	}

	task, err := h.taskService.GetByID(user, tenant.ID, id)
	if err != nil {
		h.respondError(c, err, "Failed to get task")
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": task})
}

// UpdateTask handles PUT /api/tasks/:id
// @Summary Update a task
// @Description Apply partial changes to a task if the current user may edit it
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID (UUID)"
// @Param task body service.UpdateTaskRequest true "Fields to update"
// @Success 200 {object} map[string]interface{} "Successfully updated task"
// @Failure 400 {object} map[string]interface{} "Invalid task ID or request body"
// @Failure 401 {object} map[string]interface{} "Unauthenticated"
// @Failure 403 {object} map[string]interface{} "Forbidden"
// @Failure 404 {object} map[string]interface{} "Task not found"
// @Failure 422 {object} map[string]interface{} "Validation failed"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /tasks/{id} [put]
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	user := auth.CurrentUser(c)
	tenant := tenancy.CurrentTenant(c)
	if user == nil || tenant == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated."})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID: invalid UUID format"})
		return
	}

	var req service.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	task, err := h.taskService.Update(user, tenant.ID, id, &req)
	if err != nil {
		h.respondError(c, err, "Failed to update task")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task updated successfully",
		"task":    task,
	})
}

// DeleteTask handles DELETE /api/tasks/:id
// @Summary Delete a task
// @Description Delete a task if the current user is a manager or its creator
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID (UUID)"
// @Success 200 {object} map[string]interface{} "Successfully deleted task"
// @Failure 400 {object} map[string]interface{} "Invalid task ID"
// @Failure 401 {object} map[string]interface{} "Unauthenticated"
// @Failure 403 {object} map[string]interface{} "Forbidden"
// @Failure 404 {object} map[string]interface{} "Task not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	user := auth.CurrentUser(c)
	tenant := tenancy.CurrentTenant(c)
	if user == nil || tenant == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated."})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID: invalid UUID format"})
		return
	}

	if err := h.taskService.Delete(user, tenant.ID, id); err != nil {
		h.respondError(c, err, "Failed to delete task")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

func (h *TaskHandler) respondError(c *gin.Context, err error, fallback string) {
	var vErrs validator.ValidationErrors
	switch {
	case errors.As(err, &vErrs):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Validation failed", "errors": vErrs.Error()})
	case errors.Is(err, apperrors.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case apperrors.IsAuthorization(err):
		c.JSON(http.StatusForbidden, gin.H{"message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback, "details": err.Error()})
	}
}
