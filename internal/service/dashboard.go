package service

import (
	"fmt"

	"taskhive-backend/internal/database/models"
	"taskhive-backend/internal/repository"

	"github.com/google/uuid"
)

// DashboardService composes role-specific widget lists and task
// statistics for the active tenant.
type DashboardService struct {
	taskRepo   repository.TaskRepositoryInterface
	widgetRepo repository.DashboardWidgetRepositoryInterface
}

// Ensure DashboardService implements DashboardServiceInterface
var _ DashboardServiceInterface = (*DashboardService)(nil)

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	taskRepo repository.TaskRepositoryInterface,
	widgetRepo repository.DashboardWidgetRepositoryInterface,
) *DashboardService {
	return &DashboardService{
		taskRepo:   taskRepo,
		widgetRepo: widgetRepo,
	}
}

// WidgetResponse represents one dashboard widget
type WidgetResponse struct {
	ID          uuid.UUID       `json:"id"`
	Role        models.UserRole `json:"role"`
	WidgetKey   string          `json:"widget_key"`
	WidgetName  string          `json:"widget_name"`
	Description string          `json:"description,omitempty"`
	Order       int             `json:"order"`
}

// DashboardStats maps stat keys to counts. The key set varies by role.
type DashboardStats map[string]int64

// Widgets returns the active widgets for the user's role, in display order
func (s *DashboardService) Widgets(user *models.User) ([]WidgetResponse, error) {
	widgets, err := s.widgetRepo.GetActiveByRole(user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to get widgets: %w", err)
	}

	responses := make([]WidgetResponse, len(widgets))
	for i, w := range widgets {
		responses[i] = WidgetResponse{
			ID:          w.ID,
			Role:        w.Role,
			WidgetKey:   w.WidgetKey,
			WidgetName:  w.WidgetName,
			Description: w.Description,
			Order:       w.Order,
		}
	}
	return responses, nil
}

// Stats returns tenant-wide task counts plus role-specific ones.
// Team structure is undefined, so the team lead's team_tasks counts
// only tasks assigned to the team lead themselves.
func (s *DashboardService) Stats(user *models.User, tenantID uuid.UUID) (DashboardStats, error) {
	stats := DashboardStats{}

	total, err := s.taskRepo.CountByTenant(tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}
	stats["total_tasks"] = total

	pending, err := s.taskRepo.CountByStatus(tenantID, models.TaskStatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to count pending tasks: %w", err)
	}
	stats["pending_tasks"] = pending

	completed, err := s.taskRepo.CountByStatus(tenantID, models.TaskStatusCompleted)
	if err != nil {
		return nil, fmt.Errorf("failed to count completed tasks: %w", err)
	}
	stats["completed_tasks"] = completed

	switch {
	case user.IsManager():
		inProgress, err := s.taskRepo.CountByStatus(tenantID, models.TaskStatusInProgress)
		if err != nil {
			return nil, fmt.Errorf("failed to count in-progress tasks: %w", err)
		}
		stats["in_progress_tasks"] = inProgress

		cancelled, err := s.taskRepo.CountByStatus(tenantID, models.TaskStatusCancelled)
		if err != nil {
			return nil, fmt.Errorf("failed to count cancelled tasks: %w", err)
		}
		stats["cancelled_tasks"] = cancelled

	case user.IsTeamLead():
		teamTasks, err := s.taskRepo.CountAssignedTo(tenantID, user.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count team tasks: %w", err)
		}
		stats["team_tasks"] = teamTasks

	case user.IsAgent():
		myTasks, err := s.taskRepo.CountAssignedTo(tenantID, user.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count assigned tasks: %w", err)
		}
		stats["my_tasks"] = myTasks

		myPending, err := s.taskRepo.CountAssignedToWithStatus(tenantID, user.ID, models.TaskStatusPending)
		if err != nil {
			return nil, fmt.Errorf("failed to count pending assigned tasks: %w", err)
		}
		stats["my_pending_tasks"] = myPending
	}

	return stats, nil
}
