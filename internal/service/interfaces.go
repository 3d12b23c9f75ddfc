package service

import (
	"taskhive-backend/internal/database/models"

	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/service_mocks.go -package=mocks

// TaskServiceInterface defines the interface for the task service
type TaskServiceInterface interface {
	Create(user *models.User, tenantID uuid.UUID, req *CreateTaskRequest) (*TaskResponse, error)
	List(user *models.User, tenantID uuid.UUID, req *ListTasksRequest) (*TaskListResponse, error)
	GetByID(user *models.User, tenantID, id uuid.UUID) (*TaskResponse, error)
	Update(user *models.User, tenantID, id uuid.UUID, req *UpdateTaskRequest) (*TaskResponse, error)
	Delete(user *models.User, tenantID, id uuid.UUID) error
}

// SubscriptionServiceInterface defines the interface for the subscription service
type SubscriptionServiceInterface interface {
	Current(tenantID uuid.UUID) (*SubscriptionResponse, error)
	Plans() ([]PlanResponse, error)
	Features(tenantID uuid.UUID) (*FeaturesResponse, error)
	Upgrade(tenantID uuid.UUID, req *ChangePlanRequest) (*SubscriptionResponse, error)
	Downgrade(tenantID uuid.UUID, req *ChangePlanRequest) (*SubscriptionResponse, error)
}

// DashboardServiceInterface defines the interface for the dashboard service
type DashboardServiceInterface interface {
	Widgets(user *models.User) ([]WidgetResponse, error)
	Stats(user *models.User, tenantID uuid.UUID) (DashboardStats, error)
}
