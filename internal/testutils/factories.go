package testutils

import (
	"time"

	"taskhive-backend/internal/auth"
	"taskhive-backend/internal/database/models"

	"github.com/google/uuid"
)

// TenantFactory provides methods to create test Tenant data
type TenantFactory struct{}

// NewTenantFactory creates a new TenantFactory
func NewTenantFactory() *TenantFactory {
	return &TenantFactory{}
}

// Create creates a test Tenant with default values
func (f *TenantFactory) Create() *models.Tenant {
	id := uuid.New()
	return &models.Tenant{
		BaseModel: models.BaseModel{
			ID:        id,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Name: "Test Tenant",
		// Slug must be unique across tenants; derive from the UUID
		Slug: "test-tenant-" + id.String()[:8],
	}
}

// WithName sets a custom name for the tenant
func (f *TenantFactory) WithName(name string) *models.Tenant {
	tenant := f.Create()
	tenant.Name = name
	return tenant
}

// WithSlug sets a custom slug for the tenant
func (f *TenantFactory) WithSlug(slug string) *models.Tenant {
	tenant := f.Create()
	tenant.Slug = slug
	return tenant
}

// UserFactory provides methods to create test User data
type UserFactory struct{}

// NewUserFactory creates a new UserFactory
func NewUserFactory() *UserFactory {
	return &UserFactory{}
}

// Create creates a test User with default values. The password is
// always "password123".
func (f *UserFactory) Create() *models.User {
	id := uuid.New()
	hash, err := auth.HashPassword("password123")
	if err != nil {
		panic(err)
	}
	return &models.User{
		BaseModel: models.BaseModel{
			ID:        id,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Name: "Jane Doe",
		// Email must be unique across users; derive from the UUID
		Email:        "jane." + id.String()[:8] + "@test.com",
		PasswordHash: hash,
		Role:         models.RoleAgent,
	}
}

// WithEmail sets a custom email for the user
func (f *UserFactory) WithEmail(email string) *models.User {
	user := f.Create()
	user.Email = email
	return user
}

// WithRole sets a custom role for the user
func (f *UserFactory) WithRole(role models.UserRole) *models.User {
	user := f.Create()
	user.Role = role
	return user
}

// WithPassword sets a custom password for the user
func (f *UserFactory) WithPassword(password string) *models.User {
	user := f.Create()
	hash, err := auth.HashPassword(password)
	if err != nil {
		panic(err)
	}
	user.PasswordHash = hash
	return user
}

// TaskFactory provides methods to create test Task data
type TaskFactory struct{}

// NewTaskFactory creates a new TaskFactory
func NewTaskFactory() *TaskFactory {
	return &TaskFactory{}
}

// Create creates a test Task with default values
func (f *TaskFactory) Create() *models.Task {
	return &models.Task{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		TenantID:    uuid.New(),
		Title:       "Test Task",
		Description: "A test task for testing purposes",
		Status:      models.TaskStatusPending,
		AssignedTo:  nil,
		CreatedBy:   uuid.New(),
	}
}

// WithTenant sets the tenant ID for the task
func (f *TaskFactory) WithTenant(tenantID uuid.UUID) *models.Task {
	task := f.Create()
	task.TenantID = tenantID
	return task
}

// WithTitle sets a custom title for the task
func (f *TaskFactory) WithTitle(title string) *models.Task {
	task := f.Create()
	task.Title = title
	return task
}

// WithStatus sets a custom status for the task
func (f *TaskFactory) WithStatus(status models.TaskStatus) *models.Task {
	task := f.Create()
	task.Status = status
	return task
}

// WithAssignee sets the assigned user for the task
func (f *TaskFactory) WithAssignee(userID uuid.UUID) *models.Task {
	task := f.Create()
	task.AssignedTo = &userID
	return task
}

// WithCreator sets the creating user for the task
func (f *TaskFactory) WithCreator(userID uuid.UUID) *models.Task {
	task := f.Create()
	task.CreatedBy = userID
	return task
}

// SubscriptionFactory provides methods to create test Subscription data
type SubscriptionFactory struct{}

// NewSubscriptionFactory creates a new SubscriptionFactory
func NewSubscriptionFactory() *SubscriptionFactory {
	return &SubscriptionFactory{}
}

// Create creates a test Subscription with default values
func (f *SubscriptionFactory) Create() *models.Subscription {
	return &models.Subscription{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		TenantID:  uuid.New(),
		Plan:      models.PlanBasic,
		Status:    models.SubscriptionStatusActive,
		StartedAt: time.Now(),
		ExpiresAt: nil,
	}
}

// WithTenant sets the tenant ID for the subscription
func (f *SubscriptionFactory) WithTenant(tenantID uuid.UUID) *models.Subscription {
	sub := f.Create()
	sub.TenantID = tenantID
	return sub
}

// WithPlan sets a custom plan for the subscription
func (f *SubscriptionFactory) WithPlan(plan models.SubscriptionPlan) *models.Subscription {
	sub := f.Create()
	sub.Plan = plan
	return sub
}

// WithStatus sets a custom status for the subscription
func (f *SubscriptionFactory) WithStatus(status models.SubscriptionStatus) *models.Subscription {
	sub := f.Create()
	sub.Status = status
	return sub
}

// FactorySet provides access to all factories
type FactorySet struct {
	Tenant       *TenantFactory
	User         *UserFactory
	Task         *TaskFactory
	Subscription *SubscriptionFactory
}

// NewFactorySet creates a new FactorySet with all factories initialized
func NewFactorySet() *FactorySet {
	return &FactorySet{
		Tenant:       NewTenantFactory(),
		User:         NewUserFactory(),
		Task:         NewTaskFactory(),
		Subscription: NewSubscriptionFactory(),
	}
}

// CreateFullTenantHierarchy creates a tenant with a manager, an agent,
// a task assigned to the agent, and an active basic subscription.
func (fs *FactorySet) CreateFullTenantHierarchy() (*models.Tenant, *models.User, *models.User, *models.Task, *models.Subscription) {
	tenant := fs.Tenant.Create()

	manager := fs.User.WithRole(models.RoleManager)
	agent := fs.User.WithRole(models.RoleAgent)

	task := fs.Task.WithTenant(tenant.ID)
	task.CreatedBy = manager.ID
	task.AssignedTo = &agent.ID

	sub := fs.Subscription.WithTenant(tenant.ID)

	return tenant, manager, agent, task, sub
}
