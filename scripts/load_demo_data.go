package main

import (
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"taskhive-backend/internal/auth"
	"taskhive-backend/internal/config"
	"taskhive-backend/internal/database"
	"taskhive-backend/internal/database/models"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Simple structures that directly match DB schema
type TenantData struct {
	Name  string     `yaml:"name"`
	Slug  string     `yaml:"slug"`
	Plan  string     `yaml:"plan,omitempty"`
	Users []UserData `yaml:"users,omitempty"`
	Tasks []TaskData `yaml:"tasks,omitempty"`
}

type UserData struct {
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
}

type TaskData struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description,omitempty"`
	Status      string `yaml:"status,omitempty"`
	AssignedTo  string `yaml:"assigned_to,omitempty"` // user email
	CreatedBy   string `yaml:"created_by"`            // user email
}

type TenantsFile struct {
	Tenants []TenantData `yaml:"tenants"`
}

func main() {
	log.Println("🚀 Loading demo data from YAML files...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database with retry (for dockerized Postgres startup)
	db, err := connectWithRetry(cfg.DatabaseURL, 60, time.Second)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// The catalogs must exist before demo tenants reference plans
	if err := database.SeedReferenceData(db); err != nil {
		log.Fatalf("Failed to seed reference data: %v", err)
	}

	// Load data from YAML files
	if err := loadDataFromYAMLFiles(db, "scripts/data"); err != nil {
		log.Fatalf("Failed to load data from YAML files: %v", err)
	}

	log.Println("✅ Demo data loaded successfully!")
}

// connectWithRetry attempts to initialize the DB with retries to wait for Postgres readiness.
func connectWithRetry(dsn string, maxAttempts int, delay time.Duration) (*gorm.DB, error) {
	// Suppress verbose GORM logging during data loading
	opts := &database.Options{
		LogLevel: logger.Silent,
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		db, err := database.Initialize(dsn, opts)
		if err == nil {
			return db, nil
		}
		// Only log every 10 attempts to reduce noise
		if attempt%10 == 0 || attempt == maxAttempts {
			log.Printf("Database not ready (%d/%d): %v", attempt, maxAttempts, err)
		}
		time.Sleep(delay)
	}
	return nil, fmt.Errorf("database not ready after %d attempts", maxAttempts)
}

func loadDataFromYAMLFiles(db *gorm.DB, dataDir string) error {
	tenants, err := loadTenants(dataDir)
	if err != nil {
		return fmt.Errorf("failed to load tenants: %w", err)
	}
	if len(tenants) == 0 {
		log.Printf("No tenant YAML files found under %s, nothing to do", dataDir)
		return nil
	}

	tenantsCreated := 0
	usersCreated := 0
	tasksCreated := 0

	for _, tenantData := range tenants {
		tenant, created, err := createTenant(db, tenantData)
		if err != nil {
			return fmt.Errorf("failed to create tenant %s: %w", tenantData.Slug, err)
		}
		if created {
			tenantsCreated++
		}

		userMap := make(map[string]*models.User)
		for _, userData := range tenantData.Users {
			user, created, err := createUser(db, tenant, userData)
			if err != nil {
				return fmt.Errorf("failed to create user %s: %w", userData.Email, err)
			}
			if created {
				usersCreated++
			}
			userMap[userData.Email] = user
		}

		for _, taskData := range tenantData.Tasks {
			created, err := createTask(db, tenant, taskData, userMap)
			if err != nil {
				return fmt.Errorf("failed to create task %q: %w", taskData.Title, err)
			}
			if created {
				tasksCreated++
			}
		}

		if err := ensureSubscription(db, tenant, tenantData.Plan); err != nil {
			return fmt.Errorf("failed to create subscription for %s: %w", tenantData.Slug, err)
		}
	}

	log.Printf("Created %d tenants, %d users, %d tasks", tenantsCreated, usersCreated, tasksCreated)
	return nil
}

func loadTenants(dataDir string) ([]TenantData, error) {
	var tenants []TenantData
	err := filepath.WalkDir(dataDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || (!strings.HasSuffix(path, ".yaml") && !strings.HasSuffix(path, ".yml")) {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		var file TenantsFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		tenants = append(tenants, file.Tenants...)
		return nil
	})
	if os.IsNotExist(err) {
		return nil, nil
	}
	return tenants, err
}

func createTenant(db *gorm.DB, tenantData TenantData) (*models.Tenant, bool, error) {
	var existing models.Tenant
	err := db.Where("slug = ?", tenantData.Slug).First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, false, err
	}

	tenant := models.Tenant{
		Name: tenantData.Name,
		Slug: tenantData.Slug,
	}
	if err := db.Create(&tenant).Error; err != nil {
		return nil, false, err
	}
	return &tenant, true, nil
}

func createUser(db *gorm.DB, tenant *models.Tenant, userData UserData) (*models.User, bool, error) {
	var existing models.User
	err := db.Where("email = ?", userData.Email).First(&existing).Error
	if err == nil {
		// User exists, make sure the membership does too
		if err := db.Model(tenant).Association("Users").Append(&existing); err != nil {
			return nil, false, err
		}
		return &existing, false, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, false, err
	}

	password := userData.Password
	if password == "" {
		password = "password123"
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, false, err
	}

	role := models.UserRole(userData.Role)
	if !role.IsValid() {
		role = models.RoleAgent
	}

	user := models.User{
		Name:         userData.Name,
		Email:        userData.Email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, false, err
	}
	if err := db.Model(tenant).Association("Users").Append(&user); err != nil {
		return nil, false, err
	}
	return &user, true, nil
}

func createTask(db *gorm.DB, tenant *models.Tenant, taskData TaskData, userMap map[string]*models.User) (bool, error) {
	var count int64
	if err := db.Model(&models.Task{}).
		Where("tenant_id = ? AND title = ?", tenant.ID, taskData.Title).
		Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	creator, ok := userMap[taskData.CreatedBy]
	if !ok {
		return false, fmt.Errorf("unknown creator email %q", taskData.CreatedBy)
	}

	status := models.TaskStatus(taskData.Status)
	if !status.IsValid() {
		status = models.TaskStatusPending
	}

	task := models.Task{
		TenantID:    tenant.ID,
		Title:       taskData.Title,
		Description: taskData.Description,
		Status:      status,
		CreatedBy:   creator.ID,
	}
	if taskData.AssignedTo != "" {
		assignee, ok := userMap[taskData.AssignedTo]
		if !ok {
			return false, fmt.Errorf("unknown assignee email %q", taskData.AssignedTo)
		}
		task.AssignedTo = &assignee.ID
	}

	if err := db.Create(&task).Error; err != nil {
		return false, err
	}
	return true, nil
}

func ensureSubscription(db *gorm.DB, tenant *models.Tenant, plan string) error {
	var existing models.Subscription
	err := db.
		Where("tenant_id = ? AND status = ?", tenant.ID, models.SubscriptionStatusActive).
		First(&existing).Error
	if err == nil {
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	p := models.SubscriptionPlan(plan)
	if !p.IsValid() {
		p = models.PlanBasic
	}

	sub := models.Subscription{
		TenantID:  tenant.ID,
		Plan:      p,
		Status:    models.SubscriptionStatusActive,
		StartedAt: time.Now(),
	}
	return db.Create(&sub).Error
}
