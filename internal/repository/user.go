package repository

import (
	"taskhive-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepository handles database operations for users
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "email = ?", email).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetMemberByEmail retrieves a user by email only if they are a member
// of the given tenant. Login uses this so that a valid password with
// the wrong tenant still reads as bad credentials.
func (r *UserRepository) GetMemberByEmail(tenantID uuid.UUID, email string) (*models.User, error) {
	var user models.User
	err := r.db.
		Joins("JOIN tenant_users ON tenant_users.user_id = users.id").
		Where("users.email = ? AND tenant_users.tenant_id = ?", email, tenantID).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetWithTenants retrieves a user with their tenant memberships
func (r *UserRepository) GetWithTenants(id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.Preload("Tenants").First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}
