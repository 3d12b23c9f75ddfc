package repository_test

import (
	"testing"
	"time"

	"taskhive-backend/internal/database/models"
	"taskhive-backend/internal/repository"
	"taskhive-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// TenantRepositoryTestSuite tests the TenantRepository
type TenantRepositoryTestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	repo          *repository.TenantRepository
	factories     *testutils.FactorySet
}

// SetupSuite runs before all tests in the suite
func (suite *TenantRepositoryTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())

	suite.repo = repository.NewTenantRepository(suite.baseTestSuite.DB)
	suite.factories = testutils.NewFactorySet()
}

// TearDownSuite runs after all tests in the suite
func (suite *TenantRepositoryTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

// SetupTest runs before each test
func (suite *TenantRepositoryTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()
}

// TearDownTest runs after each test
func (suite *TenantRepositoryTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

// TestCreate tests creating a new tenant
func (suite *TenantRepositoryTestSuite) TestCreate() {
	tenant := suite.factories.Tenant.Create()

	err := suite.repo.Create(tenant)

	suite.NoError(err)
	suite.NotEqual(uuid.Nil, tenant.ID)
	suite.NotZero(tenant.CreatedAt)
}

// TestCreateDuplicateSlug tests that tenant slugs are unique
func (suite *TenantRepositoryTestSuite) TestCreateDuplicateSlug() {
	tenant1 := suite.factories.Tenant.WithSlug("acme")
	err := suite.repo.Create(tenant1)
	suite.NoError(err)

	tenant2 := suite.factories.Tenant.WithSlug("acme")
	err = suite.repo.Create(tenant2)

	suite.Error(err)
	suite.Contains(err.Error(), "duplicate key value")
}

// TestGetByID tests retrieving a tenant by ID
func (suite *TenantRepositoryTestSuite) TestGetByID() {
	tenant := suite.factories.Tenant.Create()
	err := suite.repo.Create(tenant)
	suite.NoError(err)

	retrieved, err := suite.repo.GetByID(tenant.ID)

	suite.NoError(err)
	suite.NotNil(retrieved)
	suite.Equal(tenant.ID, retrieved.ID)
	suite.Equal(tenant.Slug, retrieved.Slug)
}

// TestGetByIDNotFound tests retrieving a non-existent tenant
func (suite *TenantRepositoryTestSuite) TestGetByIDNotFound() {
	tenant, err := suite.repo.GetByID(uuid.New())

	suite.Error(err)
	suite.Equal(gorm.ErrRecordNotFound, err)
	suite.Nil(tenant)
}

// TestGetBySlug tests retrieving a tenant by slug
func (suite *TenantRepositoryTestSuite) TestGetBySlug() {
	tenant := suite.factories.Tenant.WithSlug("acme-corp")
	err := suite.repo.Create(tenant)
	suite.NoError(err)

	retrieved, err := suite.repo.GetBySlug("acme-corp")

	suite.NoError(err)
	suite.NotNil(retrieved)
	suite.Equal(tenant.ID, retrieved.ID)
}

// TestGetBySlugNotFound tests retrieving a non-existent slug
func (suite *TenantRepositoryTestSuite) TestGetBySlugNotFound() {
	tenant, err := suite.repo.GetBySlug("no-such-tenant")

	suite.Error(err)
	suite.Equal(gorm.ErrRecordNotFound, err)
	suite.Nil(tenant)
}

// TestCreateWithOwner tests the registration transaction
func (suite *TenantRepositoryTestSuite) TestCreateWithOwner() {
	tenant := suite.factories.Tenant.Create()
	owner := suite.factories.User.WithRole(models.RoleManager)
	sub := &models.Subscription{
		Plan:      models.PlanBasic,
		Status:    models.SubscriptionStatusActive,
		StartedAt: time.Now(),
	}

	err := suite.repo.CreateWithOwner(tenant, owner, sub)
	suite.NoError(err)

	// Tenant, owner and membership all landed
	withUsers, err := suite.repo.GetWithUsers(tenant.ID)
	suite.NoError(err)
	suite.Len(withUsers.Users, 1)
	suite.Equal(owner.ID, withUsers.Users[0].ID)

	// Subscription landed and is bound to the tenant
	subRepo := repository.NewSubscriptionRepository(suite.baseTestSuite.DB)
	active, err := subRepo.GetActiveByTenant(tenant.ID)
	suite.NoError(err)
	suite.Equal(models.PlanBasic, active.Plan)
	suite.Equal(tenant.ID, active.TenantID)
}

// TestCreateWithOwnerRollsBack tests that nothing lands when a step fails
func (suite *TenantRepositoryTestSuite) TestCreateWithOwnerRollsBack() {
	// Seed a user whose email will collide with the new owner
	existing := suite.factories.User.WithEmail("owner@acme.test")
	userRepo := repository.NewUserRepository(suite.baseTestSuite.DB)
	err := userRepo.Create(existing)
	suite.NoError(err)

	tenant := suite.factories.Tenant.WithSlug("acme-rollback")
	owner := suite.factories.User.WithEmail("owner@acme.test")

	err = suite.repo.CreateWithOwner(tenant, owner, nil)
	suite.Error(err)

	// The tenant created inside the failed transaction must not exist
	_, err = suite.repo.GetBySlug("acme-rollback")
	suite.Equal(gorm.ErrRecordNotFound, err)
}

// TestAddUser tests linking an additional user to a tenant
func (suite *TenantRepositoryTestSuite) TestAddUser() {
	tenant := suite.factories.Tenant.Create()
	err := suite.repo.Create(tenant)
	suite.NoError(err)

	userRepo := repository.NewUserRepository(suite.baseTestSuite.DB)
	user := suite.factories.User.Create()
	err = userRepo.Create(user)
	suite.NoError(err)

	err = suite.repo.AddUser(tenant, user)
	suite.NoError(err)

	withUsers, err := suite.repo.GetWithUsers(tenant.ID)
	suite.NoError(err)
	suite.Len(withUsers.Users, 1)
	suite.Equal(user.ID, withUsers.Users[0].ID)
}

// Run the test suite
func TestTenantRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(TenantRepositoryTestSuite))
}
