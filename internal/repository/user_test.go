package repository_test

import (
	"testing"

	"taskhive-backend/internal/repository"
	"taskhive-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// UserRepositoryTestSuite tests the UserRepository
type UserRepositoryTestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	repo          *repository.UserRepository
	tenantRepo    *repository.TenantRepository
	factories     *testutils.FactorySet
}

// SetupSuite runs before all tests in the suite
func (suite *UserRepositoryTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())

	suite.repo = repository.NewUserRepository(suite.baseTestSuite.DB)
	suite.tenantRepo = repository.NewTenantRepository(suite.baseTestSuite.DB)
	suite.factories = testutils.NewFactorySet()
}

// TearDownSuite runs after all tests in the suite
func (suite *UserRepositoryTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

// SetupTest runs before each test
func (suite *UserRepositoryTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()
}

// TearDownTest runs after each test
func (suite *UserRepositoryTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

// TestCreate tests creating a new user
func (suite *UserRepositoryTestSuite) TestCreate() {
	user := suite.factories.User.Create()

	err := suite.repo.Create(user)

	suite.NoError(err)
	suite.NotEqual(uuid.Nil, user.ID)
	suite.NotZero(user.CreatedAt)
}

// TestCreateDuplicateEmail tests that user emails are unique
func (suite *UserRepositoryTestSuite) TestCreateDuplicateEmail() {
	user1 := suite.factories.User.WithEmail("dup@test.com")
	err := suite.repo.Create(user1)
	suite.NoError(err)

	user2 := suite.factories.User.WithEmail("dup@test.com")
	err = suite.repo.Create(user2)

	suite.Error(err)
	suite.Contains(err.Error(), "duplicate key value")
}

// TestGetByEmail tests retrieving a user by email
func (suite *UserRepositoryTestSuite) TestGetByEmail() {
	user := suite.factories.User.WithEmail("lookup@test.com")
	err := suite.repo.Create(user)
	suite.NoError(err)

	retrieved, err := suite.repo.GetByEmail("lookup@test.com")

	suite.NoError(err)
	suite.NotNil(retrieved)
	suite.Equal(user.ID, retrieved.ID)
}

// TestGetByEmailNotFound tests retrieving a non-existent email
func (suite *UserRepositoryTestSuite) TestGetByEmailNotFound() {
	user, err := suite.repo.GetByEmail("missing@test.com")

	suite.Error(err)
	suite.Equal(gorm.ErrRecordNotFound, err)
	suite.Nil(user)
}

// TestGetMemberByEmail tests the membership-scoped email lookup
func (suite *UserRepositoryTestSuite) TestGetMemberByEmail() {
	tenant := suite.factories.Tenant.Create()
	err := suite.tenantRepo.Create(tenant)
	suite.NoError(err)

	user := suite.factories.User.WithEmail("member@test.com")
	err = suite.repo.Create(user)
	suite.NoError(err)

	err = suite.tenantRepo.AddUser(tenant, user)
	suite.NoError(err)

	retrieved, err := suite.repo.GetMemberByEmail(tenant.ID, "member@test.com")

	suite.NoError(err)
	suite.Equal(user.ID, retrieved.ID)
}

// TestGetMemberByEmailNotAMember tests that membership is required even
// when the email exists
func (suite *UserRepositoryTestSuite) TestGetMemberByEmailNotAMember() {
	tenant := suite.factories.Tenant.Create()
	err := suite.tenantRepo.Create(tenant)
	suite.NoError(err)

	// User exists but belongs to no tenant
	user := suite.factories.User.WithEmail("outsider@test.com")
	err = suite.repo.Create(user)
	suite.NoError(err)

	retrieved, err := suite.repo.GetMemberByEmail(tenant.ID, "outsider@test.com")

	suite.Error(err)
	suite.Equal(gorm.ErrRecordNotFound, err)
	suite.Nil(retrieved)
}

// TestGetMemberByEmailWrongTenant tests that membership in one tenant
// does not grant lookup in another
func (suite *UserRepositoryTestSuite) TestGetMemberByEmailWrongTenant() {
	tenantA := suite.factories.Tenant.Create()
	err := suite.tenantRepo.Create(tenantA)
	suite.NoError(err)

	tenantB := suite.factories.Tenant.Create()
	err = suite.tenantRepo.Create(tenantB)
	suite.NoError(err)

	user := suite.factories.User.WithEmail("a-only@test.com")
	err = suite.repo.Create(user)
	suite.NoError(err)

	err = suite.tenantRepo.AddUser(tenantA, user)
	suite.NoError(err)

	_, err = suite.repo.GetMemberByEmail(tenantB.ID, "a-only@test.com")

	suite.Equal(gorm.ErrRecordNotFound, err)
}

// TestGetWithTenants tests loading a user with their memberships
func (suite *UserRepositoryTestSuite) TestGetWithTenants() {
	tenant1 := suite.factories.Tenant.Create()
	err := suite.tenantRepo.Create(tenant1)
	suite.NoError(err)

	tenant2 := suite.factories.Tenant.Create()
	err = suite.tenantRepo.Create(tenant2)
	suite.NoError(err)

	user := suite.factories.User.Create()
	err = suite.repo.Create(user)
	suite.NoError(err)

	err = suite.tenantRepo.AddUser(tenant1, user)
	suite.NoError(err)
	err = suite.tenantRepo.AddUser(tenant2, user)
	suite.NoError(err)

	retrieved, err := suite.repo.GetWithTenants(user.ID)

	suite.NoError(err)
	suite.Len(retrieved.Tenants, 2)
}

// Run the test suite
func TestUserRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(UserRepositoryTestSuite))
}
