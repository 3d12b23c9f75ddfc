package auth_test

import (
	"testing"
	"time"

	"taskhive-backend/internal/auth"
	"taskhive-backend/internal/database/models"
	apperrors "taskhive-backend/internal/errors"
	"taskhive-backend/internal/mocks"
	"taskhive-backend/internal/tenancy"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type AuthServiceTestSuite struct {
	suite.Suite
	ctrl           *gomock.Controller
	mockTenantRepo *mocks.MockTenantRepositoryInterface
	mockUserRepo   *mocks.MockUserRepositoryInterface
	authService    *auth.Service
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockTenantRepo = mocks.NewMockTenantRepositoryInterface(suite.ctrl)
	suite.mockUserRepo = mocks.NewMockUserRepositoryInterface(suite.ctrl)
	resolver := tenancy.NewResolver(suite.mockTenantRepo)
	suite.authService = auth.NewService(
		suite.mockTenantRepo,
		suite.mockUserRepo,
		resolver,
		validator.New(),
		"test-secret",
		time.Hour,
	)
}

func (suite *AuthServiceTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *AuthServiceTestSuite) registerRequest() *auth.RegisterRequest {
	return &auth.RegisterRequest{
		TenantName:           "Acme Corp",
		TenantSlug:           "acme",
		Name:                 "Alice",
		Email:                "alice@acme.test",
		Password:             "supersecret",
		PasswordConfirmation: "supersecret",
	}
}

func (suite *AuthServiceTestSuite) TestRegister_Success() {
	req := suite.registerRequest()

	suite.mockTenantRepo.EXPECT().GetBySlug("acme").Return(nil, gorm.ErrRecordNotFound)
	suite.mockUserRepo.EXPECT().GetByEmail("alice@acme.test").Return(nil, gorm.ErrRecordNotFound)
	suite.mockTenantRepo.EXPECT().
		CreateWithOwner(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(tenant *models.Tenant, owner *models.User, sub *models.Subscription) error {
			tenant.ID = uuid.New()
			owner.ID = uuid.New()
			assert.Equal(suite.T(), models.PlanBasic, sub.Plan)
			assert.Equal(suite.T(), models.SubscriptionStatusActive, sub.Status)
			assert.Nil(suite.T(), sub.ExpiresAt)
			return nil
		})

	resp, err := suite.authService.Register(req)

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), resp)
	assert.Equal(suite.T(), "Registration successful", resp.Message)
	assert.NotEmpty(suite.T(), resp.Token)
	assert.Equal(suite.T(), models.RoleManager, resp.User.Role)
	assert.True(suite.T(), auth.CheckPassword("supersecret", resp.User.PasswordHash))

	claims, err := suite.authService.ValidateToken(resp.Token)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), resp.Tenant.ID.String(), claims.TenantID)
	assert.Equal(suite.T(), string(models.RoleManager), claims.Role)
}

func (suite *AuthServiceTestSuite) TestRegister_SlugTaken() {
	req := suite.registerRequest()

	suite.mockTenantRepo.EXPECT().GetBySlug("acme").Return(&models.Tenant{Slug: "acme"}, nil)

	resp, err := suite.authService.Register(req)

	assert.Nil(suite.T(), resp)
	assert.ErrorIs(suite.T(), err, apperrors.ErrTenantSlugExists)
}

func (suite *AuthServiceTestSuite) TestRegister_EmailTaken() {
	req := suite.registerRequest()

	suite.mockTenantRepo.EXPECT().GetBySlug("acme").Return(nil, gorm.ErrRecordNotFound)
	suite.mockUserRepo.EXPECT().GetByEmail("alice@acme.test").Return(&models.User{Email: "alice@acme.test"}, nil)

	resp, err := suite.authService.Register(req)

	assert.Nil(suite.T(), resp)
	assert.ErrorIs(suite.T(), err, apperrors.ErrEmailExists)
}

func (suite *AuthServiceTestSuite) TestRegister_ConcurrentSlugTaken() {
	// a duplicate that slips past the pre-check still reads as a taken slug
	req := suite.registerRequest()

	suite.mockTenantRepo.EXPECT().GetBySlug("acme").Return(nil, gorm.ErrRecordNotFound)
	suite.mockUserRepo.EXPECT().GetByEmail("alice@acme.test").Return(nil, gorm.ErrRecordNotFound)
	suite.mockTenantRepo.EXPECT().
		CreateWithOwner(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&pgconn.PgError{Code: "23505", ConstraintName: "idx_tenants_slug"})

	resp, err := suite.authService.Register(req)

	assert.Nil(suite.T(), resp)
	assert.ErrorIs(suite.T(), err, apperrors.ErrTenantSlugExists)
}

func (suite *AuthServiceTestSuite) TestRegister_ConcurrentEmailTaken() {
	req := suite.registerRequest()

	suite.mockTenantRepo.EXPECT().GetBySlug("acme").Return(nil, gorm.ErrRecordNotFound)
	suite.mockUserRepo.EXPECT().GetByEmail("alice@acme.test").Return(nil, gorm.ErrRecordNotFound)
	suite.mockTenantRepo.EXPECT().
		CreateWithOwner(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&pgconn.PgError{Code: "23505", ConstraintName: "idx_users_email"})

	resp, err := suite.authService.Register(req)

	assert.Nil(suite.T(), resp)
	assert.ErrorIs(suite.T(), err, apperrors.ErrEmailExists)
}

func (suite *AuthServiceTestSuite) TestRegister_PasswordMismatch() {
	req := suite.registerRequest()
	req.PasswordConfirmation = "different"

	resp, err := suite.authService.Register(req)

	assert.Nil(suite.T(), resp)
	assert.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "validation failed")
}

func (suite *AuthServiceTestSuite) TestRegister_InvalidRole() {
	req := suite.registerRequest()
	req.Role = "superadmin"

	resp, err := suite.authService.Register(req)

	assert.Nil(suite.T(), resp)
	assert.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "validation failed")
}

func (suite *AuthServiceTestSuite) loginFixture() (*models.Tenant, *models.User) {
	hash, err := auth.HashPassword("supersecret")
	suite.Require().NoError(err)

	tenant := &models.Tenant{Name: "Acme Corp", Slug: "acme"}
	tenant.ID = uuid.New()
	user := &models.User{
		Name:         "Alice",
		Email:        "alice@acme.test",
		PasswordHash: hash,
		Role:         models.RoleAgent,
	}
	user.ID = uuid.New()
	return tenant, user
}

func (suite *AuthServiceTestSuite) TestLogin_BySlug_Success() {
	tenant, user := suite.loginFixture()

	suite.mockTenantRepo.EXPECT().GetBySlug("acme").Return(tenant, nil)
	suite.mockUserRepo.EXPECT().GetMemberByEmail(tenant.ID, "alice@acme.test").Return(user, nil)
	suite.mockUserRepo.EXPECT().GetWithTenants(user.ID).Return(user, nil)

	resp, err := suite.authService.Login(&auth.LoginRequest{
		Email:    "alice@acme.test",
		Password: "supersecret",
		TenantID: "acme",
	})

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), resp)
	assert.Equal(suite.T(), "Login successful", resp.Message)
	assert.NotEmpty(suite.T(), resp.Token)

	claims, err := suite.authService.ValidateToken(resp.Token)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), user.ID.String(), claims.UserID)
	assert.Equal(suite.T(), tenant.ID.String(), claims.TenantID)
	assert.Equal(suite.T(), string(models.RoleAgent), claims.Role)
}

func (suite *AuthServiceTestSuite) TestLogin_ByID_Success() {
	tenant, user := suite.loginFixture()

	suite.mockTenantRepo.EXPECT().GetByID(tenant.ID).Return(tenant, nil)
	suite.mockUserRepo.EXPECT().GetMemberByEmail(tenant.ID, "alice@acme.test").Return(user, nil)
	suite.mockUserRepo.EXPECT().GetWithTenants(user.ID).Return(user, nil)

	resp, err := suite.authService.Login(&auth.LoginRequest{
		Email:    "alice@acme.test",
		Password: "supersecret",
		TenantID: tenant.ID.String(),
	})

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), resp)
}

func (suite *AuthServiceTestSuite) TestLogin_UnknownTenant() {
	suite.mockTenantRepo.EXPECT().GetBySlug("nope").Return(nil, gorm.ErrRecordNotFound)

	resp, err := suite.authService.Login(&auth.LoginRequest{
		Email:    "alice@acme.test",
		Password: "supersecret",
		TenantID: "nope",
	})

	assert.Nil(suite.T(), resp)
	assert.ErrorIs(suite.T(), err, apperrors.ErrTenantNotFound)
}

func (suite *AuthServiceTestSuite) TestLogin_NotAMember() {
	tenant, _ := suite.loginFixture()

	suite.mockTenantRepo.EXPECT().GetBySlug("acme").Return(tenant, nil)
	suite.mockUserRepo.EXPECT().GetMemberByEmail(tenant.ID, "alice@acme.test").Return(nil, gorm.ErrRecordNotFound)

	resp, err := suite.authService.Login(&auth.LoginRequest{
		Email:    "alice@acme.test",
		Password: "supersecret",
		TenantID: "acme",
	})

	assert.Nil(suite.T(), resp)
	assert.ErrorIs(suite.T(), err, apperrors.ErrInvalidCredentials)
}

func (suite *AuthServiceTestSuite) TestLogin_WrongPassword() {
	tenant, user := suite.loginFixture()

	suite.mockTenantRepo.EXPECT().GetBySlug("acme").Return(tenant, nil)
	suite.mockUserRepo.EXPECT().GetMemberByEmail(tenant.ID, "alice@acme.test").Return(user, nil)

	resp, err := suite.authService.Login(&auth.LoginRequest{
		Email:    "alice@acme.test",
		Password: "wrong",
		TenantID: "acme",
	})

	assert.Nil(suite.T(), resp)
	assert.ErrorIs(suite.T(), err, apperrors.ErrInvalidCredentials)
}

func (suite *AuthServiceTestSuite) TestValidateToken_Revoked() {
	tenant, user := suite.loginFixture()

	token, err := suite.authService.IssueToken(user, tenant)
	suite.Require().NoError(err)

	claims, err := suite.authService.ValidateToken(token)
	suite.Require().NoError(err)

	suite.authService.Revoke(claims)

	_, err = suite.authService.ValidateToken(token)
	assert.ErrorIs(suite.T(), err, apperrors.ErrTokenRevoked)
}

func (suite *AuthServiceTestSuite) TestValidateToken_Tampered() {
	tenant, user := suite.loginFixture()

	token, err := suite.authService.IssueToken(user, tenant)
	suite.Require().NoError(err)

	_, err = suite.authService.ValidateToken(token + "x")
	assert.ErrorIs(suite.T(), err, apperrors.ErrInvalidToken)
}

func (suite *AuthServiceTestSuite) TestValidateToken_WrongSecret() {
	tenant, user := suite.loginFixture()

	other := auth.NewService(suite.mockTenantRepo, suite.mockUserRepo, tenancy.NewResolver(suite.mockTenantRepo), validator.New(), "other-secret", time.Hour)
	token, err := other.IssueToken(user, tenant)
	suite.Require().NoError(err)

	_, err = suite.authService.ValidateToken(token)
	assert.ErrorIs(suite.T(), err, apperrors.ErrInvalidToken)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

func TestPasswordHashing(t *testing.T) {
	hash, err := auth.HashPassword("supersecret")
	assert.NoError(t, err)
	assert.NotEqual(t, "supersecret", hash)
	assert.True(t, auth.CheckPassword("supersecret", hash))
	assert.False(t, auth.CheckPassword("wrong", hash))
}
