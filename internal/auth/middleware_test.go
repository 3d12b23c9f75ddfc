package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"taskhive-backend/internal/auth"
	"taskhive-backend/internal/database/models"
	"taskhive-backend/internal/mocks"
	"taskhive-backend/internal/tenancy"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

// AuthMiddlewareTestSuite tests RequireAuth
type AuthMiddlewareTestSuite struct {
	suite.Suite
	ctrl           *gomock.Controller
	mockTenantRepo *mocks.MockTenantRepositoryInterface
	mockUserRepo   *mocks.MockUserRepositoryInterface
	service        *auth.Service
	router         *gin.Engine

	user   *models.User
	tenant *models.Tenant
}

// SetupTest sets up the test suite
func (suite *AuthMiddlewareTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockTenantRepo = mocks.NewMockTenantRepositoryInterface(suite.ctrl)
	suite.mockUserRepo = mocks.NewMockUserRepositoryInterface(suite.ctrl)

	suite.service = auth.NewService(
		suite.mockTenantRepo,
		suite.mockUserRepo,
		tenancy.NewResolver(suite.mockTenantRepo),
		validator.New(),
		"test-secret",
		time.Hour,
	)

	suite.user = &models.User{
		BaseModel: models.BaseModel{ID: uuid.New()},
		Name:      "Jane Doe",
		Email:     "jane@acme.test",
		Role:      models.RoleManager,
	}
	suite.tenant = &models.Tenant{
		BaseModel: models.BaseModel{ID: uuid.New()},
		Name:      "Acme Corp",
		Slug:      "acme",
	}

	middleware := auth.NewMiddleware(suite.service)

	gin.SetMode(gin.TestMode)
	suite.router = gin.New()

	// Route with a pre-resolved tenant, mirroring the scoped route group
	suite.router.GET("/scoped",
		func(c *gin.Context) { tenancy.SetCurrentTenant(c, suite.tenant) },
		middleware.RequireAuth(),
		func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"email": auth.CurrentUser(c).Email})
		},
	)

	// Route without tenant context
	suite.router.GET("/plain", middleware.RequireAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"email": auth.CurrentUser(c).Email})
	})
}

// TearDownTest cleans up after each test
func (suite *AuthMiddlewareTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *AuthMiddlewareTestSuite) makeRequest(url, token string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("GET", url, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	suite.router.ServeHTTP(recorder, req)
	return recorder
}

// TestValidToken tests that a valid token passes and binds the user
func (suite *AuthMiddlewareTestSuite) TestValidToken() {
	token, err := suite.service.IssueToken(suite.user, suite.tenant)
	suite.NoError(err)

	suite.mockUserRepo.EXPECT().
		GetByID(suite.user.ID).
		Return(suite.user, nil).
		Times(1)

	recorder := suite.makeRequest("/scoped", token)

	assert.Equal(suite.T(), http.StatusOK, recorder.Code)
	assert.Contains(suite.T(), recorder.Body.String(), "jane@acme.test")
}

// TestMissingToken tests the missing Authorization header case
func (suite *AuthMiddlewareTestSuite) TestMissingToken() {
	recorder := suite.makeRequest("/scoped", "")

	assert.Equal(suite.T(), http.StatusUnauthorized, recorder.Code)
	assert.Contains(suite.T(), recorder.Body.String(), "Unauthenticated.")
}

// TestMalformedToken tests a token that does not parse
func (suite *AuthMiddlewareTestSuite) TestMalformedToken() {
	recorder := suite.makeRequest("/scoped", "not-a-jwt")

	assert.Equal(suite.T(), http.StatusUnauthorized, recorder.Code)
}

// TestTenantMismatch tests a token minted for a different tenant
func (suite *AuthMiddlewareTestSuite) TestTenantMismatch() {
	other := &models.Tenant{BaseModel: models.BaseModel{ID: uuid.New()}, Slug: "other"}
	token, err := suite.service.IssueToken(suite.user, other)
	suite.NoError(err)

	recorder := suite.makeRequest("/scoped", token)

	assert.Equal(suite.T(), http.StatusUnauthorized, recorder.Code)
}

// TestNoTenantContext tests that the tenant check only applies when a
// tenant was resolved for the request
func (suite *AuthMiddlewareTestSuite) TestNoTenantContext() {
	token, err := suite.service.IssueToken(suite.user, suite.tenant)
	suite.NoError(err)

	suite.mockUserRepo.EXPECT().
		GetByID(suite.user.ID).
		Return(suite.user, nil).
		Times(1)

	recorder := suite.makeRequest("/plain", token)

	assert.Equal(suite.T(), http.StatusOK, recorder.Code)
}

// TestRevokedToken tests that a revoked token no longer authenticates
func (suite *AuthMiddlewareTestSuite) TestRevokedToken() {
	token, err := suite.service.IssueToken(suite.user, suite.tenant)
	suite.NoError(err)

	claims, err := suite.service.ValidateToken(token)
	suite.NoError(err)
	suite.service.Revoke(claims)

	recorder := suite.makeRequest("/scoped", token)

	assert.Equal(suite.T(), http.StatusUnauthorized, recorder.Code)
}

// TestDeletedUser tests a valid token whose user no longer exists
func (suite *AuthMiddlewareTestSuite) TestDeletedUser() {
	token, err := suite.service.IssueToken(suite.user, suite.tenant)
	suite.NoError(err)

	suite.mockUserRepo.EXPECT().
		GetByID(suite.user.ID).
		Return(nil, gorm.ErrRecordNotFound).
		Times(1)

	recorder := suite.makeRequest("/scoped", token)

	assert.Equal(suite.T(), http.StatusUnauthorized, recorder.Code)
}

// Run the test suite
func TestAuthMiddlewareTestSuite(t *testing.T) {
	suite.Run(t, new(AuthMiddlewareTestSuite))
}
