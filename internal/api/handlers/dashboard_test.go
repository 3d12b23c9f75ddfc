package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"taskhive-backend/internal/database/models"
	"taskhive-backend/internal/mocks"
	"taskhive-backend/internal/service"
	"taskhive-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// DashboardHandlerTestSuite defines the test suite for DashboardHandler
type DashboardHandlerTestSuite struct {
	suite.Suite
	ctrl                 *gomock.Controller
	mockDashboardService *mocks.MockDashboardServiceInterface
	handler              *DashboardHandler
	httpSuite            *testutils.HTTPTestSuite

	user   *models.User
	tenant *models.Tenant
}

// SetupTest sets up the test suite
func (suite *DashboardHandlerTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockDashboardService = mocks.NewMockDashboardServiceInterface(suite.ctrl)

	suite.handler = NewDashboardHandler(suite.mockDashboardService)

	suite.user = &models.User{
		BaseModel: models.BaseModel{ID: uuid.New()},
		Name:      "Test Agent",
		Email:     "agent@test.com",
		Role:      models.RoleAgent,
	}
	suite.tenant = &models.Tenant{
		BaseModel: models.BaseModel{ID: uuid.New()},
		Name:      "Test Tenant",
		Slug:      "test-tenant",
	}

	suite.httpSuite = testutils.SetupHTTPTest()

	dashboard := suite.httpSuite.Router.Group("/api/dashboard")
	dashboard.Use(testutils.Authenticated(suite.user, suite.tenant))
	{
		dashboard.GET("/widgets", suite.handler.Widgets)
		dashboard.GET("/stats", suite.handler.Stats)
	}

	suite.httpSuite.Router.GET("/bare/dashboard/widgets", suite.handler.Widgets)
}

// TearDownTest cleans up after each test
func (suite *DashboardHandlerTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

// TestWidgets tests getting the role's widgets
func (suite *DashboardHandlerTestSuite) TestWidgets() {
	expected := []service.WidgetResponse{
		{ID: uuid.New(), Role: models.RoleAgent, WidgetKey: "my_tasks", WidgetName: "My Tasks", Order: 1},
		{ID: uuid.New(), Role: models.RoleAgent, WidgetKey: "my_pending", WidgetName: "My Pending", Order: 2},
	}

	suite.mockDashboardService.EXPECT().
		Widgets(suite.user).
		Return(expected, nil).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("GET", "/api/dashboard/widgets", nil)

	assert.Equal(suite.T(), http.StatusOK, recorder.Code)

	var response struct {
		Widgets []service.WidgetResponse `json:"widgets"`
	}
	testutils.ParseJSONResponse(suite.T(), recorder, &response)
	assert.Len(suite.T(), response.Widgets, 2)
	assert.Equal(suite.T(), "my_tasks", response.Widgets[0].WidgetKey)
}

// TestWidgetsUnauthenticated tests the missing user case
func (suite *DashboardHandlerTestSuite) TestWidgetsUnauthenticated() {
	recorder := suite.httpSuite.MakeRequest("GET", "/bare/dashboard/widgets", nil)

	assert.Equal(suite.T(), http.StatusUnauthorized, recorder.Code)
}

// TestWidgetsServiceError tests a service failure
func (suite *DashboardHandlerTestSuite) TestWidgetsServiceError() {
	suite.mockDashboardService.EXPECT().
		Widgets(suite.user).
		Return(nil, fmt.Errorf("service error")).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("GET", "/api/dashboard/widgets", nil)

	assert.Equal(suite.T(), http.StatusInternalServerError, recorder.Code)
	testutils.AssertErrorResponse(suite.T(), recorder, http.StatusInternalServerError, "Failed to get widgets")
}

// TestStats tests getting role-specific statistics
func (suite *DashboardHandlerTestSuite) TestStats() {
	expected := service.DashboardStats{
		"total_tasks":      10,
		"pending_tasks":    4,
		"completed_tasks":  6,
		"my_tasks":         3,
		"my_pending_tasks": 1,
	}

	suite.mockDashboardService.EXPECT().
		Stats(suite.user, suite.tenant.ID).
		Return(expected, nil).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("GET", "/api/dashboard/stats", nil)

	assert.Equal(suite.T(), http.StatusOK, recorder.Code)

	var response struct {
		Stats service.DashboardStats `json:"stats"`
	}
	testutils.ParseJSONResponse(suite.T(), recorder, &response)
	assert.Equal(suite.T(), int64(10), response.Stats["total_tasks"])
	assert.Equal(suite.T(), int64(3), response.Stats["my_tasks"])
}

// TestStatsServiceError tests a service failure
func (suite *DashboardHandlerTestSuite) TestStatsServiceError() {
	suite.mockDashboardService.EXPECT().
		Stats(suite.user, suite.tenant.ID).
		Return(nil, fmt.Errorf("service error")).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("GET", "/api/dashboard/stats", nil)

	assert.Equal(suite.T(), http.StatusInternalServerError, recorder.Code)
	testutils.AssertErrorResponse(suite.T(), recorder, http.StatusInternalServerError, "Failed to get stats")
}

// Run the test suite
func TestDashboardHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(DashboardHandlerTestSuite))
}
