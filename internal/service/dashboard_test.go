package service_test

import (
	"testing"

	"taskhive-backend/internal/database/models"
	"taskhive-backend/internal/mocks"
	"taskhive-backend/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type DashboardServiceTestSuite struct {
	suite.Suite
	ctrl             *gomock.Controller
	mockTaskRepo     *mocks.MockTaskRepositoryInterface
	mockWidgetRepo   *mocks.MockDashboardWidgetRepositoryInterface
	dashboardService *service.DashboardService

	tenantID uuid.UUID
}

func (suite *DashboardServiceTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockTaskRepo = mocks.NewMockTaskRepositoryInterface(suite.ctrl)
	suite.mockWidgetRepo = mocks.NewMockDashboardWidgetRepositoryInterface(suite.ctrl)
	suite.dashboardService = service.NewDashboardService(suite.mockTaskRepo, suite.mockWidgetRepo)
	suite.tenantID = uuid.New()
}

func (suite *DashboardServiceTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *DashboardServiceTestSuite) newUser(role models.UserRole) *models.User {
	user := &models.User{Role: role}
	user.ID = uuid.New()
	return user
}

func (suite *DashboardServiceTestSuite) TestWidgets_OrderedForRole() {
	widgets := []models.DashboardWidget{
		{Role: models.RoleManager, WidgetKey: "task_overview", WidgetName: "Task Overview", IsActive: true, Order: 1},
		{Role: models.RoleManager, WidgetKey: "team_performance", WidgetName: "Team Performance", IsActive: true, Order: 2},
	}
	suite.mockWidgetRepo.EXPECT().GetActiveByRole(models.RoleManager).Return(widgets, nil)

	resp, err := suite.dashboardService.Widgets(suite.newUser(models.RoleManager))

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), resp, 2)
	assert.Equal(suite.T(), "task_overview", resp[0].WidgetKey)
	assert.Equal(suite.T(), 1, resp[0].Order)
	assert.Equal(suite.T(), "team_performance", resp[1].WidgetKey)
}

func (suite *DashboardServiceTestSuite) TestStats_Manager() {
	user := suite.newUser(models.RoleManager)

	suite.mockTaskRepo.EXPECT().CountByTenant(suite.tenantID).Return(int64(10), nil)
	suite.mockTaskRepo.EXPECT().CountByStatus(suite.tenantID, models.TaskStatusPending).Return(int64(4), nil)
	suite.mockTaskRepo.EXPECT().CountByStatus(suite.tenantID, models.TaskStatusCompleted).Return(int64(3), nil)
	suite.mockTaskRepo.EXPECT().CountByStatus(suite.tenantID, models.TaskStatusInProgress).Return(int64(2), nil)
	suite.mockTaskRepo.EXPECT().CountByStatus(suite.tenantID, models.TaskStatusCancelled).Return(int64(1), nil)

	stats, err := suite.dashboardService.Stats(user, suite.tenantID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(10), stats["total_tasks"])
	assert.Equal(suite.T(), int64(4), stats["pending_tasks"])
	assert.Equal(suite.T(), int64(3), stats["completed_tasks"])
	assert.Equal(suite.T(), int64(2), stats["in_progress_tasks"])
	assert.Equal(suite.T(), int64(1), stats["cancelled_tasks"])
	assert.NotContains(suite.T(), stats, "my_tasks")
	assert.NotContains(suite.T(), stats, "team_tasks")
}

func (suite *DashboardServiceTestSuite) TestStats_TeamLead() {
	user := suite.newUser(models.RoleTeamLead)

	suite.mockTaskRepo.EXPECT().CountByTenant(suite.tenantID).Return(int64(10), nil)
	suite.mockTaskRepo.EXPECT().CountByStatus(suite.tenantID, models.TaskStatusPending).Return(int64(4), nil)
	suite.mockTaskRepo.EXPECT().CountByStatus(suite.tenantID, models.TaskStatusCompleted).Return(int64(3), nil)
	suite.mockTaskRepo.EXPECT().CountAssignedTo(suite.tenantID, user.ID).Return(int64(5), nil)

	stats, err := suite.dashboardService.Stats(user, suite.tenantID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(5), stats["team_tasks"])
	assert.NotContains(suite.T(), stats, "in_progress_tasks")
	assert.NotContains(suite.T(), stats, "my_tasks")
}

func (suite *DashboardServiceTestSuite) TestStats_Agent() {
	user := suite.newUser(models.RoleAgent)

	suite.mockTaskRepo.EXPECT().CountByTenant(suite.tenantID).Return(int64(10), nil)
	suite.mockTaskRepo.EXPECT().CountByStatus(suite.tenantID, models.TaskStatusPending).Return(int64(4), nil)
	suite.mockTaskRepo.EXPECT().CountByStatus(suite.tenantID, models.TaskStatusCompleted).Return(int64(3), nil)
	suite.mockTaskRepo.EXPECT().CountAssignedTo(suite.tenantID, user.ID).Return(int64(2), nil)
	suite.mockTaskRepo.EXPECT().CountAssignedToWithStatus(suite.tenantID, user.ID, models.TaskStatusPending).Return(int64(1), nil)

	stats, err := suite.dashboardService.Stats(user, suite.tenantID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(2), stats["my_tasks"])
	assert.Equal(suite.T(), int64(1), stats["my_pending_tasks"])
	assert.NotContains(suite.T(), stats, "team_tasks")
}

func TestDashboardServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DashboardServiceTestSuite))
}
