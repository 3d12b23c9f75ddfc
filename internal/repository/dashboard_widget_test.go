package repository_test

import (
	"testing"

	"taskhive-backend/internal/database/models"
	"taskhive-backend/internal/repository"
	"taskhive-backend/internal/testutils"

	"github.com/stretchr/testify/suite"
)

// DashboardWidgetRepositoryTestSuite tests the widget catalog reads
type DashboardWidgetRepositoryTestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	repo          *repository.DashboardWidgetRepository
}

// SetupSuite runs before all tests in the suite
func (suite *DashboardWidgetRepositoryTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())

	suite.repo = repository.NewDashboardWidgetRepository(suite.baseTestSuite.DB)
}

// TearDownSuite runs after all tests in the suite
func (suite *DashboardWidgetRepositoryTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

// SetupTest seeds the widget catalog before each test
func (suite *DashboardWidgetRepositoryTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()

	rows := []models.DashboardWidget{
		{Role: models.RoleManager, WidgetKey: "team_overview", WidgetName: "Team Overview", IsActive: true, Order: 2},
		{Role: models.RoleManager, WidgetKey: "task_summary", WidgetName: "Task Summary", IsActive: true, Order: 1},
		{Role: models.RoleManager, WidgetKey: "legacy_chart", WidgetName: "Legacy Chart", IsActive: false, Order: 3},
		{Role: models.RoleAgent, WidgetKey: "my_tasks", WidgetName: "My Tasks", IsActive: true, Order: 1},
	}
	for i := range rows {
		suite.NoError(suite.baseTestSuite.DB.Create(&rows[i]).Error)
	}
}

// TearDownTest runs after each test
func (suite *DashboardWidgetRepositoryTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

// TestGetActiveByRole tests role filtering and display ordering
func (suite *DashboardWidgetRepositoryTestSuite) TestGetActiveByRole() {
	widgets, err := suite.repo.GetActiveByRole(models.RoleManager)

	suite.NoError(err)
	suite.Len(widgets, 2)
	suite.Equal("task_summary", widgets[0].WidgetKey)
	suite.Equal("team_overview", widgets[1].WidgetKey)
}

// TestGetActiveByRoleExcludesInactive tests that inactive widgets stay hidden
func (suite *DashboardWidgetRepositoryTestSuite) TestGetActiveByRoleExcludesInactive() {
	widgets, err := suite.repo.GetActiveByRole(models.RoleManager)

	suite.NoError(err)
	for _, w := range widgets {
		suite.NotEqual("legacy_chart", w.WidgetKey)
	}
}

// TestGetActiveByRoleOtherRole tests that roles only see their own widgets
func (suite *DashboardWidgetRepositoryTestSuite) TestGetActiveByRoleOtherRole() {
	widgets, err := suite.repo.GetActiveByRole(models.RoleAgent)

	suite.NoError(err)
	suite.Len(widgets, 1)
	suite.Equal("my_tasks", widgets[0].WidgetKey)
}

// TestGetActiveByRoleEmpty tests a role with no widgets
func (suite *DashboardWidgetRepositoryTestSuite) TestGetActiveByRoleEmpty() {
	widgets, err := suite.repo.GetActiveByRole(models.RoleTeamLead)

	suite.NoError(err)
	suite.Empty(widgets)
}

// Run the test suite
func TestDashboardWidgetRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(DashboardWidgetRepositoryTestSuite))
}
