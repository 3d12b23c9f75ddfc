package repository_test

import (
	"testing"

	"taskhive-backend/internal/database/models"
	"taskhive-backend/internal/repository"
	"taskhive-backend/internal/testutils"

	"github.com/stretchr/testify/suite"
)

// SubscriptionFeatureRepositoryTestSuite tests the feature catalog reads
type SubscriptionFeatureRepositoryTestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	repo          *repository.SubscriptionFeatureRepository
}

// SetupSuite runs before all tests in the suite
func (suite *SubscriptionFeatureRepositoryTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())

	suite.repo = repository.NewSubscriptionFeatureRepository(suite.baseTestSuite.DB)
}

// TearDownSuite runs after all tests in the suite
func (suite *SubscriptionFeatureRepositoryTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

// SetupTest seeds a small catalog before each test
func (suite *SubscriptionFeatureRepositoryTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()

	five := 5
	rows := []models.SubscriptionFeature{
		{Plan: models.PlanBasic, FeatureKey: "max_agents", FeatureName: "Max Agents", IsEnabled: true, LimitValue: &five},
		{Plan: models.PlanBasic, FeatureKey: "basic_tasks", FeatureName: "Basic Tasks", IsEnabled: true},
		{Plan: models.PlanBasic, FeatureKey: "automation", FeatureName: "Automation", IsEnabled: false},
		{Plan: models.PlanPro, FeatureKey: "automation", FeatureName: "Automation", IsEnabled: true},
	}
	for i := range rows {
		suite.NoError(suite.baseTestSuite.DB.Create(&rows[i]).Error)
	}
}

// TearDownTest runs after each test
func (suite *SubscriptionFeatureRepositoryTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

// TestGetEnabledByPlan tests that only the plan's enabled features return
func (suite *SubscriptionFeatureRepositoryTestSuite) TestGetEnabledByPlan() {
	features, err := suite.repo.GetEnabledByPlan(models.PlanBasic)

	suite.NoError(err)
	suite.Len(features, 2)

	keys := []string{features[0].FeatureKey, features[1].FeatureKey}
	suite.Contains(keys, "max_agents")
	suite.Contains(keys, "basic_tasks")
	suite.NotContains(keys, "automation")
}

// TestGetEnabledByPlanOrdering tests that results come back ordered by key
func (suite *SubscriptionFeatureRepositoryTestSuite) TestGetEnabledByPlanOrdering() {
	features, err := suite.repo.GetEnabledByPlan(models.PlanBasic)

	suite.NoError(err)
	suite.Len(features, 2)
	suite.Equal("basic_tasks", features[0].FeatureKey)
	suite.Equal("max_agents", features[1].FeatureKey)
}

// TestLimitValue tests that the advisory limit survives the round trip
func (suite *SubscriptionFeatureRepositoryTestSuite) TestLimitValue() {
	features, err := suite.repo.GetEnabledByPlan(models.PlanBasic)
	suite.NoError(err)

	for _, f := range features {
		if f.FeatureKey == "max_agents" {
			suite.True(f.HasLimit())
			suite.Equal(5, *f.LimitValue)
		}
		if f.FeatureKey == "basic_tasks" {
			suite.False(f.HasLimit())
		}
	}
}

// TestGetEnabledByPlanEmpty tests a plan with no catalog rows
func (suite *SubscriptionFeatureRepositoryTestSuite) TestGetEnabledByPlanEmpty() {
	features, err := suite.repo.GetEnabledByPlan(models.PlanEnterprise)

	suite.NoError(err)
	suite.Empty(features)
}

// Run the test suite
func TestSubscriptionFeatureRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(SubscriptionFeatureRepositoryTestSuite))
}
