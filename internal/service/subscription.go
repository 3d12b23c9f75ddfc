package service

import (
	"errors"
	"fmt"
	"time"

	"taskhive-backend/internal/database/models"
	apperrors "taskhive-backend/internal/errors"
	"taskhive-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SubscriptionService provides plan and feature business logic for a
// tenant's subscription. Feature limits are informational; nothing
// here enforces them against actual usage.
type SubscriptionService struct {
	subscriptionRepo repository.SubscriptionRepositoryInterface
	featureRepo      repository.SubscriptionFeatureRepositoryInterface
	validator        *validator.Validate
}

// Ensure SubscriptionService implements SubscriptionServiceInterface
var _ SubscriptionServiceInterface = (*SubscriptionService)(nil)

// NewSubscriptionService creates a new SubscriptionService
func NewSubscriptionService(
	subscriptionRepo repository.SubscriptionRepositoryInterface,
	featureRepo repository.SubscriptionFeatureRepositoryInterface,
	validator *validator.Validate,
) *SubscriptionService {
	return &SubscriptionService{
		subscriptionRepo: subscriptionRepo,
		featureRepo:      featureRepo,
		validator:        validator,
	}
}

// ChangePlanRequest represents an upgrade or downgrade request
type ChangePlanRequest struct {
	Plan models.SubscriptionPlan `json:"plan" validate:"required,oneof=basic pro enterprise"`
}

// FeatureResponse represents one enabled feature of a plan
type FeatureResponse struct {
	Plan        models.SubscriptionPlan `json:"plan"`
	FeatureKey  string                  `json:"feature_key"`
	FeatureName string                  `json:"feature_name"`
	Description string                  `json:"description,omitempty"`
	LimitValue  *int                    `json:"limit_value"`
}

// SubscriptionResponse represents a tenant's subscription
type SubscriptionResponse struct {
	ID        uuid.UUID                 `json:"id"`
	TenantID  uuid.UUID                 `json:"tenant_id"`
	Plan      models.SubscriptionPlan   `json:"plan"`
	Status    models.SubscriptionStatus `json:"status"`
	StartedAt time.Time                 `json:"started_at"`
	ExpiresAt *time.Time                `json:"expires_at"`
}

// PlanResponse represents one entry of the plan catalog
type PlanResponse struct {
	Key      models.SubscriptionPlan `json:"key"`
	Name     string                  `json:"name"`
	Price    int                     `json:"price"`
	Features []FeatureResponse       `json:"features"`
}

// FeaturesResponse represents the enabled features of a tenant's current plan
type FeaturesResponse struct {
	Plan     models.SubscriptionPlan `json:"plan"`
	Features []FeatureResponse       `json:"features"`
}

// planCatalog is the fixed set of offered plans with their prices
var planCatalog = []struct {
	Key   models.SubscriptionPlan
	Name  string
	Price int
}{
	{models.PlanBasic, "Basic", 0},
	{models.PlanPro, "Pro", 29},
	{models.PlanEnterprise, "Enterprise", 99},
}

// Current returns the tenant's active subscription
func (s *SubscriptionService) Current(tenantID uuid.UUID) (*SubscriptionResponse, error) {
	subscription, err := s.active(tenantID)
	if err != nil {
		return nil, err
	}
	resp := s.toResponse(subscription)
	return &resp, nil
}

// Plans returns the plan catalog with each plan's enabled features
func (s *SubscriptionService) Plans() ([]PlanResponse, error) {
	plans := make([]PlanResponse, 0, len(planCatalog))
	for _, entry := range planCatalog {
		features, err := s.enabledFeatures(entry.Key)
		if err != nil {
			return nil, err
		}
		plans = append(plans, PlanResponse{
			Key:      entry.Key,
			Name:     entry.Name,
			Price:    entry.Price,
			Features: features,
		})
	}
	return plans, nil
}

// Features returns the enabled features of the tenant's current plan
func (s *SubscriptionService) Features(tenantID uuid.UUID) (*FeaturesResponse, error) {
	subscription, err := s.active(tenantID)
	if err != nil {
		return nil, err
	}

	features, err := s.enabledFeatures(subscription.Plan)
	if err != nil {
		return nil, err
	}

	return &FeaturesResponse{
		Plan:     subscription.Plan,
		Features: features,
	}, nil
}

// Upgrade moves the tenant's active subscription to a higher tier.
// The start date resets; any expiry date is left untouched.
func (s *SubscriptionService) Upgrade(tenantID uuid.UUID, req *ChangePlanRequest) (*SubscriptionResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	subscription, err := s.active(tenantID)
	if err != nil {
		return nil, err
	}

	if req.Plan.Level() <= subscription.Plan.Level() {
		return nil, apperrors.ErrInvalidUpgrade
	}

	return s.changePlan(subscription, req.Plan)
}

// Downgrade moves the tenant's active subscription to a lower tier
func (s *SubscriptionService) Downgrade(tenantID uuid.UUID, req *ChangePlanRequest) (*SubscriptionResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	subscription, err := s.active(tenantID)
	if err != nil {
		return nil, err
	}

	if req.Plan.Level() >= subscription.Plan.Level() {
		return nil, apperrors.ErrInvalidDowngrade
	}

	return s.changePlan(subscription, req.Plan)
}

func (s *SubscriptionService) changePlan(subscription *models.Subscription, plan models.SubscriptionPlan) (*SubscriptionResponse, error) {
	subscription.Plan = plan
	subscription.StartedAt = time.Now()

	if err := s.subscriptionRepo.Update(subscription); err != nil {
		return nil, fmt.Errorf("failed to update subscription: %w", err)
	}

	resp := s.toResponse(subscription)
	return &resp, nil
}

func (s *SubscriptionService) active(tenantID uuid.UUID) (*models.Subscription, error) {
	subscription, err := s.subscriptionRepo.GetActiveByTenant(tenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	return subscription, nil
}

func (s *SubscriptionService) enabledFeatures(plan models.SubscriptionPlan) ([]FeatureResponse, error) {
	features, err := s.featureRepo.GetEnabledByPlan(plan)
	if err != nil {
		return nil, fmt.Errorf("failed to get features for plan %s: %w", plan, err)
	}

	responses := make([]FeatureResponse, len(features))
	for i, f := range features {
		responses[i] = FeatureResponse{
			Plan:        f.Plan,
			FeatureKey:  f.FeatureKey,
			FeatureName: f.FeatureName,
			Description: f.Description,
			LimitValue:  f.LimitValue,
		}
	}
	return responses, nil
}

// toResponse converts a Subscription model to API response
func (s *SubscriptionService) toResponse(subscription *models.Subscription) SubscriptionResponse {
	return SubscriptionResponse{
		ID:        subscription.ID,
		TenantID:  subscription.TenantID,
		Plan:      subscription.Plan,
		Status:    subscription.Status,
		StartedAt: subscription.StartedAt,
		ExpiresAt: subscription.ExpiresAt,
	}
}
