package handlers

import (
	"errors"
	"net/http"

	apperrors "taskhive-backend/internal/errors"
	"taskhive-backend/internal/service"
	"taskhive-backend/internal/tenancy"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// SubscriptionHandler handles HTTP requests for subscription operations
type SubscriptionHandler struct {
	subscriptionService service.SubscriptionServiceInterface
}

// NewSubscriptionHandler creates a new subscription handler
func NewSubscriptionHandler(subscriptionService service.SubscriptionServiceInterface) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionService: subscriptionService,
	}
}

// Current handles GET /api/subscription/current
// @Summary Get the current subscription
// @Description Get the active subscription of the current tenant
// @Tags subscription
// @Produce json
// @Success 200 {object} map[string]interface{} "Current subscription"
// @Failure 401 {object} map[string]interface{} "Unauthenticated"
// @Failure 404 {object} map[string]interface{} "No active subscription found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /subscription/current [get]
func (h *SubscriptionHandler) Current(c *gin.Context) {
	tenant := tenancy.CurrentTenant(c)
	if tenant == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated."})
		return
	}

	subscription, err := h.subscriptionService.Current(tenant.ID)
	if err != nil {
		h.respondError(c, err, "Failed to get subscription")
		return
	}

	c.JSON(http.StatusOK, gin.H{"subscription": subscription})
}

// Plans handles GET /api/subscription/plans
// @Summary List subscription plans
// @Description Get the plan catalog with prices and enabled features per plan
// @Tags subscription
// @Produce json
// @Success 200 {object} map[string]interface{} "Available plans"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /subscription/plans [get]
func (h *SubscriptionHandler) Plans(c *gin.Context) {
	plans, err := h.subscriptionService.Plans()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get plans", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"plans": plans})
}

// Features handles GET /api/subscription/features
// @Summary List current plan features
// @Description Get the enabled features of the current tenant's active plan
// @Tags subscription
// @Produce json
// @Success 200 {object} service.FeaturesResponse "Enabled features"
// @Failure 401 {object} map[string]interface{} "Unauthenticated"
// @Failure 404 {object} map[string]interface{} "No active subscription found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /subscription/features [get]
func (h *SubscriptionHandler) Features(c *gin.Context) {
	tenant := tenancy.CurrentTenant(c)
	if tenant == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated."})
		return
	}

	features, err := h.subscriptionService.Features(tenant.ID)
	if err != nil {
		h.respondError(c, err, "Failed to get features")
		return
	}

	c.JSON(http.StatusOK, features)
}

// Upgrade handles POST /api/subscription/upgrade
// @Summary Upgrade the subscription
// @Description Move the current tenant's active subscription to a higher tier plan
// @Tags subscription
// @Accept json
// @Produce json
// @Param plan body service.ChangePlanRequest true "Target plan"
// @Success 200 {object} map[string]interface{} "Subscription upgraded"
// @Failure 400 {object} map[string]interface{} "Invalid upgrade direction"
// @Failure 401 {object} map[string]interface{} "Unauthenticated"
// @Failure 404 {object} map[string]interface{} "No active subscription found"
// @Failure 422 {object} map[string]interface{} "Validation failed"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /subscription/upgrade [post]
func (h *SubscriptionHandler) Upgrade(c *gin.Context) {
	tenant := tenancy.CurrentTenant(c)
	if tenant == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated."})
		return
	}

	var req service.ChangePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	subscription, err := h.subscriptionService.Upgrade(tenant.ID, &req)
	if err != nil {
		h.respondError(c, err, "Failed to upgrade subscription")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Subscription upgraded successfully",
		"subscription": subscription,
	})
}

// Downgrade handles POST /api/subscription/downgrade
// @Summary Downgrade the subscription
// @Description Move the current tenant's active subscription to a lower tier plan
// @Tags subscription
// @Accept json
// @Produce json
// @Param plan body service.ChangePlanRequest true "Target plan"
// @Success 200 {object} map[string]interface{} "Subscription downgraded"
// @Failure 400 {object} map[string]interface{} "Invalid downgrade direction"
// @Failure 401 {object} map[string]interface{} "Unauthenticated"
// @Failure 404 {object} map[string]interface{} "No active subscription found"
// @Failure 422 {object} map[string]interface{} "Validation failed"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /subscription/downgrade [post]
func (h *SubscriptionHandler) Downgrade(c *gin.Context) {
	tenant := tenancy.CurrentTenant(c)
	if tenant == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated."})
		return
	}

	var req service.ChangePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	subscription, err := h.subscriptionService.Downgrade(tenant.ID, &req)
	if err != nil {
		h.respondError(c, err, "Failed to downgrade subscription")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Subscription downgraded successfully",
		"subscription": subscription,
	})
}

func (h *SubscriptionHandler) respondError(c *gin.Context, err error, fallback string) {
	var vErrs validator.ValidationErrors
	switch {
	case errors.As(err, &vErrs):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Validation failed", "errors": vErrs.Error()})
	case errors.Is(err, apperrors.ErrSubscriptionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "No active subscription found"})
	case apperrors.IsInvalidTransition(err):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback, "details": err.Error()})
	}
}
