package handlers

import (
	"net/http"

	"taskhive-backend/internal/auth"
	"taskhive-backend/internal/service"
	"taskhive-backend/internal/tenancy"

	"github.com/gin-gonic/gin"
)

// DashboardHandler handles HTTP requests for dashboard operations
type DashboardHandler struct {
	dashboardService service.DashboardServiceInterface
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService service.DashboardServiceInterface) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// Widgets handles GET /api/dashboard/widgets
// @Summary Get dashboard widgets
// @Description Get the active dashboard widgets for the current user's role, in display order
// @Tags dashboard
// @Produce json
// @Success 200 {object} map[string]interface{} "Role widgets"
// @Failure 401 {object} map[string]interface{} "Unauthenticated"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /dashboard/widgets [get]
func (h *DashboardHandler) Widgets(c *gin.Context) {
	user := auth.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated."})
		return
	}

	widgets, err := h.dashboardService.Widgets(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get widgets", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"widgets": widgets})
}

// Stats handles GET /api/dashboard/stats
// @Summary Get dashboard statistics
// @Description Get tenant-wide task counts plus role-specific counts for the current user
// @Tags dashboard
// @Produce json
// @Success 200 {object} map[string]interface{} "Task statistics"
// @Failure 401 {object} map[string]interface{} "Unauthenticated"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /dashboard/stats [get]
func (h *DashboardHandler) Stats(c *gin.Context) {
	user := auth.CurrentUser(c)
	tenant := tenancy.CurrentTenant(c)
	if user == nil || tenant == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated."})
		return
	}

	stats, err := h.dashboardService.Stats(user, tenant.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get stats", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}
