package routes

import (
	"time"

	"taskhive-backend/internal/api/handlers"
	"taskhive-backend/internal/api/middleware"
	"taskhive-backend/internal/auth"
	"taskhive-backend/internal/config"
	"taskhive-backend/internal/repository"
	"taskhive-backend/internal/service"
	"taskhive-backend/internal/tenancy"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Create router
	router := gin.New()

	// Add middleware
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(cfg))

	// Initialize validator
	validator := validator.New()

	// Initialize repositories
	tenantRepo := repository.NewTenantRepository(db)
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	featureRepo := repository.NewSubscriptionFeatureRepository(db)
	widgetRepo := repository.NewDashboardWidgetRepository(db)

	// Initialize tenancy
	resolver := tenancy.NewResolver(tenantRepo)
	tenantMiddleware := tenancy.NewMiddleware(resolver)

	// Initialize auth
	authService := auth.NewService(
		tenantRepo,
		userRepo,
		resolver,
		validator,
		cfg.JWTSecret,
		time.Duration(cfg.TokenTTLMinutes)*time.Minute,
	)
	authMiddleware := auth.NewMiddleware(authService)

	// Initialize services
	taskService := service.NewTaskService(taskRepo, validator)
	subscriptionService := service.NewSubscriptionService(subscriptionRepo, featureRepo, validator)
	dashboardService := service.NewDashboardService(taskRepo, widgetRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db)
	authHandler := handlers.NewAuthHandler(authService)
	taskHandler := handlers.NewTaskHandler(taskService)
	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Health check routes
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/health/live", healthHandler.Live)

	// Swagger documentation route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")

	// Public routes: registration creates the tenant, and login carries
	// the tenant identifier in its body, so neither goes through the
	// tenant middleware.
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	// Everything else needs a resolved tenant plus a valid token bound
	// to that tenant.
	scoped := api.Group("")
	scoped.Use(tenantMiddleware.RequireTenant())
	scoped.Use(authMiddleware.RequireAuth())
	{
		scoped.POST("/auth/logout", authHandler.Logout)
		scoped.GET("/auth/me", authHandler.Me)

		// Dashboard routes
		dashboard := scoped.Group("/dashboard")
		{
			dashboard.GET("/widgets", dashboardHandler.Widgets)
			dashboard.GET("/stats", dashboardHandler.Stats)
		}

		// Subscription routes
		subscription := scoped.Group("/subscription")
		{
			subscription.GET("/current", subscriptionHandler.Current)
			subscription.GET("/plans", subscriptionHandler.Plans)
			subscription.GET("/features", subscriptionHandler.Features)
			subscription.POST("/upgrade", subscriptionHandler.Upgrade)
			subscription.POST("/downgrade", subscriptionHandler.Downgrade)
		}

		// Task routes
		tasks := scoped.Group("/tasks")
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.PUT("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
		}
	}

	// Catch-all route for undefined endpoints
	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{
			"error":      "Endpoint not found",
			"path":       c.Request.URL.Path,
			"method":     c.Request.Method,
			"request_id": c.GetString(middleware.RequestIDKey),
		})
	})

	return router
}

// SetupHealthRoutes sets up only health check routes (useful for testing)
func SetupHealthRoutes(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	healthHandler := handlers.NewHealthHandler(db)
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/health/live", healthHandler.Live)

	return router
}
