package routes

import (
	"log"

	"makeitall-backend/internal/api/handlers"
	"makeitall-backend/internal/api/middleware"
	"makeitall-backend/internal/auth"
	"makeitall-backend/internal/config"
	"makeitall-backend/internal/repository"
	"makeitall-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(db *gorm.DB, cfg *config.Config) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(cfg))

	validate := validator.New()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	membershipRepo := repository.NewMembershipRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	// Services
	guard := service.NewAccessGuard(projectRepo, membershipRepo)
	taskService := service.NewTaskService(taskRepo, userRepo, membershipRepo, guard, validate, cfg.TaskAllowPastDeadline)
	projectService := service.NewProjectService(projectRepo, membershipRepo, userRepo, guard, validate)
	directoryService := service.NewDirectoryService(cfg)

	// Auth
	authConfig, err := auth.LoadAuthConfig("config/auth.yaml", cfg.JWTSecret)
	if err != nil {
		log.Fatalf("Failed to load auth config: %v", err)
	}
	authService, err := auth.NewAuthService(authConfig, userRepo)
	if err != nil {
		log.Fatalf("Failed to initialize auth service: %v", err)
	}
	authHandler := auth.NewAuthHandler(authService)
	authMiddleware := auth.NewAuthMiddleware(authService)

	// Handlers
	healthHandler := handlers.NewHealthHandler(db)
	taskHandler := handlers.NewTaskHandler(taskService)
	projectHandler := handlers.NewProjectHandler(projectService)
	directoryHandler := handlers.NewDirectoryHandler(directoryService)

	// Health check routes
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/health/live", healthHandler.Live)

	// Swagger documentation route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Auth routes
	router.POST("/api/auth/login", authHandler.Login)

	// API v1 routes - all endpoints require authentication
	v1 := router.Group("/api/v1")
	v1.Use(authMiddleware.RequireAuth())
	{
		v1.GET("/me", authHandler.Me)

		projects := v1.Group("/projects")
		{
			projects.GET("", projectHandler.ListProjects)
			projects.POST("", projectHandler.CreateProject)
			projects.GET("/:id", projectHandler.GetProject)
			projects.POST("/:id/close", projectHandler.CloseProject)
			projects.GET("/:id/members", projectHandler.ListMembers)
			projects.POST("/:id/members", projectHandler.AddMember)
			projects.DELETE("/:id/members", projectHandler.RemoveMember)
			projects.GET("/:id/tasks", taskHandler.ListProjectTasks)
			projects.POST("/:id/tasks", taskHandler.CreateTask)
		}

		tasks := v1.Group("/tasks")
		{
			tasks.GET("/assigned", taskHandler.ListAssignedTasks)
			tasks.PUT("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
			tasks.PATCH("/:id/status", taskHandler.UpdateStatus)
			tasks.PATCH("/:id/priority", taskHandler.UpdatePriority)
			tasks.POST("/:id/complete", taskHandler.MarkComplete)
		}

		v1.GET("/directory/search", directoryHandler.Search)
	}

	return router
}
